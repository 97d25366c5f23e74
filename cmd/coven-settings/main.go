// ABOUTME: Entry point for coven-settings, a command line host for the settings store
// ABOUTME: Opens the store once per invocation and closes it before exiting

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
)

// Version is set by goreleaser at build time.
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	provider := &appProvider{
		Out: os.Stdout,
		Err: os.Stderr,
	}

	err := newRootCmd(provider).ExecuteContext(ctx)
	if cerr := provider.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		red := color.New(color.FgRed, color.Bold)
		red.Fprint(os.Stderr, "Error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
