// ABOUTME: Root command and lazy store provider for the coven-settings CLI
// ABOUTME: Resolves config, builds the logger and opens the store on first use

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/2389/coven-settings/internal/config"
	"github.com/2389/coven-settings/internal/settings"
)

// app is what every subcommand works against.
type app struct {
	Store  *settings.Store
	Logger *slog.Logger
	Out    io.Writer
	Err    io.Writer
	JSON   bool
}

// appProvider opens the store on first use so that --help and flag errors
// never touch the settings file.
type appProvider struct {
	once sync.Once
	app  *app
	err  error

	// Captured from flags before Execute
	ConfigPath string
	File       string
	JSONOutput bool
	Out        io.Writer
	Err        io.Writer
}

// Get returns the app, opening the store on the first call.
func (p *appProvider) Get(ctx context.Context) (*app, error) {
	p.once.Do(func() {
		p.app, p.err = p.init(ctx)
	})
	return p.app, p.err
}

// Close releases the store if it was opened.
func (p *appProvider) Close() error {
	if p.app == nil || p.app.Store == nil {
		return nil
	}
	return p.app.Store.Close()
}

func (p *appProvider) init(ctx context.Context) (*app, error) {
	cfg, err := config.Resolve(p.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if p.File != "" {
		cfg.Database.Path = p.File
	}

	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := p.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	logger := setupLogger(cfg.Logging, errOut)

	store, err := settings.Setup(ctx,
		settings.Config{File: cfg.Database.Path},
		settings.WithLogger(logger),
		settings.WithDriver(cfg.Database.Driver),
		settings.WithBusyTimeout(cfg.Database.BusyTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("opening settings: %w", err)
	}

	return &app{
		Store:  store,
		Logger: logger,
		Out:    out,
		Err:    errOut,
		JSON:   p.JSONOutput,
	}, nil
}

// newRootCmd creates the root command with all subcommands.
func newRootCmd(provider *appProvider) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "coven-settings",
		Short: "Read and write coven settings",
		Long: `coven-settings manages the three settings scopes shared by coven skills:
global settings, per-skill settings and per-user settings within a skill,
plus the user records kept alongside them.

Values are parsed as JSON when possible and stored as plain strings otherwise.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&provider.ConfigPath, "config", "", "Path to config file (default: $"+config.EnvConfigPath+" or ~/.config/coven/settings.yaml)")
	rootCmd.PersistentFlags().StringVar(&provider.File, "file", "", "Path to settings database (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&provider.JSONOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(newGlobalCmd(provider))
	rootCmd.AddCommand(newSkillCmd(provider))
	rootCmd.AddCommand(newValueCmd(provider))
	rootCmd.AddCommand(newUserCmd(provider))

	return rootCmd
}
