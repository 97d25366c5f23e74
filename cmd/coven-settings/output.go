// ABOUTME: Value parsing and output formatting shared by the CLI commands
// ABOUTME: Command line values are JSON when they parse, plain strings otherwise

package main

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/2389/coven-settings/internal/settings"
)

// parseValue turns a command line argument into a stored value. Anything that
// is a single complete JSON document is stored as that document; the rest is
// stored as the literal string.
func parseValue(s string) any {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return s
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return s
	}
	return v
}

// valueArg returns the value to store from the optional trailing argument.
// A missing argument stores null.
func valueArg(args []string, idx int, raw bool) any {
	if len(args) <= idx {
		return nil
	}
	if raw {
		return args[idx]
	}
	return parseValue(args[idx])
}

// formatValue renders a read result so that absent, null and values differ.
func formatValue(v any, found bool) string {
	if !found {
		return color.HiBlackString("(absent)")
	}
	if v == nil {
		return color.YellowString("null")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// lookupResult is the --json shape of a single read.
type lookupResult struct {
	Key   string `json:"key"`
	Found bool   `json:"found"`
	Value any    `json:"value"`
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printLookup(a *app, key string, v any, found bool) error {
	if a.JSON {
		return printJSON(a.Out, lookupResult{Key: key, Found: found, Value: v})
	}
	_, err := fmt.Fprintln(a.Out, formatValue(v, found))
	return err
}

func printPair(w io.Writer, key string, v any) {
	fmt.Fprintf(w, "%s %s %s\n", color.CyanString(key), color.HiBlackString("="), formatValue(v, true))
}

func printDone(a *app, verb, what string) error {
	if a.JSON {
		return printJSON(a.Out, map[string]string{"status": verb, "key": what})
	}
	green := color.New(color.FgGreen)
	green.Fprint(a.Out, "✓ ")
	_, err := fmt.Fprintf(a.Out, "%s %s\n", verb, what)
	return err
}

// sortEntries orders a list alphabetically; the store returns storage order.
func sortEntries(entries []settings.Entry) {
	slices.SortFunc(entries, func(a, b settings.Entry) int { return cmp.Compare(a.Key, b.Key) })
}

func sortSkillEntries(entries []settings.SkillEntry) {
	slices.SortFunc(entries, func(a, b settings.SkillEntry) int {
		return cmp.Or(cmp.Compare(a.SkillID, b.SkillID), cmp.Compare(a.Key, b.Key))
	})
}

func sortUserEntries(entries []settings.UserEntry) {
	slices.SortFunc(entries, func(a, b settings.UserEntry) int { return cmp.Compare(a.Key, b.Key) })
}
