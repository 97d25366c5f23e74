// ABOUTME: global subcommands: get, set, list and delete settings shared by every skill
// ABOUTME: Thin wrappers over the Store's global scope operations

package main

import (
	"github.com/spf13/cobra"
)

func newGlobalCmd(provider *appProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "global",
		Short: "Manage global settings",
	}

	cmd.AddCommand(newGlobalGetCmd(provider))
	cmd.AddCommand(newGlobalSetCmd(provider))
	cmd.AddCommand(newGlobalListCmd(provider))
	cmd.AddCommand(newGlobalDeleteCmd(provider))

	return cmd
}

func newGlobalGetCmd(provider *appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Show a global setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := provider.Get(cmd.Context())
			if err != nil {
				return err
			}
			v, found, err := a.Store.GetGlobal(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printLookup(a, args[0], v, found)
		},
	}
}

func newGlobalSetCmd(provider *appProvider) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "set <key> [value]",
		Short: "Write a global setting",
		Long: `Write a global setting. The value is parsed as JSON and falls back to a
plain string. Omitting the value stores null.

Examples:
  coven-settings global set theme dark
  coven-settings global set limits '{"max": 10}'
  coven-settings global set code 007 --raw`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := provider.Get(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.Store.SetGlobal(cmd.Context(), args[0], valueArg(args, 1, raw)); err != nil {
				return err
			}
			return printDone(a, "set", args[0])
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Store the value as a string without JSON parsing")
	return cmd
}

func newGlobalListCmd(provider *appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all global settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := provider.Get(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := a.Store.ListGlobal(cmd.Context())
			if err != nil {
				return err
			}
			sortEntries(entries)
			if a.JSON {
				return printJSON(a.Out, entries)
			}
			for _, e := range entries {
				printPair(a.Out, e.Key, e.Value)
			}
			return nil
		},
	}
}

func newGlobalDeleteCmd(provider *appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Remove a global setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := provider.Get(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.Store.DeleteGlobal(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printDone(a, "deleted", args[0])
		},
	}
}
