// ABOUTME: value subcommands: get, set, list and delete per-user settings within a skill
// ABOUTME: The user argument is the user's identifier, numeric or not

package main

import (
	"github.com/spf13/cobra"

	"github.com/2389/coven-settings/internal/settings"
)

func newValueCmd(provider *appProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "value",
		Short: "Manage per-user settings within a skill",
	}

	cmd.AddCommand(newValueGetCmd(provider))
	cmd.AddCommand(newValueSetCmd(provider))
	cmd.AddCommand(newValueListCmd(provider))
	cmd.AddCommand(newValueDeleteCmd(provider))

	return cmd
}

func newValueGetCmd(provider *appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "get <skill-id> <user-id> <key>",
		Short: "Show a per-user setting",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := provider.Get(cmd.Context())
			if err != nil {
				return err
			}
			v, found, err := a.Store.GetValue(cmd.Context(), args[0], settings.User{ID: args[1]}, args[2])
			if err != nil {
				return err
			}
			return printLookup(a, args[2], v, found)
		},
	}
}

func newValueSetCmd(provider *appProvider) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "set <skill-id> <user-id> <key> [value]",
		Short: "Write a per-user setting",
		Long: `Write a setting for one user of one skill. The value is parsed as JSON and
falls back to a plain string. Omitting the value stores null.

Examples:
  coven-settings value set weather 42 units metric
  coven-settings value set weather alice favorites '["Oslo", "Lima"]'`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := provider.Get(cmd.Context())
			if err != nil {
				return err
			}
			user := settings.User{ID: args[1]}
			if err := a.Store.SetValue(cmd.Context(), args[0], user, args[2], valueArg(args, 3, raw)); err != nil {
				return err
			}
			return printDone(a, "set", args[0]+"/"+args[1]+"/"+args[2])
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Store the value as a string without JSON parsing")
	return cmd
}

func newValueListCmd(provider *appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "list <skill-id> <user-id>",
		Short: "List one user's settings for a skill",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := provider.Get(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := a.Store.ListValues(cmd.Context(), args[0], settings.User{ID: args[1]})
			if err != nil {
				return err
			}
			sortUserEntries(entries)
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

func newValueDeleteCmd(provider *appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <skill-id> <user-id> <key>",
		Short: "Remove a per-user setting",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := provider.Get(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.Store.DeleteValue(cmd.Context(), args[0], settings.User{ID: args[1]}, args[2]); err != nil {
				return err
			}
			return printDone(a, "deleted", args[0]+"/"+args[1]+"/"+args[2])
		},
	}
}
