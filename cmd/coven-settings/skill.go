// ABOUTME: skill subcommands: get, set, list and delete settings owned by one skill
// ABOUTME: list without a skill id walks every skill's settings

package main

import (
	"github.com/spf13/cobra"

	"github.com/2389/coven-settings/internal/settings"
)

func newSkillCmd(provider *appProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Manage per-skill settings",
	}

	cmd.AddCommand(newSkillGetCmd(provider))
	cmd.AddCommand(newSkillSetCmd(provider))
	cmd.AddCommand(newSkillListCmd(provider))
	cmd.AddCommand(newSkillDeleteCmd(provider))

	return cmd
}

func newSkillGetCmd(provider *appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "get <skill-id> <key>",
		Short: "Show a skill setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := provider.Get(cmd.Context())
			if err != nil {
				return err
			}
			v, found, err := a.Store.GetSkill(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printLookup(a, args[1], v, found)
		},
	}
}

func newSkillSetCmd(provider *appProvider) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "set <skill-id> <key> [value]",
		Short: "Write a skill setting",
		Long: `Write a setting owned by one skill. The value is parsed as JSON and falls
back to a plain string. Omitting the value stores null.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := provider.Get(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.Store.SetSkill(cmd.Context(), args[0], args[1], valueArg(args, 2, raw)); err != nil {
				return err
			}
			return printDone(a, "set", args[0]+"/"+args[1])
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Store the value as a string without JSON parsing")
	return cmd
}

func newSkillListCmd(provider *appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "list [skill-id]",
		Short: "List settings for one skill, or for all skills",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := provider.Get(cmd.Context())
			if err != nil {
				return err
			}

			var entries []settings.SkillEntry
			if len(args) == 1 {
				entries, err = a.Store.ListSkill(cmd.Context(), args[0])
			} else {
				entries, err = a.Store.ListAllSkills(cmd.Context())
			}
			if err != nil {
				return err
			}

			sortSkillEntries(entries)
			if a.JSON {
				return printJSON(a.Out, entries)
			}
			for _, e := range entries {
				printPair(a.Out, e.SkillID+"/"+e.Key, e.Value)
			}
			return nil
		},
	}
}

func newSkillDeleteCmd(provider *appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <skill-id> <key>",
		Short: "Remove a skill setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := provider.Get(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.Store.DeleteSkill(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			return printDone(a, "deleted", args[0]+"/"+args[1])
		},
	}
}
