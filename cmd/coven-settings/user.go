// ABOUTME: user subcommands: save, show and check user records
// ABOUTME: Passwords are bcrypt-hashed here before they reach the store

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/2389/coven-settings/internal/auth"
	"github.com/2389/coven-settings/internal/settings"
)

func newUserCmd(provider *appProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user records",
	}

	cmd.AddCommand(newUserSaveCmd(provider))
	cmd.AddCommand(newUserShowCmd(provider))
	cmd.AddCommand(newUserCheckCmd(provider))

	return cmd
}

// readPassword takes the password from the flag, or the first line of in when
// fromStdin is set.
func readPassword(in io.Reader, flagValue string, fromStdin bool) (string, error) {
	if !fromStdin {
		return flagValue, nil
	}
	if flagValue != "" {
		return "", errors.New("use either --password or --password-stdin, not both")
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newUserSaveCmd(provider *appProvider) *cobra.Command {
	var (
		password  string
		fromStdin bool
		admin     bool
	)

	cmd := &cobra.Command{
		Use:   "save <username>",
		Short: "Create or update a user record",
		Long: `Create a user record, or overwrite the record with the same username.
The password is hashed with bcrypt before it is stored.

Examples:
  coven-settings user save alice --password s3cret
  echo s3cret | coven-settings user save alice --password-stdin --admin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plain, err := readPassword(cmd.InOrStdin(), password, fromStdin)
			if err != nil {
				return err
			}
			hash, err := auth.HashPassword(plain)
			if err != nil {
				return err
			}

			a, err := provider.Get(cmd.Context())
			if err != nil {
				return err
			}

			rec := &settings.UserRecord{
				Username: args[0],
				Password: hash,
				IsAdmin:  admin,
			}
			if err := a.Store.SaveUser(cmd.Context(), rec); err != nil {
				return err
			}

			if a.JSON {
				return printJSON(a.Out, publicUser(rec))
			}
			green := color.New(color.FgGreen)
			green.Fprint(a.Out, "✓ ")
			_, err = fmt.Fprintf(a.Out, "saved %s (id %s)\n", rec.Username, rec.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password for the user")
	cmd.Flags().BoolVar(&fromStdin, "password-stdin", false, "Read the password from stdin")
	cmd.Flags().BoolVar(&admin, "admin", false, "Mark the user as an administrator")
	return cmd
}

// userView is a user record without its password hash.
type userView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func publicUser(rec *settings.UserRecord) userView {
	return userView{
		ID:        rec.ID,
		Username:  rec.Username,
		IsAdmin:   rec.IsAdmin,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func newUserShowCmd(provider *appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "show <username>",
		Short: "Show a user record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := provider.Get(cmd.Context())
			if err != nil {
				return err
			}
			rec, found, err := a.Store.GetUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no user named %q", args[0])
			}

			if a.JSON {
				return printJSON(a.Out, publicUser(rec))
			}

			w := tabwriter.NewWriter(a.Out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID:\t%s\n", rec.ID)
			fmt.Fprintf(w, "Username:\t%s\n", rec.Username)
			fmt.Fprintf(w, "Admin:\t%t\n", rec.IsAdmin)
			fmt.Fprintf(w, "Created:\t%s\n", rec.CreatedAt.Format(time.RFC3339))
			fmt.Fprintf(w, "Updated:\t%s\n", rec.UpdatedAt.Format(time.RFC3339))
			return w.Flush()
		},
	}
}

func newUserCheckCmd(provider *appProvider) *cobra.Command {
	var (
		password  string
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "check <username>",
		Short: "Verify a user's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plain, err := readPassword(cmd.InOrStdin(), password, fromStdin)
			if err != nil {
				return err
			}

			a, err := provider.Get(cmd.Context())
			if err != nil {
				return err
			}
			rec, found, err := a.Store.GetUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no user named %q", args[0])
			}

			if err := auth.CheckPassword(rec.Password, plain); err != nil {
				return err
			}
			return printDone(a, "verified", rec.Username)
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password to check")
	cmd.Flags().BoolVar(&fromStdin, "password-stdin", false, "Read the password from stdin")
	return cmd
}
