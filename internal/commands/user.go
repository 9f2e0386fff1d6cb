package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finguard-dev/finguard/internal/credentials"
)

func newUserCommand(a *app) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage the local login",
	}
	userCmd.AddCommand(newUserSetCommand(a), newUserCheckCommand(a))
	return userCmd
}

func newUserSetCommand(a *app) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the password for --user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			if sess.User == "" {
				return errors.New("no user: pass --user or set owner.name in the config")
			}
			pw, err := passwordFrom(cmd, password)
			if err != nil {
				return err
			}
			if err := sess.Credentials.Set(sess.User, pw); err != nil {
				return err
			}
			sess.Record("user set", "")
			fmt.Fprintf(cmd.OutOrStdout(), "Password set for %s\n", sess.User)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "new password (read from stdin if empty)")

	return cmd
}

func newUserCheckCommand(a *app) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the password for --user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			pw, err := passwordFrom(cmd, password)
			if err != nil {
				return err
			}
			if err := sess.Authenticate(pw); err != nil {
				if errors.Is(err, credentials.ErrNotConfigured) {
					return fmt.Errorf("%w: run `finguard user set` first", err)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s.\n", sess.User)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password (read from stdin if empty)")

	return cmd
}

func passwordFrom(cmd *cobra.Command, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return "", errors.New("password is required")
	}
	return line, nil
}
