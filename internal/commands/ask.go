package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finguard-dev/finguard/internal/assistant"
)

func newAskCommand(a *app) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the assistant about your spending",
		Long: "Sends your spending totals (never individual expenses) and the question\n" +
			"to the configured chat endpoint. --offline prints a local tip instead.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			agg, err := sess.Summary()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if offline {
				fmt.Fprintln(out, assistant.Tip(agg))
				return nil
			}

			client, err := sess.Assistant()
			if err != nil {
				return fmt.Errorf("%w (set %s or use --offline)", err, sess.Config.Assistant.APIKeyEnv)
			}
			answer, err := client.Ask(cmd.Context(), agg, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, answer)
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "print a saving tip without calling the assistant")

	return cmd
}
