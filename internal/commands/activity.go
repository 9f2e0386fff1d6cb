package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newActivityCommand(a *app) *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show who changed the ledger and when",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			entries, err := sess.Activity.Read()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No activity recorded.")
				return nil
			}
			if last > 0 && len(entries) > last {
				entries = entries[len(entries)-last:]
			}

			tw := newTable(out)
			fmt.Fprintln(tw, "TIME\tUSER\tACTION\tDETAILS")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Timestamp.Format(time.DateTime), e.User, e.Action, e.Details)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&last, "last", 20, "show only the most recent entries (0 for all)")

	return cmd
}
