package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newScanCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Flag expenses that look like scams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			records, err := loadExpenses(cmd, sess)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			findings := sess.Detector.Scan(records)
			if len(findings) == 0 {
				fmt.Fprintf(out, "No suspicious expenses among %d records.\n", len(records))
				return nil
			}

			tw := newTable(out)
			fmt.Fprintln(tw, "#\tDATE\tDESCRIPTION\tAMOUNT\tREASONS")
			for _, f := range findings {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", f.Index, f.Expense.Date, f.Expense.Description,
					f.Expense.Amount.StringFixed(2), strings.Join(f.Verdict.Reasons, "; "))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d of %d expenses flagged.\n", len(findings), len(records))
			return nil
		},
	}
}
