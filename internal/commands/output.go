package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finguard-dev/finguard/internal/model"
	"github.com/finguard-dev/finguard/internal/session"
	"github.com/finguard-dev/finguard/internal/store"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// loadExpenses loads the ledger and warns on stderr when the file could not
// be decoded. The records are still returned (empty) in that case.
func loadExpenses(cmd *cobra.Command, sess *session.Session) ([]model.Expense, error) {
	snap, err := sess.Expenses.Load()
	if err != nil {
		return nil, err
	}
	if snap.State == store.StateUnreadable {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s is unreadable and is shown as empty (%v)\n",
			sess.Config.ExpensesPath(sess.Root), snap.Cause)
	}
	return snap.Items, nil
}

func printExpenses(w io.Writer, records []model.Expense) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "#\tDATE\tCATEGORY\tDESCRIPTION\tAMOUNT")
	for i, e := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i, e.Date, e.Category, e.Description, e.Amount.StringFixed(2))
	}
	return tw.Flush()
}
