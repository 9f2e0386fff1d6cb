package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finguard-dev/finguard/internal/assistant"
	"github.com/finguard-dev/finguard/internal/ledger"
	"github.com/finguard-dev/finguard/internal/model"
)

var hundred = decimal.NewFromInt(100)

func newSummaryCommand(a *app) *cobra.Command {
	var asOf string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show totals, month-to-date spend and remaining budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}

			ref := sess.Today
			if asOf != "" {
				ref, err = time.Parse(model.DateFormat, asOf)
				if err != nil {
					return fmt.Errorf("parsing --as-of %q: %w", asOf, err)
				}
			}

			records, err := loadExpenses(cmd, sess)
			if err != nil {
				return err
			}
			limit, err := sess.Expenses.Budget()
			if err != nil {
				return err
			}
			agg := ledger.Aggregate(records, limit, ref)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(agg)
			}
			return printSummary(cmd, agg)
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "reference date YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the aggregates as JSON")

	return cmd
}

func printSummary(cmd *cobra.Command, agg ledger.Aggregates) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Summary as of %s\n\n", agg.AsOf)
	tw := newTable(out)
	fmt.Fprintf(tw, "Total spent\t%s\n", agg.Total.StringFixed(2))
	fmt.Fprintf(tw, "Spent this month\t%s\n", agg.MonthToDate.StringFixed(2))
	if agg.MonthlyLimit.IsPositive() {
		fmt.Fprintf(tw, "Monthly budget\t%s\n", agg.MonthlyLimit.StringFixed(2))
		fmt.Fprintf(tw, "Remaining\t%s\n", agg.RemainingBudget.StringFixed(2))
	} else {
		fmt.Fprintf(tw, "Monthly budget\tnot set\n")
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if cats := agg.Categories(); len(cats) > 0 {
		fmt.Fprintln(out)
		tw = newTable(out)
		fmt.Fprintln(tw, "CATEGORY\tAMOUNT\tSHARE")
		for _, c := range cats {
			share := "-"
			if !agg.Total.IsZero() {
				share = c.Amount.Div(agg.Total).Mul(hundred).StringFixed(1) + "%"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Category, c.Amount.StringFixed(2), share)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if agg.OverBudget() {
		fmt.Fprintf(out, "\nBudget exceeded by %s this month.\n", agg.RemainingBudget.Abs().StringFixed(2))
	}
	fmt.Fprintf(out, "\nTip: %s\n", assistant.Tip(agg))
	return nil
}
