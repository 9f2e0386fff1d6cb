package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finguard-dev/finguard/internal/form"
)

func newBudgetCommand(a *app) *cobra.Command {
	budgetCmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage the monthly budget",
	}
	budgetCmd.AddCommand(newBudgetSetCommand(a), newBudgetShowCommand(a))
	return budgetCmd
}

func newBudgetSetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <amount>",
		Short: "Set the monthly budget (0 clears it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			limit, err := sess.Validator.Budget(form.BudgetInput{Amount: args[0]})
			if err != nil {
				return err
			}
			if err := sess.Expenses.SetBudget(limit); err != nil {
				return err
			}
			sess.Record("budget set", "")
			fmt.Fprintf(cmd.OutOrStdout(), "Monthly budget set to %s\n", limit.StringFixed(2))
			return nil
		},
	}
}

func newBudgetShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the monthly budget and what is left of it",
		Args:  cobra.NoArgs,
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
			if !agg.MonthlyLimit.IsPositive() {
				fmt.Fprintln(out, "No monthly budget set.")
				return nil
			}
			fmt.Fprintf(out, "Monthly budget: %s\n", agg.MonthlyLimit.StringFixed(2))
			fmt.Fprintf(out, "Spent this month: %s\n", agg.MonthToDate.StringFixed(2))
			fmt.Fprintf(out, "Remaining: %s\n", agg.RemainingBudget.StringFixed(2))
			return nil
		},
	}
}
