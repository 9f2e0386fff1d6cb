package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/finguard-dev/finguard/internal/form"
	"github.com/finguard-dev/finguard/internal/model"
	"github.com/finguard-dev/finguard/internal/session"
)

type expenseFlags struct {
	date        string
	category    string
	description string
	amount      string
}

func (f *expenseFlags) register(cmd *cobra.Command, dateHelp string) {
	cmd.Flags().StringVar(&f.date, "date", "", dateHelp)
	cmd.Flags().StringVar(&f.category, "category", "", "expense category")
	cmd.Flags().StringVar(&f.description, "description", "", "free-text description")
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount spent, greater than zero")
}

func newAddCommand(a *app) *cobra.Command {
	var f expenseFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			return runAdd(cmd, sess, f)
		},
	}
	f.register(cmd, "expense date YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runAdd(cmd *cobra.Command, sess *session.Session, f expenseFlags) error {
	if f.date == "" {
		f.date = sess.TodayDate().String()
	}
	e, err := validateExpense(sess, f)
	if err != nil {
		return err
	}

	records, err := sess.Expenses.Append(e)
	if err != nil {
		return err
	}

	index := len(records) - 1
	sess.Record("add", fmt.Sprintf("index=%d", index))

	fmt.Fprintf(cmd.OutOrStdout(), "Added expense #%d: %s %s %s\n", index, e.Date, e.Category, e.Amount.StringFixed(2))
	warnSuspicious(cmd, sess, e)
	return nil
}

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded expenses",
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
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No expenses recorded.")
				return nil
			}
			return printExpenses(cmd.OutOrStdout(), records)
		},
	}
}

func newEditCommand(a *app) *cobra.Command {
	var f expenseFlags

	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Replace fields of the expense at a list position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing index %q: %w", args[0], err)
			}
			sess, err := a.session()
			if err != nil {
				return err
			}
			return runEdit(cmd, sess, index, f)
		},
	}
	f.register(cmd, "expense date YYYY-MM-DD")

	return cmd
}

func runEdit(cmd *cobra.Command, sess *session.Session, index int, f expenseFlags) error {
	records, err := loadExpenses(cmd, sess)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(records) {
		return fmt.Errorf("no expense at position %d (have %d)", index, len(records))
	}

	// Unchanged flags keep the stored value, which must still pass validation.
	cur := records[index]
	flags := cmd.Flags()
	if !flags.Changed("date") {
		f.date = cur.Date.String()
	}
	if !flags.Changed("category") {
		f.category = cur.Category
	}
	if !flags.Changed("description") {
		f.description = cur.Description
	}
	if !flags.Changed("amount") {
		f.amount = cur.Amount.String()
	}

	e, err := validateExpense(sess, f)
	if err != nil {
		return err
	}
	if _, err := sess.Expenses.Update(index, e); err != nil {
		return err
	}
	sess.Record("edit", fmt.Sprintf("index=%d", index))

	fmt.Fprintf(cmd.OutOrStdout(), "Updated expense #%d: %s %s %s\n", index, e.Date, e.Category, e.Amount.StringFixed(2))
	warnSuspicious(cmd, sess, e)
	return nil
}

func validateExpense(sess *session.Session, f expenseFlags) (model.Expense, error) {
	return sess.Validator.Expense(form.ExpenseInput{
		Date:        f.date,
		Category:    f.category,
		Description: f.description,
		Amount:      f.amount,
	})
}

func warnSuspicious(cmd *cobra.Command, sess *session.Session, e model.Expense) {
	v := sess.Detector.Check(e)
	if !v.Suspicious {
		return
	}
	w := cmd.ErrOrStderr()
	fmt.Fprintln(w, "warning: this expense looks suspicious:")
	for _, r := range v.Reasons {
		fmt.Fprintf(w, "  - %s\n", r)
	}
}
