package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finguard-dev/finguard/internal/form"
	"github.com/finguard-dev/finguard/internal/model"
	"github.com/finguard-dev/finguard/internal/session"
)

func newBankCommand(a *app) *cobra.Command {
	bankCmd := &cobra.Command{
		Use:   "bank",
		Short: "Track deposits and withdrawals with a running balance",
	}
	bankCmd.AddCommand(
		newBankEntryCommand(a, model.BankDeposit),
		newBankEntryCommand(a, model.BankWithdraw),
		newBankHistoryCommand(a),
	)
	return bankCmd
}

func newBankEntryCommand(a *app, typ model.BankEntryType) *cobra.Command {
	var date, amount string

	use, short := "deposit", "Record a deposit"
	if typ == model.BankWithdraw {
		use, short = "withdraw", "Record a withdrawal"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			return runBankEntry(cmd, sess, typ, date, amount)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "entry date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount, greater than zero")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runBankEntry(cmd *cobra.Command, sess *session.Session, typ model.BankEntryType, date, amount string) error {
	if date == "" {
		date = sess.TodayDate().String()
	}
	d, amt, err := sess.Validator.Bank(form.BankInput{Date: date, Amount: amount})
	if err != nil {
		return err
	}

	var entry model.BankEntry
	if typ == model.BankDeposit {
		entry, err = sess.Bank.Deposit(d, amt)
	} else {
		entry, err = sess.Bank.Withdraw(d, amt)
	}
	if err != nil {
		return err
	}
	sess.Record(strings.ToLower(string(typ)), "")

	fmt.Fprintf(cmd.OutOrStdout(), "%s of %s recorded. Balance: %s\n",
		entry.Type, entry.Amount.StringFixed(2), entry.Balance.StringFixed(2))
	return nil
}

func newBankHistoryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List bank entries and the current balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			entries, err := sess.Bank.History()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No bank entries recorded.")
				return nil
			}

			tw := newTable(out)
			fmt.Fprintln(tw, "DATE\tTYPE\tAMOUNT\tBALANCE")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Date, e.Type, e.Amount.StringFixed(2), e.Balance.StringFixed(2))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			balance, err := sess.Bank.Balance()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nBalance: %s\n", balance.StringFixed(2))
			return nil
		},
	}
}
