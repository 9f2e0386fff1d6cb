package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finguard-dev/finguard/internal/csvio"
	"github.com/finguard-dev/finguard/internal/form"
	"github.com/finguard-dev/finguard/internal/model"
	"github.com/finguard-dev/finguard/internal/session"
)

func newImportCommand(a *app) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import expenses from CSV (" + csvio.Header + ")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			return runImport(cmd, sess, args[0], replace)
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "replace the whole ledger instead of appending")

	return cmd
}

func runImport(cmd *cobra.Command, sess *session.Session, path string, replace bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := csvio.ReadExpenses(f)
	if err != nil {
		return fmt.Errorf("importing %s: %w", path, err)
	}

	// Every row goes through the same checks as the add form.
	for i, r := range rows {
		if _, err := sess.Validator.Expense(form.ExpenseInput{
			Date:        r.Date.String(),
			Category:    r.Category,
			Description: r.Description,
			Amount:      r.Amount.String(),
		}); err != nil {
			return fmt.Errorf("importing %s: row %d: %w", path, i+2, err)
		}
	}

	records := rows
	if !replace {
		existing, err := loadExpenses(cmd, sess)
		if err != nil {
			return err
		}
		records = append(existing, rows...)
	}
	if err := sess.Expenses.Replace(records); err != nil {
		return err
	}
	sess.Record("import", fmt.Sprintf("rows=%d replace=%t", len(rows), replace))

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d expenses (%d total).\n", len(rows), len(records))
	flagged := sess.Detector.Scan(rows)
	if len(flagged) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d imported expenses look suspicious; run `finguard scan` for details\n", len(flagged))
	}
	return nil
}

func newExportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Export the expense ledger to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			records, err := loadExpenses(cmd, sess)
			if err != nil {
				return err
			}
			return writeCSV(cmd, args[0], records)
		},
	}
}

func writeCSV(cmd *cobra.Command, path string, records []model.Expense) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := csvio.WriteExpenses(f, records); err != nil {
		f.Close()
		return fmt.Errorf("exporting to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d expenses to %s\n", len(records), path)
	return nil
}
