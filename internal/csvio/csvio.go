// Package csvio reads and writes the expense ledger as CSV.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finguard-dev/finguard/internal/model"
)

// Header is the CSV header row.
const Header = "Date,Category,Description,Amount"

const (
	numFields = 4
	colDate   = 0
	colCat    = 1
	colDesc   = 2
	colAmount = 3
)

// ReadExpenses reads all expenses from r. The first row must be Header.
func ReadExpenses(r io.Reader) ([]model.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading expenses CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	if got := strings.Join(records[0], ","); !strings.EqualFold(strings.TrimPrefix(got, "\ufeff"), Header) {
		return nil, fmt.Errorf("unexpected header %q, want %q", got, Header)
	}

	var expenses []model.Expense
	for i, rec := range records[1:] {
		e, err := UnmarshalExpense(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// WriteExpenses writes records to w, header first.
func WriteExpenses(w io.Writer, records []model.Expense) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range records {
		if err := cw.Write(MarshalExpense(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalExpense converts an expense to a CSV row.
func MarshalExpense(e model.Expense) []string {
	row := make([]string, numFields)
	row[colDate] = e.Date.String()
	row[colCat] = e.Category
	row[colDesc] = e.Description
	row[colAmount] = e.Amount.String()
	return row
}

// UnmarshalExpense converts a CSV row to an expense. Unparsable dates are
// kept raw; unparsable amounts are an error.
func UnmarshalExpense(record []string) (model.Expense, error) {
	if len(record) != numFields {
		return model.Expense{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	raw := strings.TrimSpace(record[colAmount])
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing amount %q: %w", raw, err)
	}

	return model.Expense{
		Date:        model.ParseDate(strings.TrimSpace(record[colDate])),
		Category:    record[colCat],
		Description: record[colDesc],
		Amount:      amount,
	}, nil
}
