package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Expense is one row of the expense ledger.
//
// The store accepts any Category and any Amount; callers validate input
// (amount > 0, known category) before appending.
type Expense struct {
	Date        Date
	Category    string
	Description string
	Amount      decimal.Decimal
}

type expenseJSON struct {
	Date        Date        `json:"Date"`
	Category    string      `json:"Category"`
	Description string      `json:"Description"`
	Amount      json.Number `json:"Amount"`
}

// MarshalJSON writes the record with its interoperable field names and a numeric Amount.
func (e Expense) MarshalJSON() ([]byte, error) {
	return json.Marshal(expenseJSON{
		Date:        e.Date,
		Category:    e.Category,
		Description: e.Description,
		Amount:      json.Number(e.Amount.String()),
	})
}

// UnmarshalJSON reads a record whose Amount may be a number or a numeric string.
func (e *Expense) UnmarshalJSON(data []byte) error {
	var raw expenseJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	amount, err := ParseAmount(raw.Amount)
	if err != nil {
		return err
	}
	*e = Expense{
		Date:        raw.Date,
		Category:    raw.Category,
		Description: raw.Description,
		Amount:      amount,
	}
	return nil
}

// ParseAmount converts a JSON number to a decimal. A missing amount is zero.
func ParseAmount(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(string(n))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", n, err)
	}
	return d, nil
}
