package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Budget is the single, global monthly spending limit.
type Budget struct {
	MonthlyLimit decimal.Decimal
}

type budgetJSON struct {
	Budget json.Number `json:"Budget"`
}

func (b Budget) MarshalJSON() ([]byte, error) {
	return json.Marshal(budgetJSON{Budget: json.Number(b.MonthlyLimit.String())})
}

func (b *Budget) UnmarshalJSON(data []byte) error {
	var raw budgetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	limit, err := ParseAmount(raw.Budget)
	if err != nil {
		return err
	}
	b.MonthlyLimit = limit
	return nil
}
