package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finguard-dev/finguard/internal/model"
)

// Aggregates is the read-only summary derived from the expense ledger.
// It is the only view of the ledger handed to the assistant.
type Aggregates struct {
	AsOf            model.Date                 `json:"as_of"`
	Total           decimal.Decimal            `json:"total"`
	ByCategory      map[string]decimal.Decimal `json:"by_category"`
	MonthToDate     decimal.Decimal            `json:"month_to_date"`
	MonthlyLimit    decimal.Decimal            `json:"monthly_limit"`
	RemainingBudget decimal.Decimal            `json:"remaining_budget"`
}

// CategoryAmount pairs a category with its summed spend.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// Aggregate derives totals from records as of ref.
//
// Total and ByCategory include every record. MonthToDate only counts records
// with a valid date in [first day of ref's month, ref]. Categories are grouped
// by their literal string: "Food" and "food" are distinct buckets.
// RemainingBudget is monthlyLimit - MonthToDate and may be negative.
func Aggregate(records []model.Expense, monthlyLimit decimal.Decimal, ref time.Time) Aggregates {
	refDay := model.DateOf(ref)
	monthStart := model.NewDate(refDay.Year(), int(refDay.Month()), 1)

	agg := Aggregates{
		AsOf:         refDay,
		Total:        decimal.Zero,
		ByCategory:   make(map[string]decimal.Decimal),
		MonthToDate:  decimal.Zero,
		MonthlyLimit: monthlyLimit,
	}

	for _, r := range records {
		agg.Total = agg.Total.Add(r.Amount)
		agg.ByCategory[r.Category] = agg.ByCategory[r.Category].Add(r.Amount)

		if !r.Date.Valid() {
			continue
		}
		if r.Date.Before(monthStart.Time) || r.Date.After(refDay.Time) {
			continue
		}
		agg.MonthToDate = agg.MonthToDate.Add(r.Amount)
	}

	agg.RemainingBudget = monthlyLimit.Sub(agg.MonthToDate)
	return agg
}

// Categories returns ByCategory ordered by amount, largest first, ties by name.
func (a Aggregates) Categories() []CategoryAmount {
	out := make([]CategoryAmount, 0, len(a.ByCategory))
	for cat, amt := range a.ByCategory {
		out = append(out, CategoryAmount{Category: cat, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// OverBudget reports whether month-to-date spend exceeds a set limit.
// A zero limit means no budget, which is never exceeded.
func (a Aggregates) OverBudget() bool {
	return a.MonthlyLimit.IsPositive() && a.RemainingBudget.IsNegative()
}
