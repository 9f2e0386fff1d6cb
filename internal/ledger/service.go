// Package ledger implements the expense and bank ledgers on top of the
// file-backed store, plus the aggregation contract shared by the CLI and the
// assistant.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finguard-dev/finguard/internal/model"
	"github.com/finguard-dev/finguard/internal/store"
)

// ErrIndexOutOfRange is returned when a positional edit targets a missing row.
var ErrIndexOutOfRange = errors.New("record index out of range")

// Service provides the expense ledger and the monthly budget.
//
// The service trusts its caller: it performs no validation of categories or
// amounts. Validate user input before calling Append or Update.
type Service struct {
	expenses *store.Collection[model.Expense]
	budget   *store.Document[model.Budget]
}

// NewService creates a ledger Service over the given stores.
func NewService(expenses *store.Collection[model.Expense], budget *store.Document[model.Budget]) *Service {
	return &Service{expenses: expenses, budget: budget}
}

// Load returns the stored expenses along with how the load went.
func (s *Service) Load() (store.Snapshot[model.Expense], error) {
	return s.expenses.Load()
}

// Records returns the stored expenses, or an empty sequence if the file is
// absent or unreadable.
func (s *Service) Records() ([]model.Expense, error) {
	snap, err := s.expenses.Load()
	if err != nil {
		return nil, err
	}
	return snap.Items, nil
}

// Save overwrites the ledger with records.
func (s *Service) Save(records []model.Expense) error {
	return s.expenses.Save(records)
}

// Append adds e to the end of the ledger and returns the updated sequence.
func (s *Service) Append(e model.Expense) ([]model.Expense, error) {
	records, err := s.expenses.Append(e)
	if err != nil {
		return nil, fmt.Errorf("appending expense: %w", err)
	}
	return records, nil
}

// Update replaces the record at position index and returns the updated sequence.
func (s *Service) Update(index int, e model.Expense) ([]model.Expense, error) {
	records, err := s.Records()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(records) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(records))
	}
	records[index] = e
	if err := s.expenses.Save(records); err != nil {
		return nil, fmt.Errorf("updating expense %d: %w", index, err)
	}
	return records, nil
}

// Replace swaps the whole ledger for records, as a bulk editor would.
func (s *Service) Replace(records []model.Expense) error {
	if err := s.expenses.Save(records); err != nil {
		return fmt.Errorf("replacing ledger: %w", err)
	}
	return nil
}

// Budget returns the monthly limit, or zero if none has been saved.
func (s *Service) Budget() (decimal.Decimal, error) {
	b, _, err := s.budget.Load()
	if err != nil {
		return decimal.Zero, err
	}
	return b.MonthlyLimit, nil
}

// SetBudget replaces the monthly limit.
func (s *Service) SetBudget(limit decimal.Decimal) error {
	if err := s.budget.Save(model.Budget{MonthlyLimit: limit}); err != nil {
		return fmt.Errorf("saving budget: %w", err)
	}
	return nil
}

// Summary aggregates the current ledger against the saved budget as of ref.
func (s *Service) Summary(ref time.Time) (Aggregates, error) {
	records, err := s.Records()
	if err != nil {
		return Aggregates{}, err
	}
	limit, err := s.Budget()
	if err != nil {
		return Aggregates{}, err
	}
	return Aggregate(records, limit, ref), nil
}
