package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finguard-dev/finguard/internal/model"
	"github.com/finguard-dev/finguard/internal/store"
)

var (
	// ErrInvalidAmount is returned for non-positive deposit or withdrawal amounts.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient balance")
)

// Bank is the deposit/withdraw ledger. Each entry stores the balance that
// resulted from it, so appends must be strictly sequential.
type Bank struct {
	entries *store.Collection[model.BankEntry]
}

// NewBank creates a Bank over the given collection.
func NewBank(entries *store.Collection[model.BankEntry]) *Bank {
	return &Bank{entries: entries}
}

// History returns all entries in insertion order.
func (b *Bank) History() ([]model.BankEntry, error) {
	snap, err := b.entries.Load()
	if err != nil {
		return nil, err
	}
	return snap.Items, nil
}

// Balance returns the balance stored on the last entry, or zero.
func (b *Bank) Balance() (decimal.Decimal, error) {
	entries, err := b.History()
	if err != nil {
		return decimal.Zero, err
	}
	return lastBalance(entries), nil
}

// Deposit appends a deposit and returns the new entry.
func (b *Bank) Deposit(date model.Date, amount decimal.Decimal) (model.BankEntry, error) {
	return b.record(date, model.BankDeposit, amount)
}

// Withdraw appends a withdrawal and returns the new entry.
func (b *Bank) Withdraw(date model.Date, amount decimal.Decimal) (model.BankEntry, error) {
	return b.record(date, model.BankWithdraw, amount)
}

func (b *Bank) record(date model.Date, typ model.BankEntryType, amount decimal.Decimal) (model.BankEntry, error) {
	if !amount.IsPositive() {
		return model.BankEntry{}, ErrInvalidAmount
	}

	entries, err := b.History()
	if err != nil {
		return model.BankEntry{}, err
	}
	prev := lastBalance(entries)

	entry := model.BankEntry{Date: date, Type: typ, Amount: amount}
	switch typ {
	case model.BankDeposit:
		entry.Balance = prev.Add(amount)
	case model.BankWithdraw:
		if amount.GreaterThan(prev) {
			return model.BankEntry{}, fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientFunds, prev.StringFixed(2), amount.StringFixed(2))
		}
		entry.Balance = prev.Sub(amount)
	default:
		return model.BankEntry{}, fmt.Errorf("unknown bank entry type %q", typ)
	}

	if err := b.entries.Save(append(entries, entry)); err != nil {
		return model.BankEntry{}, fmt.Errorf("recording %s: %w", typ, err)
	}
	return entry, nil
}

func lastBalance(entries []model.BankEntry) decimal.Decimal {
	if len(entries) == 0 {
		return decimal.Zero
	}
	return entries[len(entries)-1].Balance
}
