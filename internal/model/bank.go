package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// BankEntryType is the direction of a bank ledger movement.
type BankEntryType string

const (
	BankDeposit  BankEntryType = "Deposit"
	BankWithdraw BankEntryType = "Withdraw"
)

// BankEntry is one row of the bank ledger.
//
// Balance is computed once when the entry is appended (previous balance plus
// or minus Amount) and stored verbatim. It is never recomputed from history.
type BankEntry struct {
	Date    Date
	Type    BankEntryType
	Amount  decimal.Decimal
	Balance decimal.Decimal
}

type bankEntryJSON struct {
	Date    Date          `json:"Date"`
	Type    BankEntryType `json:"Type"`
	Amount  json.Number   `json:"Amount"`
	Balance json.Number   `json:"Balance"`
}

func (b BankEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(bankEntryJSON{
		Date:    b.Date,
		Type:    b.Type,
		Amount:  json.Number(b.Amount.String()),
		Balance: json.Number(b.Balance.String()),
	})
}

func (b *BankEntry) UnmarshalJSON(data []byte) error {
	var raw bankEntryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	amount, err := ParseAmount(raw.Amount)
	if err != nil {
		return err
	}
	balance, err := ParseAmount(raw.Balance)
	if err != nil {
		return err
	}
	*b = BankEntry{Date: raw.Date, Type: raw.Type, Amount: amount, Balance: balance}
	return nil
}
