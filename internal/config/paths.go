package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
)

// DataDir returns the absolute-or-root-relative data directory.
func (c *Config) DataDir(root string) string {
	return resolve(root, c.Storage.DataDir)
}

// ExpensesPath returns the expense ledger file path.
func (c *Config) ExpensesPath(root string) string {
	return resolve(c.DataDir(root), c.Storage.ExpensesFile)
}

// BudgetPath returns the budget setting file path.
func (c *Config) BudgetPath(root string) string {
	return resolve(c.DataDir(root), c.Storage.BudgetFile)
}

// BankPath returns the bank ledger file path.
func (c *Config) BankPath(root string) string {
	return resolve(c.DataDir(root), c.Storage.BankFile)
}

// ActivityPath returns the activity log path.
func (c *Config) ActivityPath(root string) string {
	return resolve(c.DataDir(root), c.Storage.ActivityFile)
}

// KeyPath returns the encryption key file path.
func (c *Config) KeyPath(root string) string {
	return resolve(c.DataDir(root), c.Storage.KeyFile)
}

// CredentialsPath returns the credentials file path.
func (c *Config) CredentialsPath(root string) string {
	return resolve(c.DataDir(root), c.Credentials.File)
}

// ScamThreshold parses the configured threshold.
func (c *Config) ScamThreshold() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.Scam.Threshold)
	if err != nil {
		return decimal.Zero, fmt.Errorf("scam.threshold %q: %w", c.Scam.Threshold, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("scam.threshold %q must not be negative", c.Scam.Threshold)
	}
	return d, nil
}

// AssistantTimeout parses the configured assistant timeout.
func (c *Config) AssistantTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Assistant.Timeout)
	if err != nil {
		return 0, fmt.Errorf("assistant.timeout %q: %w", c.Assistant.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("assistant.timeout %q must be positive", c.Assistant.Timeout)
	}
	return d, nil
}

// APIKey reads the assistant API key from the configured variable.
func (c *Config) APIKey() string {
	return os.Getenv(c.Assistant.APIKeyEnv)
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
