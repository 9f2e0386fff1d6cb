// Package session carries the per-invocation context: who is acting, what
// "today" is, and the stores opened for the project. Nothing here is global.
package session

import (
	"fmt"
	"time"

	"github.com/finguard-dev/finguard/internal/activity"
	"github.com/finguard-dev/finguard/internal/assistant"
	"github.com/finguard-dev/finguard/internal/categories"
	"github.com/finguard-dev/finguard/internal/config"
	"github.com/finguard-dev/finguard/internal/credentials"
	"github.com/finguard-dev/finguard/internal/form"
	"github.com/finguard-dev/finguard/internal/ledger"
	"github.com/finguard-dev/finguard/internal/logger"
	"github.com/finguard-dev/finguard/internal/model"
	"github.com/finguard-dev/finguard/internal/scam"
	"github.com/finguard-dev/finguard/internal/seal"
	"github.com/finguard-dev/finguard/internal/store"
)

// Session is the explicit context passed to every operation.
type Session struct {
	Root        string
	User        string
	Today       time.Time
	Config      *config.Config
	Expenses    *ledger.Service
	Bank        *ledger.Bank
	Categories  *categories.Service
	Detector    *scam.Detector
	Validator   *form.Validator
	Credentials *credentials.FileStore
	Activity    *activity.Log
}

// Open wires the stores for the project at root. When encryption is enabled
// every backing file shares one key file.
func Open(root string, cfg *config.Config, user string, now time.Time) (*Session, error) {
	threshold, err := cfg.ScamThreshold()
	if err != nil {
		return nil, fmt.Errorf("opening session: %w", err)
	}

	var opts []store.Option
	if cfg.Storage.Encrypt {
		opts = append(opts, store.WithSealer(seal.NewBox(seal.NewKeyFile(cfg.KeyPath(root)))))
	}

	cats := categories.NewService(cfg.Categories)
	s := &Session{
		Root:   root,
		User:   user,
		Today:  now,
		Config: cfg,
		Expenses: ledger.NewService(
			store.NewCollection[model.Expense](cfg.ExpensesPath(root), opts...),
			store.NewDocument[model.Budget](cfg.BudgetPath(root), opts...),
		),
		Bank:        ledger.NewBank(store.NewCollection[model.BankEntry](cfg.BankPath(root), opts...)),
		Categories:  cats,
		Detector:    scam.NewDetector(cfg.Scam.Keywords, threshold),
		Validator:   form.New(cats),
		Credentials: credentials.NewFileStore(cfg.CredentialsPath(root)),
		Activity:    activity.NewLog(cfg.ActivityPath(root)),
	}

	logger.Named("session").Debugw("session opened",
		"root", root, "user", user, "encrypt", cfg.Storage.Encrypt, "data_dir", cfg.DataDir(root))
	return s, nil
}

// TodayDate returns the session's reference date.
func (s *Session) TodayDate() model.Date {
	return model.DateOf(s.Today)
}

// Summary aggregates the ledger as of the session's reference date.
func (s *Session) Summary() (ledger.Aggregates, error) {
	return s.Expenses.Summary(s.Today)
}

// Record appends an activity entry for the session user. A failure to write
// the log is logged and otherwise ignored; it never fails the operation.
func (s *Session) Record(action, details string) {
	err := s.Activity.Append(activity.Entry{
		Timestamp: s.Today,
		User:      s.User,
		Action:    action,
		Details:   details,
	})
	if err != nil {
		logger.Named("session").Warnw("recording activity failed", "action", action, "error", err)
	}
}

// Authenticate checks password for the session user.
func (s *Session) Authenticate(password string) error {
	return s.Credentials.Verify(s.User, password)
}

// Assistant builds a chat client from the session's config.
func (s *Session) Assistant() (assistant.Asker, error) {
	timeout, err := s.Config.AssistantTimeout()
	if err != nil {
		return nil, err
	}
	client, err := assistant.NewClient(assistant.Config{
		APIKey:  s.Config.APIKey(),
		BaseURL: s.Config.Assistant.BaseURL,
		Model:   s.Config.Assistant.Model,
		Timeout: timeout,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}
