package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finguard-dev/finguard/internal/assistant"
	"github.com/finguard-dev/finguard/internal/config"
	"github.com/finguard-dev/finguard/internal/logger"
	"github.com/finguard-dev/finguard/internal/model"
	"github.com/finguard-dev/finguard/internal/store"
)

func TestMain(m *testing.M) {
	logger.Init("test")
	m.Run()
}

var today = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

func TestOpen_Plain(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default("Priya")

	s, err := Open(root, cfg, "priya", today)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", s.TodayDate().String())

	_, err = s.Expenses.Append(model.Expense{Date: model.NewDate(2024, 1, 2), Category: "Food", Amount: decimal.NewFromInt(40)})
	require.NoError(t, err)
	require.NoError(t, s.Expenses.SetBudget(decimal.NewFromInt(100)))

	data, err := os.ReadFile(filepath.Join(root, "data", "expenses.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Category": "Food"`)

	agg, err := s.Summary()
	require.NoError(t, err)
	assert.Equal(t, "60", agg.RemainingBudget.String())
	assert.NoFileExists(t, filepath.Join(root, "data", "secret.key"))
}

func TestOpen_Encrypted(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default("Priya")
	cfg.Storage.Encrypt = true

	s, err := Open(root, cfg, "priya", today)
	require.NoError(t, err)
	_, err = s.Expenses.Append(model.Expense{Date: model.NewDate(2024, 1, 2), Category: "Food", Description: "groceries", Amount: decimal.NewFromInt(40)})
	require.NoError(t, err)
	_, err = s.Bank.Deposit(model.NewDate(2024, 1, 1), decimal.NewFromInt(500))
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, "data", "secret.key"))
	raw, err := os.ReadFile(filepath.Join(root, "data", "expenses.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "groceries")

	reopened, err := Open(root, cfg, "priya", today)
	require.NoError(t, err)
	snap, err := reopened.Expenses.Load()
	require.NoError(t, err)
	assert.Equal(t, store.StateOK, snap.State)
	require.Len(t, snap.Items, 1)
	balance, err := reopened.Bank.Balance()
	require.NoError(t, err)
	assert.Equal(t, "500", balance.String())
}

func TestOpen_BadThreshold(t *testing.T) {
	cfg := config.Default("")
	cfg.Scam.Threshold = "nope"
	_, err := Open(t.TempDir(), cfg, "", today)
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	s, err := Open(t.TempDir(), config.Default(""), "priya", today)
	require.NoError(t, err)
	require.NoError(t, s.Credentials.Set("priya", "pw"))

	assert.NoError(t, s.Authenticate("pw"))
	assert.Error(t, s.Authenticate("nope"))
}

func TestAssistant_NoKey(t *testing.T) {
	cfg := config.Default("")
	cfg.Assistant.APIKeyEnv = "FINGUARD_TEST_UNSET_KEY"
	t.Setenv("FINGUARD_TEST_UNSET_KEY", "")

	s, err := Open(t.TempDir(), cfg, "", today)
	require.NoError(t, err)
	_, err = s.Assistant()
	assert.ErrorIs(t, err, assistant.ErrNoAPIKey)
}

func TestAssistant_WithKey(t *testing.T) {
	cfg := config.Default("")
	cfg.Assistant.APIKeyEnv = "FINGUARD_TEST_KEY"
	t.Setenv("FINGUARD_TEST_KEY", "k")

	s, err := Open(t.TempDir(), cfg, "", today)
	require.NoError(t, err)
	asker, err := s.Assistant()
	require.NoError(t, err)
	assert.IsType(t, &assistant.Client{}, asker)
}

func TestRecord(t *testing.T) {
	s, err := Open(t.TempDir(), config.Default(""), "priya", today)
	require.NoError(t, err)

	s.Record("add", "index=0")
	s.Record("budget set", "")

	entries, err := s.Activity.Read()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "priya", entries[0].User)
	assert.Equal(t, "add", entries[0].Action)
	assert.True(t, entries[0].Timestamp.Equal(today))
	assert.Equal(t, "budget set", entries[1].Action)
}
