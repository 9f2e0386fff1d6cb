package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finguard-dev/finguard/internal/logger"
	"github.com/finguard-dev/finguard/internal/model"
	"github.com/finguard-dev/finguard/internal/store"
)

func TestMain(m *testing.M) {
	logger.Init("test")
	os.Exit(m.Run())
}

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	svc := NewService(
		store.NewCollection[model.Expense](filepath.Join(dir, "expenses.json")),
		store.NewDocument[model.Budget](filepath.Join(dir, "budget.json")),
	)
	return svc, dir
}

func TestService_AppendAndRecords(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Append(expense(2024, 1, 5, "Food", "100"))
	require.NoError(t, err)
	got, err := svc.Append(expense(2024, 1, 5, "Food", "100"))
	require.NoError(t, err)
	assert.Len(t, got, 2, "duplicate entries are valid")

	records, err := svc.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestService_RecordsUnreadableFallsBackToEmpty(t *testing.T) {
	svc, dir := newTestService(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "expenses.json"), []byte("{oops"), 0o644))

	records, err := svc.Records()
	require.NoError(t, err)
	assert.Empty(t, records)

	snap, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, store.StateUnreadable, snap.State)
}

func TestService_Update(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.Replace([]model.Expense{
		expense(2024, 1, 5, "Food", "100"),
		expense(2024, 1, 6, "Rent", "500"),
	}))

	got, err := svc.Update(1, expense(2024, 1, 6, "Rent", "450"))
	require.NoError(t, err)
	assertDec(t, "450", got[1].Amount, "updated amount")

	records, err := svc.Records()
	require.NoError(t, err)
	assertDec(t, "100", records[0].Amount, "untouched row")
	assertDec(t, "450", records[1].Amount, "updated row")
}

func TestService_UpdateOutOfRange(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.Replace([]model.Expense{expense(2024, 1, 5, "Food", "1")}))

	_, err := svc.Update(1, expense(2024, 1, 5, "Food", "2"))
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = svc.Update(-1, expense(2024, 1, 5, "Food", "2"))
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestService_Budget(t *testing.T) {
	svc, _ := newTestService(t)

	limit, err := svc.Budget()
	require.NoError(t, err)
	assert.True(t, limit.IsZero(), "no budget saved yet")

	require.NoError(t, svc.SetBudget(dec("2000")))
	require.NoError(t, svc.SetBudget(dec("1500")))

	limit, err = svc.Budget()
	require.NoError(t, err)
	assertDec(t, "1500", limit, "budget")
}

func TestService_Summary(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.SetBudget(dec("100")))
	require.NoError(t, svc.Replace([]model.Expense{
		expense(2024, 1, 5, "Food", "100"),
		expense(2024, 1, 20, "Food", "50"),
		expense(2024, 2, 1, "Rent", "500"),
	}))

	agg, err := svc.Summary(date(2024, 1, 25))
	require.NoError(t, err)
	assertDec(t, "650", agg.Total, "total")
	assertDec(t, "150", agg.MonthToDate, "month_to_date")
	assertDec(t, "-50", agg.RemainingBudget, "remaining_budget")
}

func TestService_StorageUnavailable(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(
		store.NewCollection[model.Expense](dir),
		store.NewDocument[model.Budget](filepath.Join(dir, "budget.json")),
	)

	_, err := svc.Append(expense(2024, 1, 5, "Food", "1"))
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)
}
