package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finguard-dev/finguard/internal/logger"
	"github.com/finguard-dev/finguard/internal/model"
	"github.com/finguard-dev/finguard/internal/seal"
)

func TestMain(m *testing.M) {
	logger.Init("test")
	os.Exit(m.Run())
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func expense(y, m, d int, cat, desc, amount string) model.Expense {
	return model.Expense{Date: model.NewDate(y, m, d), Category: cat, Description: desc, Amount: dec(amount)}
}

func assertSameExpenses(t *testing.T, want, got []model.Expense) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Date.String(), got[i].Date.String(), "date row %d", i)
		assert.Equal(t, want[i].Category, got[i].Category, "category row %d", i)
		assert.Equal(t, want[i].Description, got[i].Description, "description row %d", i)
		assert.True(t, want[i].Amount.Equal(got[i].Amount), "amount row %d: want %s got %s", i, want[i].Amount, got[i].Amount)
	}
}

func TestLoad_Absent(t *testing.T) {
	c := NewCollection[model.Expense](filepath.Join(t.TempDir(), "expenses.json"))

	snap, err := c.Load()
	require.NoError(t, err)
	assert.Equal(t, StateEmpty, snap.State)
	assert.NotNil(t, snap.Items)
	assert.Empty(t, snap.Items)
}

func TestLoad_BlankFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	snap, err := NewCollection[model.Expense](path).Load()
	require.NoError(t, err)
	assert.Equal(t, StateEmpty, snap.State)
	assert.Empty(t, snap.Items)
}

func TestLoad_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"Date":"2024-01-05",`), 0o644))

	snap, err := NewCollection[model.Expense](path).Load()
	require.NoError(t, err, "corrupted data must not surface as an error")
	assert.Equal(t, StateUnreadable, snap.State)
	assert.Error(t, snap.Cause)
	assert.Empty(t, snap.Items)
}

func TestLoad_PathIsDirectory(t *testing.T) {
	dir := t.TempDir()

	_, err := NewCollection[model.Expense](dir).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	c := NewCollection[model.Expense](filepath.Join(t.TempDir(), "data", "expenses.json"))
	records := []model.Expense{
		expense(2024, 1, 5, "Food", "groceries", "100"),
		expense(2024, 1, 5, "Food", "groceries", "100"),
		expense(2024, 2, 1, "Rent", "", "500.25"),
	}

	require.NoError(t, c.Save(records))

	snap, err := c.Load()
	require.NoError(t, err)
	assert.Equal(t, StateOK, snap.State)
	assertSameExpenses(t, records, snap.Items)
}

func TestAppend_PreservesOrder(t *testing.T) {
	c := NewCollection[model.Expense](filepath.Join(t.TempDir(), "expenses.json"))
	first := expense(2024, 1, 5, "Food", "", "100")
	second := expense(2024, 1, 20, "Food", "", "50")

	_, err := c.Append(first)
	require.NoError(t, err)
	got, err := c.Append(second)
	require.NoError(t, err)
	assertSameExpenses(t, []model.Expense{first, second}, got)

	snap, err := c.Load()
	require.NoError(t, err)
	assertSameExpenses(t, []model.Expense{first, second}, snap.Items)
}

func TestAppend_EquivalentToLoadConcatSave(t *testing.T) {
	c := NewCollection[model.Expense](filepath.Join(t.TempDir(), "expenses.json"))
	require.NoError(t, c.Save([]model.Expense{expense(2024, 1, 5, "Food", "", "100")}))

	prior, err := c.Load()
	require.NoError(t, err)
	r := expense(2024, 3, 1, "Transport", "bus", "2.50")
	require.NoError(t, c.Save(append(prior.Items, r)))

	snap, err := c.Load()
	require.NoError(t, err)
	assertSameExpenses(t, append(prior.Items, r), snap.Items)
}

func TestAppend_UnparsableDateSurvives(t *testing.T) {
	c := NewCollection[model.Expense](filepath.Join(t.TempDir(), "expenses.json"))
	r := model.Expense{Date: model.ParseDate("sometime"), Category: "Food", Amount: dec("5")}

	_, err := c.Append(r)
	require.NoError(t, err)

	snap, err := c.Load()
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.False(t, snap.Items[0].Date.Valid())
	assert.Equal(t, "sometime", snap.Items[0].Date.String())
}

func TestSave_LastWriteWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	sessionA := NewCollection[model.Expense](path)
	sessionB := NewCollection[model.Expense](path)

	// Both sessions read the same (empty) state.
	staleA, err := sessionA.Load()
	require.NoError(t, err)
	staleB, err := sessionB.Load()
	require.NoError(t, err)

	a := expense(2024, 1, 1, "Food", "from A", "1")
	b := expense(2024, 1, 2, "Rent", "from B", "2")
	require.NoError(t, sessionA.Save(append(staleA.Items, a)))
	require.NoError(t, sessionB.Save(append(staleB.Items, b)))

	snap, err := sessionA.Load()
	require.NoError(t, err)
	assertSameExpenses(t, []model.Expense{b}, snap.Items)
}

func TestEncrypted_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	box := seal.NewBox(seal.NewKeyFile(filepath.Join(dir, "secret.key")))
	path := filepath.Join(dir, "expenses.json")
	c := NewCollection[model.Expense](path, WithSealer(box))

	records := []model.Expense{
		expense(2024, 1, 5, "Food", "groceries", "100"),
		expense(2024, 2, 1, "Rent", "", "500"),
	}
	require.NoError(t, c.Save(records))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "groceries")

	snap, err := c.Load()
	require.NoError(t, err)
	assert.Equal(t, StateOK, snap.State)
	assertSameExpenses(t, records, snap.Items)
}

func TestEncrypted_MissingKeyFile(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "secret.key")
	path := filepath.Join(dir, "expenses.json")
	box := seal.NewBox(seal.NewKeyFile(keyPath))
	require.NoError(t, NewCollection[model.Expense](path, WithSealer(box)).Save([]model.Expense{expense(2024, 1, 5, "Food", "", "1")}))

	require.NoError(t, os.Remove(keyPath))

	snap, err := NewCollection[model.Expense](path, WithSealer(box)).Load()
	require.NoError(t, err)
	assert.Equal(t, StateUnreadable, snap.State)
	assert.Empty(t, snap.Items)
}

func TestEncrypted_CorruptedKeyFile(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "secret.key")
	path := filepath.Join(dir, "expenses.json")
	box := seal.NewBox(seal.NewKeyFile(keyPath))
	require.NoError(t, NewCollection[model.Expense](path, WithSealer(box)).Save([]model.Expense{expense(2024, 1, 5, "Food", "", "1")}))

	require.NoError(t, os.WriteFile(keyPath, []byte("garbage"), 0o600))

	snap, err := NewCollection[model.Expense](path, WithSealer(box)).Load()
	require.NoError(t, err)
	assert.Equal(t, StateUnreadable, snap.State)
	assert.ErrorIs(t, snap.Cause, seal.ErrInvalidKey)
}

func TestEncrypted_PlaintextFileIsUnreadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expenses.json")
	require.NoError(t, NewCollection[model.Expense](path).Save([]model.Expense{expense(2024, 1, 5, "Food", "", "1")}))

	box := seal.NewBox(seal.NewKeyFile(filepath.Join(dir, "secret.key")))
	snap, err := NewCollection[model.Expense](path, WithSealer(box)).Load()
	require.NoError(t, err)
	assert.Equal(t, StateUnreadable, snap.State)
}

func TestDocument_RoundTripAndReplace(t *testing.T) {
	doc := NewDocument[model.Budget](filepath.Join(t.TempDir(), "budget.json"))

	_, state, err := doc.Load()
	require.NoError(t, err)
	assert.Equal(t, StateEmpty, state)

	require.NoError(t, doc.Save(model.Budget{MonthlyLimit: dec("1000")}))
	require.NoError(t, doc.Save(model.Budget{MonthlyLimit: dec("750")}))

	got, state, err := doc.Load()
	require.NoError(t, err)
	assert.Equal(t, StateOK, state)
	assert.True(t, got.MonthlyLimit.Equal(dec("750")))
}

func TestDocument_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Budget": "many"}`), 0o644))

	got, state, err := NewDocument[model.Budget](path).Load()
	require.NoError(t, err)
	assert.Equal(t, StateUnreadable, state)
	assert.True(t, got.MonthlyLimit.IsZero())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "ok", StateOK.String())
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "unreadable", StateUnreadable.String())
}
