package csvio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finguard-dev/finguard/internal/model"
)

func TestWriteExpenses(t *testing.T) {
	records := []model.Expense{
		{Date: model.NewDate(2024, 1, 5), Category: "Food", Description: "lunch, with team", Amount: decimal.RequireFromString("12.5")},
		{Date: model.ParseDate("someday"), Category: "Others", Description: "", Amount: decimal.NewFromInt(3)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteExpenses(&buf, records))

	want := "Date,Category,Description,Amount\n" +
		"2024-01-05,Food,\"lunch, with team\",12.5\n" +
		"someday,Others,,3\n"
	assert.Equal(t, want, buf.String())
}

func TestReadExpenses(t *testing.T) {
	in := "Date,Category,Description,Amount\n" +
		"2024-01-05,Food,lunch,12.50\n" +
		"2024-01-06 10:30:00,Rent,flat, 500\n" +
		"not-a-date,Others,mystery,1\n"

	got, err := ReadExpenses(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "2024-01-05", got[0].Date.String())
	assert.True(t, got[0].Amount.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, "2024-01-06", got[1].Date.String())
	assert.True(t, got[1].Amount.Equal(decimal.NewFromInt(500)))
	assert.False(t, got[2].Date.Valid())
	assert.Equal(t, "not-a-date", got[2].Date.String())
}

func TestReadExpenses_Empty(t *testing.T) {
	got, err := ReadExpenses(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = ReadExpenses(strings.NewReader(Header + "\n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadExpenses_Errors(t *testing.T) {
	_, err := ReadExpenses(strings.NewReader("a,b,c,d\n"))
	assert.ErrorContains(t, err, "unexpected header")

	_, err = ReadExpenses(strings.NewReader(Header + "\n2024-01-05,Food,lunch,abc\n"))
	assert.ErrorContains(t, err, "row 2")
	assert.ErrorContains(t, err, `parsing amount "abc"`)

	_, err = ReadExpenses(strings.NewReader(Header + "\n2024-01-05,Food\n"))
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	records := []model.Expense{
		{Date: model.NewDate(2024, 2, 29), Category: "Bills", Description: "power \"peak\"", Amount: decimal.RequireFromString("99.99")},
		{Date: model.NewDate(2024, 3, 1), Category: "food", Description: "lowercase category kept", Amount: decimal.RequireFromString("0.01")},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteExpenses(&buf, records))

	got, err := ReadExpenses(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(records))
	for i := range records {
		assert.Equal(t, records[i].Date.String(), got[i].Date.String())
		assert.Equal(t, records[i].Category, got[i].Category)
		assert.Equal(t, records[i].Description, got[i].Description)
		assert.True(t, records[i].Amount.Equal(got[i].Amount))
	}
}
