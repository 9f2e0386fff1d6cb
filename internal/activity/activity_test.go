package activity

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp: testTime,
		User:      "priya",
		Action:    "add",
		Details:   "index=0",
	}
}

func newLog(t *testing.T) *Log {
	t.Helper()
	return NewLog(filepath.Join(t.TempDir(), "data", "activity.csv"))
}

func TestAppend_NewFile(t *testing.T) {
	l := newLog(t)
	require.NoError(t, l.Append(testEntry()))

	entries, err := l.Read()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, testEntry(), entries[0])

	data, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), Header+"\n"))

	info, err := os.Stat(l.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestAppend_ExistingFile(t *testing.T) {
	l := newLog(t)
	require.NoError(t, l.Append(testEntry()))

	e2 := testEntry()
	e2.Action = "import"
	e2.Details = "rows=3, replace=false"
	require.NoError(t, l.Append(e2))

	entries, err := l.Read()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "add", entries[0].Action)
	assert.Equal(t, "rows=3, replace=false", entries[1].Details)

	data, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header), "header written once")
}

func TestRead_Missing(t *testing.T) {
	entries, err := newLog(t).Read()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	_, err := UnmarshalEntry([]string{"a", "b"})
	assert.ErrorContains(t, err, "expected 4 fields")

	_, err = UnmarshalEntry([]string{"yesterday", "u", "a", "d"})
	assert.ErrorContains(t, err, "parsing timestamp")
}
