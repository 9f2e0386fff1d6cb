package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the canonical on-disk layout for a valid Date.
const DateFormat = "2006-01-02"

// dateLayouts are tried in order when parsing a stored or user-supplied date.
var dateLayouts = []string{
	DateFormat,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.000",
	time.RFC3339,
	time.RFC3339Nano,
}

// Date is a calendar date without a time component.
//
// A Date that could not be parsed keeps its original text in Raw and reports
// Valid() == false. Such dates survive a load/save cycle unchanged.
type Date struct {
	time.Time
	Raw   string
	valid bool
}

// NewDate creates a valid Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), valid: true}
}

// DateOf truncates t to its calendar date in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses s using the accepted layouts. It never fails: text that
// matches no layout yields an invalid Date carrying s verbatim.
func ParseDate(s string) Date {
	trimmed := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return DateOf(t)
		}
	}
	return Date{Raw: s}
}

// Valid reports whether the date parsed.
func (d Date) Valid() bool {
	return d.valid
}

// String returns YYYY-MM-DD for valid dates and the raw text otherwise.
func (d Date) String() string {
	if d.Valid() {
		return d.Format(DateFormat)
	}
	return d.Raw
}

// MarshalJSON writes valid dates as "YYYY-MM-DD" and invalid ones as their raw text.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a date string or a number of Unix milliseconds.
func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = ParseDate(s)
		return nil
	}

	// Dataframe exports write datetimes as epoch milliseconds.
	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		*d = Date{Raw: string(data)}
		return nil
	}
	*d = DateOf(time.UnixMilli(ms).UTC())
	return nil
}
