// Package scam flags suspicious expenses with a keyword and amount heuristic.
package scam

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finguard-dev/finguard/internal/model"
)

// DefaultKeywords are matched case-insensitively as substrings of the description.
func DefaultKeywords() []string {
	return []string{
		"lottery",
		"prize",
		"winner",
		"gift card",
		"bitcoin",
		"crypto",
		"wire transfer",
		"urgent",
		"otp",
		"refund",
	}
}

// DefaultThreshold is the amount above which any expense is flagged.
var DefaultThreshold = decimal.NewFromInt(10000)

// Verdict is the outcome of checking one expense.
type Verdict struct {
	Suspicious bool
	Reasons    []string
}

// Finding is a flagged record and its position in the ledger.
type Finding struct {
	Index   int
	Expense model.Expense
	Verdict Verdict
}

// Detector applies the heuristic.
type Detector struct {
	keywords  []string
	threshold decimal.Decimal
}

// NewDetector creates a Detector. A zero threshold disables the amount check.
func NewDetector(keywords []string, threshold decimal.Decimal) *Detector {
	d := &Detector{threshold: threshold}
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			d.keywords = append(d.keywords, k)
		}
	}
	return d
}

// Check flags e when its description contains a keyword or its amount
// exceeds the threshold.
func (d *Detector) Check(e model.Expense) Verdict {
	var v Verdict
	desc := strings.ToLower(e.Description)
	for _, k := range d.keywords {
		if strings.Contains(desc, k) {
			v.Reasons = append(v.Reasons, fmt.Sprintf("description mentions %q", k))
		}
	}
	if d.threshold.IsPositive() && e.Amount.GreaterThan(d.threshold) {
		v.Reasons = append(v.Reasons, fmt.Sprintf("amount %s exceeds %s", e.Amount.StringFixed(2), d.threshold.StringFixed(2)))
	}
	v.Suspicious = len(v.Reasons) > 0
	return v
}

// Scan checks every record and returns the flagged ones in ledger order.
func (d *Detector) Scan(records []model.Expense) []Finding {
	var findings []Finding
	for i, r := range records {
		if v := d.Check(r); v.Suspicious {
			findings = append(findings, Finding{Index: i, Expense: r, Verdict: v})
		}
	}
	return findings
}
