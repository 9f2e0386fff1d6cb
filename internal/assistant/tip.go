package assistant

import (
	"fmt"

	"github.com/finguard-dev/finguard/internal/ledger"
)

// Tip returns a one-line saving suggestion that needs no network call.
func Tip(agg ledger.Aggregates) string {
	if agg.OverBudget() {
		return fmt.Sprintf("You are %s over your monthly budget. Pause non-essential spending until next month.",
			agg.RemainingBudget.Abs().StringFixed(2))
	}
	cats := agg.Categories()
	if len(cats) == 0 {
		return "Record a few expenses to get a personalised saving tip."
	}
	return fmt.Sprintf("Try reducing your %s expenses by 20%% this month to increase your savings!", cats[0].Category)
}
