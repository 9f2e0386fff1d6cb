// Package assistant answers spending questions through an OpenAI-compatible
// chat endpoint. It only ever sees ledger.Aggregates, never raw records.
package assistant

import (
	"fmt"
	"strings"

	"github.com/finguard-dev/finguard/internal/ledger"
)

// SystemPrompt frames every conversation.
const SystemPrompt = "You are FinGuard, a concise personal-finance assistant. " +
	"Answer using only the spending summary provided. " +
	"Give practical, specific saving advice in at most five sentences."

// BuildPrompt renders the aggregates and the user's question as one message.
func BuildPrompt(agg ledger.Aggregates, question string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Spending summary as of %s:\n", agg.AsOf)
	fmt.Fprintf(&b, "- Total spent (all time): %s\n", agg.Total.StringFixed(2))
	fmt.Fprintf(&b, "- Spent this month: %s\n", agg.MonthToDate.StringFixed(2))
	if agg.MonthlyLimit.IsPositive() {
		fmt.Fprintf(&b, "- Monthly budget: %s\n", agg.MonthlyLimit.StringFixed(2))
		fmt.Fprintf(&b, "- Budget remaining: %s\n", agg.RemainingBudget.StringFixed(2))
	} else {
		b.WriteString("- Monthly budget: not set\n")
	}

	cats := agg.Categories()
	if len(cats) == 0 {
		b.WriteString("- No expenses recorded yet.\n")
	} else {
		b.WriteString("Spending by category:\n")
		for _, c := range cats {
			fmt.Fprintf(&b, "- %s: %s\n", c.Category, c.Amount.StringFixed(2))
		}
	}

	fmt.Fprintf(&b, "\nQuestion: %s", strings.TrimSpace(question))
	return b.String()
}
