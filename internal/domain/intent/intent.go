// Package intent routes an incoming chat message to the handler that should
// process it, using fixed keyword and pattern heuristics.
package intent

import (
	"regexp"
	"strings"
)

// Intent is the classified purpose of a message.
type Intent string

const (
	// Billing asks to create an invoice from the message text.
	Billing Intent = "billing"
	// Reminder asks to save a reminder.
	Reminder Intent = "reminder"
	// SalesQuery asks for sales figures.
	SalesQuery Intent = "sales_query"
	// Fallback means no other intent matched; reply with generic help.
	Fallback Intent = "fallback"
)

// amountPat matches "<digits> ... <rupee word>", the shape of a dictated
// price ("2 kg rice 60 rupaye").
var amountPat = regexp.MustCompile(`\d+.*(rupaye|rupee|rs|रुपये)`)

// Classify determines the intent of a message. Checks run in fixed priority
// order and the first match wins, so a message carrying both a rupee-amount
// pattern and a remind keyword classifies as Billing. Multi-intent detection
// is deliberately not attempted; the ordering is part of the contract.
func Classify(text string) Intent {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "bill"),
		strings.Contains(lower, "invoice"),
		strings.Contains(lower, "बिल"),
		amountPat.MatchString(lower):
		return Billing
	case strings.Contains(lower, "remind"),
		strings.Contains(lower, "याद दिला"):
		return Reminder
	case strings.Contains(lower, "sales"),
		strings.Contains(lower, "today"),
		strings.Contains(lower, "kitna"),
		strings.Contains(lower, "कितना"):
		return SalesQuery
	default:
		return Fallback
	}
}
