package models

import "time"

const (
	EventInitialized     = "event_initialized"
	EventPaymentRequired = "payment_required"
	EventTicketPurchased = "ticket_purchased"
)

// LedgerEvent is the informational record emitted after initialize and
// purchase. Consumers must not derive ledger state from it.
type LedgerEvent struct {
	Type       string         `json:"type"`
	EventName  string         `json:"event_name"`
	OccurredAt time.Time      `json:"occurred_at"`
	Fields     map[string]any `json:"fields,omitempty"`
}
