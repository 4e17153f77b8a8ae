package models

// Ticket is the record persisted for every sold unit. PurchasePrice is the
// price charged, before the post-sale price adjustment.
type Ticket struct {
	ID            uint32   `json:"id"`
	Owner         Identity `json:"owner"`
	PurchaseTime  uint64   `json:"purchase_time"`
	PurchasePrice uint64   `json:"purchase_price"`
	EventName     string   `json:"event_name"`
}
