package models

// Payment describes the amount a buyer owes for the ticket being sold.
// Settlement happens outside the ledger.
type Payment struct {
	TicketID uint32   `json:"ticket_id"`
	Buyer    Identity `json:"buyer"`
	Amount   uint64   `json:"amount"`
}
