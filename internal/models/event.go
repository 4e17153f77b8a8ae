package models

// EventConfig is written once by Initialize and never changes afterwards.
// SaleEnd is a unix timestamp in seconds; purchases at exactly SaleEnd are
// still accepted.
type EventConfig struct {
	Organizer   Identity `json:"organizer"`
	BasePrice   uint64   `json:"base_price"`
	SaleEnd     uint64   `json:"sale_end"`
	TicketCount uint32   `json:"ticket_count"`
	EventName   string   `json:"event_name"`
}

// MaxPrice is the ceiling the current price can climb to.
func (c EventConfig) MaxPrice() uint64 {
	return saturatingDouble(c.BasePrice)
}

func saturatingDouble(v uint64) uint64 {
	if v > ^uint64(0)/2 {
		return ^uint64(0)
	}
	return v * 2
}
