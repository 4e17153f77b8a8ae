package ledger

import (
	"context"

	"github.com/farellandr/liveticket/internal/models"
	"github.com/farellandr/liveticket/internal/store"
)

// TicketsRemaining returns the unsold supply, or 0 before Initialize.
func (l *Ledger) TicketsRemaining(ctx context.Context) (uint32, error) {
	var n uint32
	err := l.store.View(ctx, func(tx store.Tx) error {
		var err error
		n, err = state{tx: tx}.ticketsRemaining()
		return err
	})
	return n, err
}

// CurrentPrice returns the price the next buyer pays, or 0 before
// Initialize.
func (l *Ledger) CurrentPrice(ctx context.Context) (uint64, error) {
	var p uint64
	err := l.store.View(ctx, func(tx store.Tx) error {
		var err error
		p, err = state{tx: tx}.currentPrice()
		return err
	})
	return p, err
}

func (l *Ledger) TicketOwner(ctx context.Context, id uint32) (models.Identity, error) {
	var owner models.Identity
	err := l.store.View(ctx, func(tx store.Tx) error {
		var err error
		owner, err = state{tx: tx}.ticketOwner(id)
		return err
	})
	return owner, err
}

func (l *Ledger) Ticket(ctx context.Context, id uint32) (models.Ticket, error) {
	var t models.Ticket
	err := l.store.View(ctx, func(tx store.Tx) error {
		var err error
		t, err = state{tx: tx}.ticket(id)
		return err
	})
	return t, err
}

func (l *Ledger) Config(ctx context.Context) (models.EventConfig, error) {
	var cfg models.EventConfig
	err := l.store.View(ctx, func(tx store.Tx) error {
		var err error
		cfg, err = state{tx: tx}.config()
		return err
	})
	return cfg, err
}
