// Package ledger implements the single-event ticket-sale state machine.
//
// A Ledger owns no state of its own: every invocation reads and writes the
// store.Store it was built with inside one transaction, so an invocation
// either commits all of its writes or none. Mutating invocations are also
// serialized by the Ledger's mutex; stores shared between processes
// provide their own serialization (see gormstore).
package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/farellandr/liveticket/internal/clock"
	"github.com/farellandr/liveticket/internal/models"
	"github.com/farellandr/liveticket/internal/store"
)

type Ledger struct {
	store    store.Store
	auth     AuthVerifier
	clock    clock.Clock
	events   EventSink
	payments PaymentCollector

	mu sync.Mutex
}

type Option func(*Ledger)

func WithClock(c clock.Clock) Option {
	return func(l *Ledger) { l.clock = c }
}

func WithEventSink(s EventSink) Option {
	return func(l *Ledger) { l.events = s }
}

func WithPaymentCollector(p PaymentCollector) Option {
	return func(l *Ledger) { l.payments = p }
}

// New returns a Ledger over s. auth decides who may buy.
func New(s store.Store, auth AuthVerifier, opts ...Option) *Ledger {
	l := &Ledger{
		store:    s,
		auth:     auth,
		clock:    clock.Real(),
		events:   DiscardEvents,
		payments: NoopPayments,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Initialize records the event configuration and resets the counters. It
// fails with ErrAlreadyInitialized on every call after the first.
func (l *Ledger) Initialize(ctx context.Context, organizer models.Identity, basePrice uint64, eventName string, saleEnd uint64, ticketCount uint32) error {
	cfg := models.EventConfig{
		Organizer:   organizer,
		BasePrice:   basePrice,
		SaleEnd:     saleEnd,
		TicketCount: ticketCount,
		EventName:   eventName,
	}
	if err := l.initialize(ctx, cfg); err != nil {
		return err
	}

	l.emit(ctx, models.LedgerEvent{
		Type:      models.EventInitialized,
		EventName: eventName,
		Fields: map[string]any{
			"organizer":    organizer.String(),
			"ticket_count": ticketCount,
			"base_price":   basePrice,
			"sale_end":     saleEnd,
		},
	})
	return nil
}

// initialize writes the configuration and counters under the ledger lock.
func (l *Ledger) initialize(ctx context.Context, cfg models.EventConfig) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.store.Update(ctx, func(tx store.Tx) error {
		st := state{tx: tx}
		ok, err := st.initialized()
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if ok {
			return ErrAlreadyInitialized
		}

		if err := st.setConfig(cfg); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		if err := st.setTicketsRemaining(cfg.TicketCount); err != nil {
			return fmt.Errorf("write tickets remaining: %w", err)
		}
		if err := st.setLastTicketID(0); err != nil {
			return fmt.Errorf("write last ticket id: %w", err)
		}
		if err := st.setCurrentPrice(cfg.BasePrice); err != nil {
			return fmt.Errorf("write current price: %w", err)
		}
		return nil
	})
}

// Purchase sells the next ticket to buyer at the current price and raises
// the price for the following sale. Preconditions are checked in order:
// authorization, initialization, sale deadline, supply.
func (l *Ledger) Purchase(ctx context.Context, buyer models.Identity) (models.Ticket, error) {
	if err := l.auth.RequireAuth(ctx, buyer); err != nil {
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	ticket, err := l.purchase(ctx, buyer)
	if err != nil {
		return models.Ticket{}, err
	}

	l.emit(ctx, models.LedgerEvent{
		Type:      models.EventPaymentRequired,
		EventName: ticket.EventName,
		Fields:    map[string]any{"ticket_id": ticket.ID, "amount": ticket.PurchasePrice},
	})
	l.emit(ctx, models.LedgerEvent{
		Type:      models.EventTicketPurchased,
		EventName: ticket.EventName,
		Fields: map[string]any{
			"ticket_id": ticket.ID,
			"owner":     ticket.Owner.String(),
			"price":     ticket.PurchasePrice,
		},
	})
	return ticket, nil
}

// purchase runs the sale transaction under the ledger lock. Events are
// emitted by the caller once the lock is released.
func (l *Ledger) purchase(ctx context.Context, buyer models.Identity) (models.Ticket, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	var ticket models.Ticket
	err := l.store.Update(ctx, func(tx store.Tx) error {
		st := state{tx: tx}
		cfg, err := st.config()
		if err != nil {
			return err
		}
		if now > cfg.SaleEnd {
			return ErrSaleEnded
		}
		remaining, err := st.ticketsRemaining()
		if err != nil {
			return fmt.Errorf("read tickets remaining: %w", err)
		}
		if remaining == 0 {
			return ErrSoldOut
		}

		price, err := st.currentPrice()
		if err != nil {
			return fmt.Errorf("read current price: %w", err)
		}
		id, err := st.lastTicketID()
		if err != nil {
			return fmt.Errorf("read last ticket id: %w", err)
		}

		if err := l.payments.Collect(ctx, models.Payment{TicketID: id, Buyer: buyer, Amount: price}); err != nil {
			return fmt.Errorf("collect payment: %w", err)
		}

		if err := st.setLastTicketID(id + 1); err != nil {
			return fmt.Errorf("write last ticket id: %w", err)
		}
		ticket = models.Ticket{
			ID:            id,
			Owner:         buyer,
			PurchaseTime:  now,
			PurchasePrice: price,
			EventName:     cfg.EventName,
		}
		if err := st.addTicket(ticket); err != nil {
			return fmt.Errorf("write ticket %d: %w", id, err)
		}
		if err := st.setCurrentPrice(NextPrice(price, cfg.MaxPrice())); err != nil {
			return fmt.Errorf("write current price: %w", err)
		}
		if err := st.setTicketsRemaining(remaining - 1); err != nil {
			return fmt.Errorf("write tickets remaining: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Ticket{}, err
	}
	return ticket, nil
}

func (l *Ledger) now() uint64 {
	sec := l.clock.Now().Unix()
	if sec < 0 {
		return 0
	}
	return uint64(sec)
}

// emit hands ev to the sink. A panicking sink is contained here so that
// observability can never change the result of an invocation.
func (l *Ledger) emit(ctx context.Context, ev models.LedgerEvent) {
	defer func() { _ = recover() }()
	ev.OccurredAt = l.clock.Now().UTC()
	l.events.Emit(ctx, ev)
}
