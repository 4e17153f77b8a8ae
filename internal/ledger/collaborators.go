package ledger

import (
	"context"

	"github.com/farellandr/liveticket/internal/models"
)

// AuthVerifier fails when the caller of the current invocation did not
// authorize as identity.
type AuthVerifier interface {
	RequireAuth(ctx context.Context, identity models.Identity) error
}

type AuthFunc func(ctx context.Context, identity models.Identity) error

func (f AuthFunc) RequireAuth(ctx context.Context, identity models.Identity) error {
	return f(ctx, identity)
}

// AllowAll accepts every identity. Use it only where the host has already
// authenticated the caller.
var AllowAll AuthVerifier = AuthFunc(func(context.Context, models.Identity) error { return nil })

// EventSink receives informational events. Sinks handle their own failures.
type EventSink interface {
	Emit(ctx context.Context, event models.LedgerEvent)
}

type discardSink struct{}

func (discardSink) Emit(context.Context, models.LedgerEvent) {}

// DiscardEvents drops every event.
var DiscardEvents EventSink = discardSink{}

// PaymentCollector settles the charge for a ticket. An error aborts the
// purchase.
type PaymentCollector interface {
	Collect(ctx context.Context, payment models.Payment) error
}

type noopPayments struct{}

func (noopPayments) Collect(context.Context, models.Payment) error { return nil }

// NoopPayments accepts every charge without settling anything.
var NoopPayments PaymentCollector = noopPayments{}
