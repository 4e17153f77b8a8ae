// Package events delivers the ledger's informational events. Every sink
// swallows its own failures; delivery is best effort.
package events

import (
	"context"
	"log/slog"

	"github.com/farellandr/liveticket/internal/models"
)

// LogSink writes each event as one structured log record.
type LogSink struct {
	Logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{Logger: logger}
}

func (s *LogSink) Emit(ctx context.Context, ev models.LedgerEvent) {
	attrs := make([]slog.Attr, 0, len(ev.Fields)+1)
	attrs = append(attrs, slog.String("event_name", ev.EventName))
	for k, v := range ev.Fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	s.Logger.LogAttrs(ctx, slog.LevelInfo, ev.Type, attrs...)
}

// Sink matches ledger.EventSink.
type Sink interface {
	Emit(ctx context.Context, ev models.LedgerEvent)
}

// Multi fans each event out to every sink in order.
type Multi []Sink

func (m Multi) Emit(ctx context.Context, ev models.LedgerEvent) {
	for _, s := range m {
		s.Emit(ctx, ev)
	}
}
