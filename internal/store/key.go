package store

import (
	"fmt"
	"strconv"
	"strings"
)

// Key is the closed set of ledger keys. Only the types in this file
// implement it.
type Key interface {
	fmt.Stringer
	isKey()
}

type (
	ConfigKey           struct{}
	TicketsRemainingKey struct{}
	LastTicketIDKey     struct{}
	CurrentPriceKey     struct{}
	TicketOwnerKey      struct{ ID uint32 }
	TicketDataKey       struct{ ID uint32 }
)

const (
	configName           = "config"
	ticketsRemainingName = "tickets_remaining"
	lastTicketIDName     = "last_ticket_id"
	currentPriceName     = "current_price"
	ticketOwnerPrefix    = "ticket_owner/"
	ticketDataPrefix     = "ticket_data/"
)

func (ConfigKey) isKey()           {}
func (TicketsRemainingKey) isKey() {}
func (LastTicketIDKey) isKey()     {}
func (CurrentPriceKey) isKey()     {}
func (TicketOwnerKey) isKey()      {}
func (TicketDataKey) isKey()       {}

func (ConfigKey) String() string           { return configName }
func (TicketsRemainingKey) String() string { return ticketsRemainingName }
func (LastTicketIDKey) String() string     { return lastTicketIDName }
func (CurrentPriceKey) String() string     { return currentPriceName }

func (k TicketOwnerKey) String() string {
	return ticketOwnerPrefix + strconv.FormatUint(uint64(k.ID), 10)
}

func (k TicketDataKey) String() string {
	return ticketDataPrefix + strconv.FormatUint(uint64(k.ID), 10)
}

// ParseKey is the inverse of Key.String.
func ParseKey(s string) (Key, error) {
	switch s {
	case configName:
		return ConfigKey{}, nil
	case ticketsRemainingName:
		return TicketsRemainingKey{}, nil
	case lastTicketIDName:
		return LastTicketIDKey{}, nil
	case currentPriceName:
		return CurrentPriceKey{}, nil
	}

	if rest, ok := strings.CutPrefix(s, ticketOwnerPrefix); ok {
		id, err := parseID(rest)
		if err != nil {
			return nil, fmt.Errorf("store: parse key %q: %w", s, err)
		}
		return TicketOwnerKey{ID: id}, nil
	}
	if rest, ok := strings.CutPrefix(s, ticketDataPrefix); ok {
		id, err := parseID(rest)
		if err != nil {
			return nil, fmt.Errorf("store: parse key %q: %w", s, err)
		}
		return TicketDataKey{ID: id}, nil
	}
	return nil, fmt.Errorf("store: unknown key %q", s)
}

func parseID(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}
