package ledger

import (
	"github.com/farellandr/liveticket/internal/codec"
	"github.com/farellandr/liveticket/internal/models"
	"github.com/farellandr/liveticket/internal/store"
)

// state is the typed view of the ledger keys inside one transaction.
type state struct {
	tx store.Tx
}

func get[T any](tx store.Tx, key store.Key) (T, bool, error) {
	var v T
	data, ok, err := tx.Get(key)
	if err != nil || !ok {
		return v, false, err
	}
	if err := codec.Unmarshal(data, &v); err != nil {
		return v, false, err
	}
	return v, true, nil
}

func put(tx store.Tx, key store.Key, v any) error {
	data, err := codec.Marshal(v)
	if err != nil {
		return err
	}
	return tx.Set(key, data)
}

func (s state) initialized() (bool, error) {
	return s.tx.Has(store.ConfigKey{})
}

func (s state) config() (models.EventConfig, error) {
	cfg, ok, err := get[models.EventConfig](s.tx, store.ConfigKey{})
	if err != nil {
		return cfg, err
	}
	if !ok {
		return cfg, ErrNotInitialized
	}
	return cfg, nil
}

func (s state) ticketsRemaining() (uint32, error) {
	n, _, err := get[uint32](s.tx, store.TicketsRemainingKey{})
	return n, err
}

func (s state) lastTicketID() (uint32, error) {
	n, _, err := get[uint32](s.tx, store.LastTicketIDKey{})
	return n, err
}

func (s state) currentPrice() (uint64, error) {
	n, _, err := get[uint64](s.tx, store.CurrentPriceKey{})
	return n, err
}

func (s state) ticketOwner(id uint32) (models.Identity, error) {
	owner, ok, err := get[models.Identity](s.tx, store.TicketOwnerKey{ID: id})
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrTicketNotFound
	}
	return owner, nil
}

func (s state) ticket(id uint32) (models.Ticket, error) {
	t, ok, err := get[models.Ticket](s.tx, store.TicketDataKey{ID: id})
	if err != nil {
		return t, err
	}
	if !ok {
		return t, ErrTicketNotFound
	}
	return t, nil
}

func (s state) setConfig(cfg models.EventConfig) error {
	return put(s.tx, store.ConfigKey{}, cfg)
}

func (s state) setTicketsRemaining(n uint32) error {
	return put(s.tx, store.TicketsRemainingKey{}, n)
}

func (s state) setLastTicketID(n uint32) error {
	return put(s.tx, store.LastTicketIDKey{}, n)
}

func (s state) setCurrentPrice(p uint64) error {
	return put(s.tx, store.CurrentPriceKey{}, p)
}

func (s state) addTicket(t models.Ticket) error {
	if err := put(s.tx, store.TicketOwnerKey{ID: t.ID}, t.Owner); err != nil {
		return err
	}
	return put(s.tx, store.TicketDataKey{ID: t.ID}, t)
}
