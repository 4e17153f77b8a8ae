// Package memstore is an in-process store.Store. Update transactions are
// serialized by a single mutex and staged until fn returns.
package memstore

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/farellandr/liveticket/internal/store"
)

type Store struct {
	mu sync.RWMutex
	m  map[string]entry
}

type entry struct {
	key   store.Key
	value []byte
}

func New() *Store {
	return &Store{m: make(map[string]entry)}
}

func (s *Store) View(ctx context.Context, fn func(store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&tx{s: s, readOnly: true})
}

func (s *Store) Update(ctx context.Context, fn func(store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &tx{s: s, writes: make(map[string]entry)}
	if err := fn(t); err != nil {
		return err
	}
	for k, e := range t.writes {
		s.m[k] = e
	}
	return nil
}

func (s *Store) Scan(ctx context.Context, fn func(store.Key, []byte) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.m))
	for k := range s.m {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		e := s.m[k]
		if err := fn(e.key, bytes.Clone(e.value)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error { return nil }

type tx struct {
	s        *Store
	readOnly bool
	writes   map[string]entry
}

func (t *tx) lookup(key store.Key) (entry, bool) {
	name := key.String()
	if e, ok := t.writes[name]; ok {
		return e, true
	}
	e, ok := t.s.m[name]
	return e, ok
}

func (t *tx) Has(key store.Key) (bool, error) {
	_, ok := t.lookup(key)
	return ok, nil
}

func (t *tx) Get(key store.Key) ([]byte, bool, error) {
	e, ok := t.lookup(key)
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(e.value), true, nil
}

func (t *tx) Set(key store.Key, value []byte) error {
	if t.readOnly {
		return store.ErrReadOnly
	}
	t.writes[key.String()] = entry{key: key, value: bytes.Clone(value)}
	return nil
}
