// Package store defines the transactional key-value store the ledger
// persists into. Backends live in the memstore, gormstore and sqlitestore
// subpackages.
package store

import (
	"context"
	"errors"
)

// ErrReadOnly is returned by Tx.Set inside a View transaction.
var ErrReadOnly = errors.New("store: write in read-only transaction")

// Tx is a view of the store inside one transaction. Reads observe writes
// made earlier in the same transaction.
type Tx interface {
	Has(key Key) (bool, error)
	Get(key Key) (value []byte, ok bool, err error)
	Set(key Key, value []byte) error
}

// Store runs functions inside transactions. Update commits every Set made
// by fn only when fn returns nil; otherwise nothing is written.
type Store interface {
	View(ctx context.Context, fn func(Tx) error) error
	Update(ctx context.Context, fn func(Tx) error) error
	// Scan visits every stored entry in key order.
	Scan(ctx context.Context, fn func(key Key, value []byte) error) error
	Close() error
}
