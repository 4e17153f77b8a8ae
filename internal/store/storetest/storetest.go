// Package storetest holds the behavioral checks every store backend must
// pass. Backend packages call Run from their own tests.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farellandr/liveticket/internal/store"
)

// Run exercises s against the store contract. open must return a fresh,
// empty store for every call.
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	t.Run("EmptyStore", func(t *testing.T) { testEmptyStore(t, open(t)) })
	t.Run("UpdateCommits", func(t *testing.T) { testUpdateCommits(t, open(t)) })
	t.Run("UpdateRollsBack", func(t *testing.T) { testUpdateRollsBack(t, open(t)) })
	t.Run("ReadYourWrites", func(t *testing.T) { testReadYourWrites(t, open(t)) })
	t.Run("Overwrite", func(t *testing.T) { testOverwrite(t, open(t)) })
	t.Run("ViewIsReadOnly", func(t *testing.T) { testViewIsReadOnly(t, open(t)) })
	t.Run("Scan", func(t *testing.T) { testScan(t, open(t)) })
	t.Run("CanceledContext", func(t *testing.T) { testCanceledContext(t, open(t)) })
}

func testEmptyStore(t *testing.T, s store.Store) {
	err := s.View(context.Background(), func(tx store.Tx) error {
		ok, err := tx.Has(store.ConfigKey{})
		require.NoError(t, err)
		assert.False(t, ok)

		v, ok, err := tx.Get(store.TicketOwnerKey{ID: 0})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
		return nil
	})
	require.NoError(t, err)
}

func testUpdateCommits(t *testing.T, s store.Store) {
	ctx := context.Background()
	err := s.Update(ctx, func(tx store.Tx) error {
		return tx.Set(store.CurrentPriceKey{}, []byte{1, 2, 3})
	})
	require.NoError(t, err)

	err = s.View(ctx, func(tx store.Tx) error {
		v, ok, err := tx.Get(store.CurrentPriceKey{})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte{1, 2, 3}, v)
		return nil
	})
	require.NoError(t, err)
}

func testUpdateRollsBack(t *testing.T, s store.Store) {
	ctx := context.Background()
	boom := errors.New("boom")
	err := s.Update(ctx, func(tx store.Tx) error {
		if err := tx.Set(store.TicketsRemainingKey{}, []byte{9}); err != nil {
			return err
		}
		if err := tx.Set(store.TicketDataKey{ID: 1}, []byte{8}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = s.View(ctx, func(tx store.Tx) error {
		for _, k := range []store.Key{store.TicketsRemainingKey{}, store.TicketDataKey{ID: 1}} {
			ok, err := tx.Has(k)
			require.NoError(t, err)
			assert.False(t, ok, k.String())
		}
		return nil
	})
	require.NoError(t, err)
}

func testReadYourWrites(t *testing.T, s store.Store) {
	err := s.Update(context.Background(), func(tx store.Tx) error {
		require.NoError(t, tx.Set(store.LastTicketIDKey{}, []byte{5}))
		ok, err := tx.Has(store.LastTicketIDKey{})
		require.NoError(t, err)
		assert.True(t, ok)

		v, ok, err := tx.Get(store.LastTicketIDKey{})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte{5}, v)
		return nil
	})
	require.NoError(t, err)
}

func testOverwrite(t *testing.T, s store.Store) {
	ctx := context.Background()
	for _, b := range []byte{1, 2} {
		err := s.Update(ctx, func(tx store.Tx) error {
			return tx.Set(store.ConfigKey{}, []byte{b})
		})
		require.NoError(t, err)
	}

	err := s.View(ctx, func(tx store.Tx) error {
		v, _, err := tx.Get(store.ConfigKey{})
		require.NoError(t, err)
		assert.Equal(t, []byte{2}, v)
		return nil
	})
	require.NoError(t, err)
}

func testViewIsReadOnly(t *testing.T, s store.Store) {
	err := s.View(context.Background(), func(tx store.Tx) error {
		return tx.Set(store.ConfigKey{}, []byte{1})
	})
	assert.ErrorIs(t, err, store.ErrReadOnly)
}

func testScan(t *testing.T, s store.Store) {
	ctx := context.Background()
	err := s.Update(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Set(store.TicketOwnerKey{ID: 0}, []byte("a")))
		require.NoError(t, tx.Set(store.ConfigKey{}, []byte("c")))
		return tx.Set(store.CurrentPriceKey{}, []byte("p"))
	})
	require.NoError(t, err)

	var got []string
	err = s.Scan(ctx, func(k store.Key, v []byte) error {
		got = append(got, k.String()+"="+string(v))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"config=c", "current_price=p", "ticket_owner/0=a"}, got)
}

func testCanceledContext(t *testing.T, s store.Store) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Update(ctx, func(tx store.Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
