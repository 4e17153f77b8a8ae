// Package sqlitestore persists the ledger in a single SQLite file using the
// pure-Go modernc driver.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/farellandr/liveticket/internal/store"
)

const schema = `CREATE TABLE IF NOT EXISTS ledger_entries (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL
)`

type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the database at path. Path ":memory:"
// gives a private in-memory database.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = "file:" + filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection: SQLite writers serialize anyway, and a single
	// connection keeps ":memory:" databases shared across transactions.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

func (s *Store) View(ctx context.Context, fn func(store.Tx) error) error {
	return s.run(ctx, true, fn)
}

func (s *Store) Update(ctx context.Context, fn func(store.Tx) error) error {
	return s.run(ctx, false, fn)
}

func (s *Store) run(ctx context.Context, readOnly bool, fn func(store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sqlTx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(&tx{ctx: ctx, sqlTx: sqlTx, readOnly: readOnly}); err != nil {
		_ = sqlTx.Rollback()
		return err
	}
	if readOnly {
		return sqlTx.Rollback()
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) Scan(ctx context.Context, fn func(store.Key, []byte) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rows, err := s.sqlDB.QueryContext(ctx, "SELECT key, value FROM ledger_entries ORDER BY key")
	if err != nil {
		return fmt.Errorf("scan ledger entries: %w", err)
	}
	defer rows.Close()

	type row struct {
		key   store.Key
		value []byte
	}
	// Drain before calling fn so callbacks may reopen transactions on the
	// single connection.
	var all []row
	for rows.Next() {
		var name string
		var value []byte
		if err := rows.Scan(&name, &value); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
		key, err := store.ParseKey(name)
		if err != nil {
			return err
		}
		all = append(all, row{key: key, value: value})
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	for _, r := range all {
		if err := fn(r.key, r.value); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

type tx struct {
	ctx      context.Context
	sqlTx    *sql.Tx
	readOnly bool
}

func (t *tx) Has(key store.Key) (bool, error) {
	var one int
	err := t.sqlTx.QueryRowContext(t.ctx, "SELECT 1 FROM ledger_entries WHERE key = ?", key.String()).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup %s: %w", key, err)
	}
	return true, nil
}

func (t *tx) Get(key store.Key) ([]byte, bool, error) {
	var value []byte
	err := t.sqlTx.QueryRowContext(t.ctx, "SELECT value FROM ledger_entries WHERE key = ?", key.String()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (t *tx) Set(key store.Key, value []byte) error {
	if t.readOnly {
		return store.ErrReadOnly
	}
	_, err := t.sqlTx.ExecContext(t.ctx,
		"INSERT INTO ledger_entries (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key.String(), value,
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
