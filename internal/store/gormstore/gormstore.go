// Package gormstore persists the ledger in a relational database through
// gorm. On PostgreSQL every Update also takes a transaction-scoped advisory
// lock, so several server processes sharing one database still apply
// invocations one at a time.
package gormstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/farellandr/liveticket/internal/store"
)

// DefaultLockID is the pg_advisory_xact_lock key used when none is given.
const DefaultLockID int64 = 0x7469636b6574

type Entry struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     []byte `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Entry) TableName() string {
	return "ledger_entries"
}

type Store struct {
	db     *gorm.DB
	lockID int64
}

// Open connects to PostgreSQL and migrates the entry table.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return New(db, DefaultLockID)
}

// New wraps an existing gorm handle.
func New(db *gorm.DB, lockID int64) (*Store, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate ledger entries: %w", err)
	}
	return &Store{db: db, lockID: lockID}, nil
}

func (s *Store) View(ctx context.Context, fn func(store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		return fn(&tx{db: gtx, readOnly: true})
	}, &sql.TxOptions{ReadOnly: true})
}

func (s *Store) Update(ctx context.Context, fn func(store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		if gtx.Dialector.Name() == "postgres" {
			if err := gtx.Exec("SELECT pg_advisory_xact_lock(?)", s.lockID).Error; err != nil {
				return fmt.Errorf("acquire ledger lock: %w", err)
			}
		}
		return fn(&tx{db: gtx})
	})
}

func (s *Store) Scan(ctx context.Context, fn func(store.Key, []byte) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var entries []Entry
	if err := s.db.WithContext(ctx).Order("key").Find(&entries).Error; err != nil {
		return fmt.Errorf("scan ledger entries: %w", err)
	}
	for _, e := range entries {
		key, err := store.ParseKey(e.Key)
		if err != nil {
			return err
		}
		if err := fn(key, e.Value); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type tx struct {
	db       *gorm.DB
	readOnly bool
}

func (t *tx) Has(key store.Key) (bool, error) {
	var count int64
	if err := t.db.Model(&Entry{}).Where("key = ?", key.String()).Count(&count).Error; err != nil {
		return false, fmt.Errorf("lookup %s: %w", key, err)
	}
	return count > 0, nil
}

func (t *tx) Get(key store.Key) ([]byte, bool, error) {
	var e Entry
	err := t.db.Where("key = ?", key.String()).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return e.Value, true, nil
}

func (t *tx) Set(key store.Key, value []byte) error {
	if t.readOnly {
		return store.ErrReadOnly
	}
	e := Entry{Key: key.String(), Value: value}
	err := t.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
