package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/hkdf"

	"github.com/farellandr/liveticket/internal/store"
	"github.com/farellandr/liveticket/internal/store/gormstore"
	"github.com/farellandr/liveticket/internal/store/memstore"
	"github.com/farellandr/liveticket/internal/store/sqlitestore"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"sqlite"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"liveticket.db"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME"`
	DBSSLMode   string `env:"DB_SSLMODE" envDefault:"disable"`

	JWTSecret    string `env:"JWT_SECRET"`
	AdminKeyHash string `env:"ADMIN_KEY_HASH"`
	QRSecret     string `env:"QR_SECRET"`

	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" envDefault:"ticketledger"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if cfg.QRSecret == "" && cfg.JWTSecret != "" {
		qr, err := DeriveQRSecret(cfg.JWTSecret)
		if err != nil {
			return nil, err
		}
		cfg.QRSecret = qr
	}
	return &cfg, nil
}

const qrKeyInfo = "liveticket ticket qr signature v1"

// DeriveQRSecret expands the JWT secret into an independent key for ticket
// QR signatures, used when QR_SECRET is not set.
func DeriveQRSecret(jwtSecret string) (string, error) {
	key := make([]byte, sha256.Size)
	r := hkdf.New(sha256.New, []byte(jwtSecret), nil, []byte(qrKeyInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return "", fmt.Errorf("derive qr secret: %w", err)
	}
	return hex.EncodeToString(key), nil
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

// OpenStore opens the backend selected by StoreDriver.
func OpenStore(cfg *Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case DriverMemory:
		return memstore.New(), nil
	case DriverPostgres:
		return gormstore.Open(cfg.PostgresDSN())
	case DriverSQLite:
		return sqlitestore.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
