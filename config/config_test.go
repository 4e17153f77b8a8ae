package config

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farellandr/liveticket/internal/store/memstore"
	"github.com/farellandr/liveticket/internal/store/sqlitestore"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "jwt")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "ticketledger", cfg.AMQPExchange)
	assert.NotEqual(t, "jwt", cfg.QRSecret)
	assert.Len(t, cfg.QRSecret, 64)

	derived, err := DeriveQRSecret("jwt")
	require.NoError(t, err)
	assert.Equal(t, derived, cfg.QRSecret)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", " Memory ")
	t.Setenv("QR_SECRET", "qr")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, "qr", cfg.QRSecret)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestOpenStore(t *testing.T) {
	s, err := OpenStore(&Config{StoreDriver: DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &memstore.Store{}, s)

	s, err = OpenStore(&Config{StoreDriver: DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "l.db")})
	require.NoError(t, err)
	assert.IsType(t, &sqlitestore.Store{}, s)
	require.NoError(t, s.Close())

	_, err = OpenStore(&Config{StoreDriver: "redis"})
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "tickets", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=tickets port=5432 sslmode=disable TimeZone=UTC", cfg.PostgresDSN())
}

func TestDeriveQRSecret(t *testing.T) {
	a, err := DeriveQRSecret("secret-a")
	require.NoError(t, err)
	b, err := DeriveQRSecret("secret-b")
	require.NoError(t, err)
	again, err := DeriveQRSecret("secret-a")
	require.NoError(t, err)

	assert.Equal(t, a, again)
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "secret-a")
}

func TestLoadConfigWithoutSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("QR_SECRET", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.QRSecret)
}
