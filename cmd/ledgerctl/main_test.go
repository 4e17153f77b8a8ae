package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farellandr/liveticket/internal/auth"
	"github.com/farellandr/liveticket/internal/ledger"
	"github.com/farellandr/liveticket/internal/models"
	"github.com/farellandr/liveticket/internal/store/memstore"
	"github.com/farellandr/liveticket/internal/store/sqlitestore"
)

func TestRunRejectsUnknownSubcommand(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(nil, &out))
	assert.ErrorContains(t, run([]string{"mint"}, &out), `unknown subcommand: "mint"`)

	require.NoError(t, run([]string{"help"}, &out))
	assert.Contains(t, out.String(), "hash-admin-key")
}

func TestTokenRoundTrip(t *testing.T) {
	var out bytes.Buffer
	err := runToken([]string{"--identity", "GBUYER", "--ttl", "1h", "--secret", "s3cret"}, &out, time.Now())
	require.NoError(t, err)

	id, err := auth.ParseToken([]byte("s3cret"), strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, models.Identity("GBUYER"), id)
}

func TestTokenValidatesFlags(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, runToken([]string{"--secret", "s"}, &out, time.Now()))
	assert.Error(t, runToken([]string{"--identity", "G", "--ttl", "-1h", "--secret", "s"}, &out, time.Now()))
	assert.ErrorIs(t, runToken([]string{"--identity", "G", "--secret", ""}, &out, time.Now()), auth.ErrMissingSecret)
}

func TestHashAdminKey(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runHashAdminKey([]string{"--key", "open-sesame"}, &out))
	assert.True(t, auth.CheckAdminKey(strings.TrimSpace(out.String()), "open-sesame"))

	assert.Error(t, runHashAdminKey(nil, &out))
}

func TestDumpKeys(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	l := ledger.New(st, ledger.AllowAll)
	require.NoError(t, l.Initialize(ctx, "GORG", 100, "Concert", 1<<40, 3))
	_, err := l.Purchase(ctx, "GBUYER")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, dumpKeys(ctx, st, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, out.String(), "tickets_remaining\t2\n")
	assert.Contains(t, out.String(), "current_price\t102\n")
	assert.Contains(t, out.String(), "ticket_owner/0\t\"GBUYER\"\n")
}

func TestKeysOpensSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	st, err := sqlitestore.Open(path)
	require.NoError(t, err)
	l := ledger.New(st, ledger.AllowAll)
	require.NoError(t, l.Initialize(context.Background(), "GORG", 5, "Gig", 1<<40, 1))
	require.NoError(t, st.Close())

	var out bytes.Buffer
	require.NoError(t, runKeys([]string{"--driver", "sqlite", "--sqlite-path", path}, &out))
	assert.Contains(t, out.String(), "current_price\t5\n")
}
