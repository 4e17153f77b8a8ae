package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farellandr/liveticket/internal/models"
)

var secret = []byte("test-secret")

func TestTokenRoundtrip(t *testing.T) {
	token, err := IssueToken(secret, "GBUYER", time.Hour, time.Now())
	require.NoError(t, err)

	id, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, models.Identity("GBUYER"), id)
}

func TestParseTokenRejects(t *testing.T) {
	expired, err := IssueToken(secret, "GBUYER", time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = ParseToken(secret, expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	other, err := IssueToken([]byte("other"), "GBUYER", time.Hour, time.Now())
	require.NoError(t, err)
	_, err = ParseToken(secret, other)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	empty, err := IssueToken(secret, "", time.Hour, time.Now())
	require.NoError(t, err)
	_, err = ParseToken(secret, empty)
	assert.ErrorIs(t, err, models.ErrEmptyIdentity)

	_, err = ParseToken(nil, expired)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestContextVerifier(t *testing.T) {
	v := ContextVerifier{}

	err := v.RequireAuth(context.Background(), "GBUYER")
	assert.ErrorIs(t, err, ErrNoPrincipal)

	ctx := WithPrincipal(context.Background(), "GBUYER")
	assert.NoError(t, v.RequireAuth(ctx, "GBUYER"))
	assert.ErrorIs(t, v.RequireAuth(ctx, "GOTHER"), ErrPrincipalMismatch)
}

func TestAdminKey(t *testing.T) {
	hash, err := HashAdminKey("s3cret")
	require.NoError(t, err)

	assert.True(t, CheckAdminKey(hash, "s3cret"))
	assert.False(t, CheckAdminKey(hash, "wrong"))
	assert.False(t, CheckAdminKey("", "s3cret"))
	assert.False(t, CheckAdminKey(hash, ""))
}
