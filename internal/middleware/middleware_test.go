package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farellandr/liveticket/internal/auth"
	"github.com/farellandr/liveticket/internal/models"
)

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/", func(c *gin.Context) {
		id, _ := c.Get(IdentityKey)
		principal, _ := auth.PrincipalFrom(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"identity": id, "principal": principal})
	})
	return r
}

func serve(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newRouter(JWTAuthMiddleware("secret"))

	token, err := auth.IssueToken([]byte("secret"), "GBUYER", time.Hour, time.Now())
	require.NoError(t, err)

	rr := serve(r, map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"identity":"GBUYER","principal":"GBUYER"}`, rr.Body.String())

	expired, err := auth.IssueToken([]byte("secret"), "GBUYER", time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"not bearer", "Basic abc"},
		{"wrong secret", "Bearer " + mustToken(t, "other")},
		{"expired", "Bearer " + expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(r, map[string]string{"Authorization": tt.header})
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func mustToken(t *testing.T, secret string) string {
	t.Helper()
	token, err := auth.IssueToken([]byte(secret), models.Identity("GBUYER"), time.Hour, time.Now())
	require.NoError(t, err)
	return token
}

func TestAdminKeyMiddleware(t *testing.T) {
	hash, err := auth.HashAdminKey("admin")
	require.NoError(t, err)

	r := newRouter(AdminKeyMiddleware(hash))
	assert.Equal(t, http.StatusOK, serve(r, map[string]string{AdminKeyHeader: "admin"}).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, map[string]string{AdminKeyHeader: "nope"}).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, nil).Code)

	disabled := newRouter(AdminKeyMiddleware(""))
	assert.Equal(t, http.StatusUnauthorized, serve(disabled, map[string]string{AdminKeyHeader: "admin"}).Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newRouter(RequestIDMiddleware())

	rr := serve(r, map[string]string{RequestIDHeader: "not-a-uuid"})
	assert.NotEqual(t, "not-a-uuid", rr.Header().Get(RequestIDHeader))
	assert.Len(t, rr.Header().Get(RequestIDHeader), 36)
}
