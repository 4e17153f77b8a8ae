package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/liveticket/internal/auth"
	"github.com/farellandr/liveticket/internal/helpers"
)

const (
	IdentityKey    = "identity"
	AdminKeyHeader = "X-Admin-Key"
)

// JWTAuthMiddleware authenticates the bearer token and places the caller's
// identity on both the gin context and the request context.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Missing bearer token.")
			return
		}

		identity, err := auth.ParseToken([]byte(secret), tokenString)
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token.")
			return
		}

		c.Set(IdentityKey, identity)
		c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), identity))
		c.Next()
	}
}

func AdminKeyMiddleware(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.CheckAdminKey(keyHash, c.GetHeader(AdminKeyHeader)) {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid admin key.")
			return
		}
		c.Next()
	}
}
