package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farellandr/liveticket/internal/helpers"
	"github.com/farellandr/liveticket/internal/ledger"
)

const (
	LedgerKey       = "ledger"
	SignerKey       = "ticket_signer"
	RequestIDHeader = "X-Request-ID"
)

func LedgerMiddleware(l *ledger.Ledger, signer *helpers.TicketSigner) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(LedgerKey, l)
		c.Set(SignerKey, signer)
		c.Next()
	}
}

// RequestIDMiddleware echoes the caller's X-Request-ID or assigns a new one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
