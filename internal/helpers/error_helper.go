package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/liveticket/internal/ledger"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error:   HTTPStatusText(statusCode),
		Message: customMessage,
	})
}

// RespondWithLedgerError maps a ledger error to its HTTP status. Errors
// that are not ledger errors are reported as 500 without their detail.
func RespondWithLedgerError(c *gin.Context, err error) {
	status := LedgerStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "Ledger operation failed."
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   HTTPStatusText(status),
		Message: message,
		Code:    string(ledger.CodeOf(err)),
	})
}

func LedgerStatus(err error) int {
	var e *ledger.Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Code {
	case ledger.CodeUnauthorized:
		return http.StatusUnauthorized
	case ledger.CodeTicketNotFound:
		return http.StatusNotFound
	case ledger.CodeSaleEnded:
		return http.StatusGone
	case ledger.CodeAlreadyInitialized, ledger.CodeNotInitialized, ledger.CodeSoldOut:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
