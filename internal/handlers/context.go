package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/liveticket/internal/helpers"
	"github.com/farellandr/liveticket/internal/ledger"
	"github.com/farellandr/liveticket/internal/middleware"
	"github.com/farellandr/liveticket/internal/models"
)

func getLedger(c *gin.Context) (*ledger.Ledger, bool) {
	l, exists := c.Get(middleware.LedgerKey)
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ledger not found.")
		return nil, false
	}
	return l.(*ledger.Ledger), true
}

func getSigner(c *gin.Context) (*helpers.TicketSigner, bool) {
	s, exists := c.Get(middleware.SignerKey)
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticket signer not found.")
		return nil, false
	}
	return s.(*helpers.TicketSigner), true
}

func getIdentity(c *gin.Context) (models.Identity, bool) {
	id, exists := c.Get(middleware.IdentityKey)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return "", false
	}
	return id.(models.Identity), true
}

func ticketIDParam(c *gin.Context) (uint32, bool) {
	id, err := helpers.ParseTicketID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket ID.")
		return 0, false
	}
	return id, true
}
