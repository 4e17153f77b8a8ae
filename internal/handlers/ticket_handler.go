package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/liveticket/internal/helpers"
)

func GetTicketsRemaining(c *gin.Context) {
	l, ok := getLedger(c)
	if !ok {
		return
	}

	remaining, err := l.TicketsRemaining(c.Request.Context())
	if err != nil {
		helpers.RespondWithLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets_remaining": remaining})
}

func GetCurrentPrice(c *gin.Context) {
	l, ok := getLedger(c)
	if !ok {
		return
	}

	price, err := l.CurrentPrice(c.Request.Context())
	if err != nil {
		helpers.RespondWithLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"current_price": price})
}

func GetTicket(c *gin.Context) {
	id, ok := ticketIDParam(c)
	if !ok {
		return
	}
	l, ok := getLedger(c)
	if !ok {
		return
	}

	ticket, err := l.Ticket(c.Request.Context(), id)
	if err != nil {
		helpers.RespondWithLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

func GetTicketOwner(c *gin.Context) {
	id, ok := ticketIDParam(c)
	if !ok {
		return
	}
	l, ok := getLedger(c)
	if !ok {
		return
	}

	owner, err := l.TicketOwner(c.Request.Context(), id)
	if err != nil {
		helpers.RespondWithLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ticket_id": id,
		"owner":     owner,
	})
}
