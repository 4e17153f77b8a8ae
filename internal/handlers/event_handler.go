package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/liveticket/internal/helpers"
	"github.com/farellandr/liveticket/internal/models"
)

type InitializeRequest struct {
	Organizer   string  `json:"organizer" binding:"required"`
	BasePrice   *uint64 `json:"base_price" binding:"required"`
	EventName   string  `json:"event_name" binding:"required"`
	SaleEnd     *uint64 `json:"sale_end" binding:"required"`
	TicketCount *uint32 `json:"ticket_count" binding:"required"`
}

func InitializeEvent(c *gin.Context) {
	var req InitializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	organizer, err := models.ParseIdentity(req.Organizer)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid organizer.")
		return
	}

	l, ok := getLedger(c)
	if !ok {
		return
	}

	err = l.Initialize(c.Request.Context(), organizer, *req.BasePrice, req.EventName, *req.SaleEnd, *req.TicketCount)
	if err != nil {
		helpers.RespondWithLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Event initialized successfully.",
		"event_name":   req.EventName,
		"ticket_count": *req.TicketCount,
	})
}

func GetEvent(c *gin.Context) {
	l, ok := getLedger(c)
	if !ok {
		return
	}

	cfg, err := l.Config(c.Request.Context())
	if err != nil {
		helpers.RespondWithLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, cfg)
}
