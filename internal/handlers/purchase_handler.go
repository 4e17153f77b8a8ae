package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"github.com/farellandr/liveticket/internal/helpers"
	"github.com/farellandr/liveticket/internal/models"
)

type PurchaseRequest struct {
	Buyer string `json:"buyer"`
}

// PurchaseTicket buys one ticket for the buyer named in the body, or for
// the authenticated caller when the body names nobody. The ledger rejects
// a buyer other than the caller.
func PurchaseTicket(c *gin.Context) {
	caller, ok := getIdentity(c)
	if !ok {
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	buyer := caller
	if req.Buyer != "" {
		parsed, err := models.ParseIdentity(req.Buyer)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid buyer.")
			return
		}
		buyer = parsed
	}

	l, ok := getLedger(c)
	if !ok {
		return
	}

	ticket, err := l.Purchase(c.Request.Context(), buyer)
	if err != nil {
		helpers.RespondWithLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

func GenerateTicketQR(c *gin.Context) {
	caller, ok := getIdentity(c)
	if !ok {
		return
	}
	id, ok := ticketIDParam(c)
	if !ok {
		return
	}
	l, ok := getLedger(c)
	if !ok {
		return
	}
	signer, ok := getSigner(c)
	if !ok {
		return
	}

	ticket, err := l.Ticket(c.Request.Context(), id)
	if err != nil {
		helpers.RespondWithLedgerError(c, err)
		return
	}

	if ticket.Owner != caller {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to generate QR code for this ticket.")
		return
	}

	qrImage, err := qrcode.Encode(signer.QRPayload(ticket), qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}

func VerifyTicket(c *gin.Context) {
	var req struct {
		QRData string `json:"qr_data" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	id, err := helpers.ExtractTicketID(req.QRData)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid QR code format.")
		return
	}
	l, ok := getLedger(c)
	if !ok {
		return
	}
	signer, ok := getSigner(c)
	if !ok {
		return
	}

	ticket, err := l.Ticket(c.Request.Context(), id)
	if err != nil {
		helpers.RespondWithLedgerError(c, err)
		return
	}

	if !signer.Verify(ticket, req.QRData) {
		helpers.RespondWithError(c, http.StatusForbidden, "Invalid QR code signature.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket verified successfully.",
		"ticket":  ticket,
	})
}
