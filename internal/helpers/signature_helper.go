package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/farellandr/liveticket/internal/models"
)

// TicketSigner produces and checks the payload encoded in a ticket's QR
// code: ticket:<id>;owner:<owner>;event:<name>;signature:<hmac>. Owner and
// event name are query-escaped so they never contain the separator.
type TicketSigner struct {
	SecretKey []byte
}

func NewTicketSigner(secretKey string) *TicketSigner {
	return &TicketSigner{SecretKey: []byte(secretKey)}
}

func (s *TicketSigner) GenerateSignature(ticket models.Ticket) string {
	data := fmt.Sprintf("%d:%s:%s:%d:%d", ticket.ID, ticket.Owner, ticket.EventName, ticket.PurchaseTime, ticket.PurchasePrice)
	mac := hmac.New(sha256.New, s.SecretKey)
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *TicketSigner) QRPayload(ticket models.Ticket) string {
	return fmt.Sprintf("ticket:%d;owner:%s;event:%s;signature:%s",
		ticket.ID,
		url.QueryEscape(ticket.Owner.String()),
		url.QueryEscape(ticket.EventName),
		s.GenerateSignature(ticket),
	)
}

// ExtractTicketID reads the ticket id out of a QR payload without checking
// its signature.
func ExtractTicketID(payload string) (uint32, error) {
	parts := strings.Split(payload, ";")
	if len(parts) != 4 || !strings.HasPrefix(parts[0], "ticket:") || !strings.HasPrefix(parts[3], "signature:") {
		return 0, fmt.Errorf("invalid QR data format")
	}
	return ParseTicketID(strings.TrimPrefix(parts[0], "ticket:"))
}

// Verify reports whether payload was issued for ticket by this signer.
func (s *TicketSigner) Verify(ticket models.Ticket, payload string) bool {
	parts := strings.Split(payload, ";")
	if len(parts) != 4 || !strings.HasPrefix(parts[3], "signature:") {
		return false
	}
	if parts[0] != "ticket:"+strconv.FormatUint(uint64(ticket.ID), 10) {
		return false
	}
	signature := strings.TrimPrefix(parts[3], "signature:")
	return hmac.Equal([]byte(s.GenerateSignature(ticket)), []byte(signature))
}
