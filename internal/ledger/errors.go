package ledger

import "errors"

// Code is a machine-readable error kind.
type Code string

const (
	CodeUnknown            Code = "UNKNOWN"
	CodeAlreadyInitialized Code = "ALREADY_INITIALIZED"
	CodeNotInitialized     Code = "NOT_INITIALIZED"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeSaleEnded          Code = "SALE_ENDED"
	CodeSoldOut            Code = "SOLD_OUT"
	CodeTicketNotFound     Code = "TICKET_NOT_FOUND"
)

// Error is a business-rule violation. Every Error aborts the invocation
// that raised it without committing anything.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrAlreadyInitialized = &Error{Code: CodeAlreadyInitialized, Message: "already initialized"}
	ErrNotInitialized     = &Error{Code: CodeNotInitialized, Message: "not initialized"}
	ErrUnauthorized       = &Error{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrSaleEnded          = &Error{Code: CodeSaleEnded, Message: "ticket sale ended"}
	ErrSoldOut            = &Error{Code: CodeSoldOut, Message: "no tickets left"}
	ErrTicketNotFound     = &Error{Code: CodeTicketNotFound, Message: "ticket not found"}
)

// CodeOf returns the Code of the first ledger Error in err's chain, or
// CodeUnknown.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}
