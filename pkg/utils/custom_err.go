package utils

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrDatabaseError        = errors.New("database error")
	ErrSessionNotFound      = errors.New("checkout session not found")
	ErrQuestionsIncomplete  = errors.New("questions incomplete")
	ErrClientInfoIncomplete = errors.New("client info incomplete")
	ErrAlreadyPaying        = errors.New("already at payment step")
	ErrAlreadyEditing       = errors.New("already at client info step")
	ErrNotAtPayment         = errors.New("not at payment step")
	ErrAlreadySubmitted     = errors.New("reservation already submitted")
	ErrSpecFetchFailed      = errors.New("question spec fetch failed")
	ErrReservationFailed    = errors.New("reservation error")
	ErrPaymentHandleMissing = errors.New("payment handle missing")
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidAccessCode    = errors.New("invalid access code")
)

// PaymentDeclinedError carries the payment processor's own message, which
// is shown to the guest verbatim rather than mapped to a translation key.
type PaymentDeclinedError struct {
	Message string
}

func (e *PaymentDeclinedError) Error() string { return e.Message }
