package db_models

import "github.com/google/uuid"

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusFailed    = "failed"
)

// Order is one completed checkout submission: one or more reservations
// paid together. AccessCodeHash guards guest access to the order detail
// view and message thread; the raw code is shown to the guest exactly
// once.
type Order struct {
	BaseModel
	ReferenceCode  string `gorm:"uniqueIndex"`
	GuestName      string
	GuestEmail     string
	Status         string `gorm:"default:pending"`
	AmountMinor    int64
	Currency       string
	CompanyName    string
	VATNumber      string
	Notes          string
	AccessCodeHash string

	Reservations []Reservation
	Transactions []Transaction
	Messages     []Message
}

// Reservation is one activity inside an order, with the answer payload
// that was submitted upstream for it.
type Reservation struct {
	BaseModel
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	ActivityID     string
	RateID         string
	PartySize      int
	PickupRequired bool
	PickupLocation string
	AnswerPayload  []byte `gorm:"type:jsonb"`
}
