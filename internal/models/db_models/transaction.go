package db_models

import "github.com/google/uuid"

const (
	TxnStatusPending   = "pending"
	TxnStatusSucceeded = "succeeded"
	TxnStatusFailed    = "failed"
)

// Transaction mirrors the payment processor's view of one collection
// attempt against an order.
type Transaction struct {
	BaseModel
	OrderID          uuid.UUID `gorm:"type:uuid;index"`
	AmountMinor      int64
	Currency         string
	Status           string `gorm:"default:pending"`
	Provider         string
	ProviderTxnID    string `gorm:"uniqueIndex"`
	PaymentMethodRef string
	FailureMessage   string
}
