package db_models

import "github.com/google/uuid"

const (
	SenderGuest = "guest"
	SenderHost  = "host"
)

// Message is one entry in an order's guest-host thread. Seq is a
// per-order sequence number so clients can poll with ?after=seq.
type Message struct {
	BaseModel
	OrderID uuid.UUID `gorm:"type:uuid;index:idx_order_seq,priority:1"`
	Seq     int64     `gorm:"index:idx_order_seq,priority:2"`
	Sender  string
	Body    string
}
