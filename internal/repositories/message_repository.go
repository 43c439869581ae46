package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "tripdesk/internal/models/db_models"
)

type MessageRepository interface {
	ListByOrderAfterSeq(ctx context.Context, orderID uuid.UUID, afterSeq int64) ([]dbm.Message, error)
	Append(ctx context.Context, orderID uuid.UUID, sender string, body string) (*dbm.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) ListByOrderAfterSeq(ctx context.Context, orderID uuid.UUID, afterSeq int64) ([]dbm.Message, error) {
	var messages []dbm.Message
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND seq > ?", orderID, afterSeq).
		Order("seq ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// Append assigns the next per-order sequence number inside a transaction
// so polling clients never see gaps or duplicates.
func (r *messageRepository) Append(ctx context.Context, orderID uuid.UUID, sender string, body string) (*dbm.Message, error) {
	msg := &dbm.Message{
		OrderID: orderID,
		Sender:  sender,
		Body:    body,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxSeq int64
		if err := tx.Model(&dbm.Message{}).
			Where("order_id = ?", orderID).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&maxSeq).Error; err != nil {
			return err
		}
		msg.Seq = maxSeq + 1
		return tx.Create(msg).Error
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}
