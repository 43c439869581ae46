package services

import (
	"context"

	"github.com/google/uuid"

	dbm "tripdesk/internal/models/db_models"
	"tripdesk/internal/models/response_models"
	"tripdesk/internal/repositories"
	"tripdesk/pkg/utils"
)

type MessageServiceInterface interface {
	ListMessages(ctx context.Context, orderID string, afterSeq int64) ([]response_models.MessageResponse, error)
	SendGuestMessage(ctx context.Context, orderID string, body string) (*response_models.MessageResponse, error)
}

type MessageService struct {
	messageRepo repositories.MessageRepository
}

func NewMessageService(messageRepo repositories.MessageRepository) MessageServiceInterface {
	return &MessageService{
		messageRepo: messageRepo,
	}
}

// ListMessages returns the thread entries after the given sequence
// number; clients poll with the last seq they have seen.
func (m *MessageService) ListMessages(ctx context.Context, orderID string, afterSeq int64) ([]response_models.MessageResponse, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	messages, err := m.messageRepo.ListByOrderAfterSeq(ctx, id, afterSeq)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		out = append(out, buildMessage(msg))
	}
	return out, nil
}

func (m *MessageService) SendGuestMessage(ctx context.Context, orderID string, body string) (*response_models.MessageResponse, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	msg, err := m.messageRepo.Append(ctx, id, dbm.SenderGuest, body)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	built := buildMessage(*msg)
	return &built, nil
}

func buildMessage(msg dbm.Message) response_models.MessageResponse {
	return response_models.MessageResponse{
		ID:     msg.ID.String(),
		Seq:    msg.Seq,
		Sender: msg.Sender,
		Body:   msg.Body,
		SentAt: utils.FormatRFC3339(utils.FromUnixSeconds(msg.CreatedAt)),
	}
}
