package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbm "tripdesk/internal/models/db_models"
	"tripdesk/internal/repositories"
	"tripdesk/pkg/utils"
)

func storedOrder(t *testing.T, accessCode string) *dbm.Order {
	t.Helper()
	hash, err := utils.HashAccessCode(accessCode)
	require.NoError(t, err)

	order := &dbm.Order{
		ReferenceCode:  "TD-AB12CD34",
		GuestName:      "Jane Doe",
		GuestEmail:     "jane@example.com",
		Status:         dbm.OrderStatusConfirmed,
		AmountMinor:    12900,
		Currency:       "EUR",
		AccessCodeHash: hash,
		Reservations: []dbm.Reservation{
			{ActivityID: "act-1", RateID: "standard", PartySize: 2},
		},
	}
	order.ID = uuid.New()
	return order
}

type staticOrderRepo struct {
	repositories.OrderRepository
	order *dbm.Order
}

func (s *staticOrderRepo) GetOrderByID(ctx context.Context, orderID string) (*dbm.Order, error) {
	if s.order != nil && s.order.ID.String() == orderID {
		return s.order, nil
	}
	return nil, nil
}

func TestUnlockOrder(t *testing.T) {
	order := storedOrder(t, "s3cret-code")
	svc := NewOrderService(&staticOrderRepo{order: order})

	unlocked, err := svc.UnlockOrder(context.Background(), order.ID.String(), "s3cret-code")
	require.NoError(t, err)
	assert.Equal(t, order.ID.String(), unlocked.Order.ID)
	assert.Equal(t, "TD-AB12CD34", unlocked.Order.ReferenceCode)
	assert.NotEmpty(t, unlocked.GuestToken)
	require.Len(t, unlocked.Order.Reservations, 1)
	assert.Equal(t, "act-1", unlocked.Order.Reservations[0].ActivityID)
}

func TestUnlockOrder_WrongCode(t *testing.T) {
	order := storedOrder(t, "s3cret-code")
	svc := NewOrderService(&staticOrderRepo{order: order})

	_, err := svc.UnlockOrder(context.Background(), order.ID.String(), "wrong")
	assert.ErrorIs(t, err, utils.ErrInvalidAccessCode)
}

func TestUnlockOrder_NotFound(t *testing.T) {
	svc := NewOrderService(&staticOrderRepo{})
	_, err := svc.UnlockOrder(context.Background(), uuid.New().String(), "whatever")
	assert.ErrorIs(t, err, utils.ErrOrderNotFound)
}

func TestGetOrderDetail(t *testing.T) {
	order := storedOrder(t, "s3cret-code")
	svc := NewOrderService(&staticOrderRepo{order: order})

	detail, err := svc.GetOrderDetail(context.Background(), order.ID.String())
	require.NoError(t, err)
	assert.Equal(t, dbm.OrderStatusConfirmed, detail.Status)
	assert.Equal(t, int64(12900), detail.AmountMinor)
}
