package services

import (
	"context"

	dbm "tripdesk/internal/models/db_models"
	"tripdesk/internal/models/response_models"
	"tripdesk/internal/repositories"
	"tripdesk/pkg/utils"
)

type OrderServiceInterface interface {
	UnlockOrder(ctx context.Context, orderID string, accessCode string) (*response_models.UnlockOrderResponse, error)
	GetOrderDetail(ctx context.Context, orderID string) (*response_models.OrderDetailResponse, error)
}

type OrderService struct {
	orderRepo repositories.OrderRepository
}

func NewOrderService(orderRepo repositories.OrderRepository) OrderServiceInterface {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// UnlockOrder trades a valid access code for the order detail view plus a
// guest token for the message endpoints.
func (o *OrderService) UnlockOrder(ctx context.Context, orderID string, accessCode string) (*response_models.UnlockOrderResponse, error) {
	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if order == nil {
		return nil, utils.ErrOrderNotFound
	}

	if err := utils.CompareAccessCode(order.AccessCodeHash, accessCode); err != nil {
		return nil, utils.ErrInvalidAccessCode
	}

	token, err := utils.CreateGuestToken(order.ID)
	if err != nil {
		return nil, err
	}

	return &response_models.UnlockOrderResponse{
		Order:      buildOrderDetail(order),
		GuestToken: token,
	}, nil
}

func (o *OrderService) GetOrderDetail(ctx context.Context, orderID string) (*response_models.OrderDetailResponse, error) {
	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if order == nil {
		return nil, utils.ErrOrderNotFound
	}

	detail := buildOrderDetail(order)
	return &detail, nil
}

func buildOrderDetail(order *dbm.Order) response_models.OrderDetailResponse {
	reservations := make([]response_models.ReservationResponse, 0, len(order.Reservations))
	for _, r := range order.Reservations {
		reservations = append(reservations, response_models.ReservationResponse{
			ID:             r.ID.String(),
			ActivityID:     r.ActivityID,
			RateID:         r.RateID,
			PartySize:      r.PartySize,
			PickupRequired: r.PickupRequired,
			PickupLocation: r.PickupLocation,
		})
	}

	return response_models.OrderDetailResponse{
		ID:            order.ID.String(),
		ReferenceCode: order.ReferenceCode,
		Status:        order.Status,
		GuestName:     order.GuestName,
		GuestEmail:    order.GuestEmail,
		AmountMinor:   order.AmountMinor,
		Currency:      order.Currency,
		CreatedAt:     utils.FormatRFC3339(utils.FromUnixSeconds(order.CreatedAt)),
		Reservations:  reservations,
	}
}
