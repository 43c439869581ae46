package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "tripdesk/internal/models/db_models"
)

type OrderRepository interface {
	CreateOrderWithReservations(ctx context.Context, order *dbm.Order, reservations []dbm.Reservation, txn *dbm.Transaction) error
	GetOrderByID(ctx context.Context, orderID string) (*dbm.Order, error)
	MarkPaymentSucceeded(ctx context.Context, orderID uuid.UUID, paymentMethodRef string) error
	MarkPaymentFailed(ctx context.Context, orderID uuid.UUID, failureMessage string) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateOrderWithReservations persists the order, its reservations and
// the pending transaction atomically.
func (r *orderRepository) CreateOrderWithReservations(
	ctx context.Context,
	order *dbm.Order,
	reservations []dbm.Reservation,
	txn *dbm.Transaction,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range reservations {
			reservations[i].OrderID = order.ID
		}
		if len(reservations) > 0 {
			if err := tx.Create(&reservations).Error; err != nil {
				return err
			}
		}
		txn.OrderID = order.ID
		return tx.Create(txn).Error
	})
}

func (r *orderRepository) GetOrderByID(ctx context.Context, orderID string) (*dbm.Order, error) {
	var order dbm.Order
	err := r.db.WithContext(ctx).
		Preload("Reservations").
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) MarkPaymentSucceeded(ctx context.Context, orderID uuid.UUID, paymentMethodRef string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&dbm.Transaction{}).
			Where("order_id = ?", orderID).
			Updates(map[string]interface{}{
				"status":             dbm.TxnStatusSucceeded,
				"payment_method_ref": paymentMethodRef,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&dbm.Order{}).
			Where("id = ?", orderID).
			Update("status", dbm.OrderStatusConfirmed).Error
	})
}

// MarkPaymentFailed records the declined attempt. The order itself stays
// pending so the guest can retry with another payment method; cancelling
// the upstream booking on repeated failure is the upstream's own flow.
func (r *orderRepository) MarkPaymentFailed(ctx context.Context, orderID uuid.UUID, failureMessage string) error {
	return r.db.WithContext(ctx).Model(&dbm.Transaction{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"status":          dbm.TxnStatusFailed,
			"failure_message": failureMessage,
		}).Error
}
