package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gauravtib/mybankchecknext-sub001/internal/domain/model"
	domainRepo "github.com/gauravtib/mybankchecknext-sub001/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type orderRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB, logger *zap.Logger) domainRepo.OrderRepository {
	return &orderRepository{db: db, logger: logger}
}

func (r *orderRepository) Insert(ctx context.Context, order *model.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		r.logger.Error("Failed to insert order",
			zap.String("checkout_session_id", order.CheckoutSessionID),
			zap.Error(err))
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *orderRepository) GetByCheckoutSessionID(ctx context.Context, checkoutSessionID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("checkout_session_id = ?", checkoutSessionID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
