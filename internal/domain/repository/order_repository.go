package repository

import (
	"context"

	"github.com/gauravtib/mybankchecknext-sub001/internal/domain/model"
)

type OrderRepository interface {
	// Insert stores a new order row. A duplicate checkout session id is a
	// conflict error.
	Insert(ctx context.Context, order *model.Order) error

	// GetByCheckoutSessionID retrieves an order by checkout session id.
	// Returns (nil, nil) when no row exists.
	GetByCheckoutSessionID(ctx context.Context, checkoutSessionID string) (*model.Order, error)

	// ListByCustomer returns all orders for a customer, newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]*model.Order, error)
}
