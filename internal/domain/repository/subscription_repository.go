package repository

import (
	"context"

	"github.com/gauravtib/mybankchecknext-sub001/internal/domain/model"
)

type SubscriptionRepository interface {
	// GetBySubscriptionID retrieves a row by Stripe subscription id. Returns
	// (nil, nil) when no row exists.
	GetBySubscriptionID(ctx context.Context, subscriptionID string) (*model.Subscription, error)

	// GetCurrentForCustomer returns the entitled (active or trialing) row with
	// the latest period end for the customer, or (nil, nil) when none exists.
	GetCurrentForCustomer(ctx context.Context, customerID string) (*model.Subscription, error)

	// Upsert creates or replaces the row keyed by subscription id. Rows whose
	// stored event time is newer than sub.LastEventAt are left untouched and
	// ErrStaleEvent is returned.
	Upsert(ctx context.Context, sub *model.Subscription) error

	// MarkCanceled sets the row status to canceled.
	MarkCanceled(ctx context.Context, subscriptionID string) error

	// ListByStatus returns all rows with the given status.
	ListByStatus(ctx context.Context, status model.SubscriptionStatus) ([]*model.Subscription, error)
}
