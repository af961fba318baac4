package repository

import (
	"context"

	"github.com/gauravtib/mybankchecknext-sub001/internal/domain/model"
	"github.com/google/uuid"
)

type CustomerMappingRepository interface {
	// GetByUserID retrieves the mapping for a Supabase user. Returns
	// (nil, nil) when the user has no Stripe customer yet.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.CustomerMapping, error)

	// GetByCustomerID retrieves the mapping for a Stripe customer. Returns
	// (nil, nil) when unknown.
	GetByCustomerID(ctx context.Context, customerID string) (*model.CustomerMapping, error)

	// Save stores a new mapping.
	Save(ctx context.Context, mapping *model.CustomerMapping) error

	// Delete removes the mapping for a user.
	Delete(ctx context.Context, userID uuid.UUID) error

	// List returns all mappings, newest first.
	List(ctx context.Context) ([]*model.CustomerMapping, error)
}
