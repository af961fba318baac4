package repository

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/gauravtib/mybankchecknext-sub001/internal/domain/errors"
	"github.com/gauravtib/mybankchecknext-sub001/internal/domain/model"
	domainRepo "github.com/gauravtib/mybankchecknext-sub001/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type subscriptionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB, logger *zap.Logger) domainRepo.SubscriptionRepository {
	return &subscriptionRepository{db: db, logger: logger}
}

func (r *subscriptionRepository) GetBySubscriptionID(ctx context.Context, subscriptionID string) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get subscription by id",
			zap.String("subscription_id", subscriptionID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return &sub, nil
}

// GetCurrentForCustomer returns the entitled row with the latest period end.
func (r *subscriptionRepository) GetCurrentForCustomer(ctx context.Context, customerID string) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND status IN ?", customerID, []model.SubscriptionStatus{
			model.SubscriptionStatusActive,
			model.SubscriptionStatusTrialing,
		}).
		Order("current_period_end DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get current subscription",
			zap.String("customer_id", customerID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get current subscription: %w", err)
	}
	return &sub, nil
}

// Upsert replaces the row keyed by subscription id, refusing stale events.
func (r *subscriptionRepository) Upsert(ctx context.Context, sub *model.Subscription) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Subscription
		err := tx.Where("subscription_id = ?", sub.SubscriptionID).First(&existing).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to load subscription for upsert: %w", err)
			}
			if err := tx.Create(sub).Error; err != nil {
				return fmt.Errorf("failed to insert subscription: %w", err)
			}
			return nil
		}

		// Retried deliveries can arrive out of order; never let an older
		// event overwrite fresher data.
		if existing.LastEventAt.After(sub.LastEventAt) {
			r.logger.Warn("Skipping stale subscription event",
				zap.String("subscription_id", sub.SubscriptionID),
				zap.Time("stored_event_at", existing.LastEventAt),
				zap.Time("event_at", sub.LastEventAt))
			return domainErrors.ErrStaleEvent
		}

		sub.ID = existing.ID
		sub.CreatedAt = existing.CreatedAt
		if err := tx.Save(sub).Error; err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}
		return nil
	})
}

func (r *subscriptionRepository) MarkCanceled(ctx context.Context, subscriptionID string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Subscription{}).
		Where("subscription_id = ?", subscriptionID).
		Update("status", model.SubscriptionStatusCanceled)
	if result.Error != nil {
		r.logger.Error("Failed to mark subscription canceled",
			zap.String("subscription_id", subscriptionID),
			zap.Error(result.Error))
		return fmt.Errorf("failed to mark subscription canceled: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrSubscriptionNotFound
	}
	return nil
}

func (r *subscriptionRepository) ListByStatus(ctx context.Context, status model.SubscriptionStatus) ([]*model.Subscription, error) {
	var subs []*model.Subscription
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("current_period_end DESC").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}
