package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gauravtib/mybankchecknext-sub001/internal/domain/model"
	domainRepo "github.com/gauravtib/mybankchecknext-sub001/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerMappingRepository struct {
	db *gorm.DB
}

// NewCustomerMappingRepository creates a new customer mapping repository
func NewCustomerMappingRepository(db *gorm.DB) domainRepo.CustomerMappingRepository {
	return &customerMappingRepository{db: db}
}

func (r *customerMappingRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.CustomerMapping, error) {
	var mapping model.CustomerMapping
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&mapping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get customer mapping: %w", err)
	}
	return &mapping, nil
}

func (r *customerMappingRepository) GetByCustomerID(ctx context.Context, customerID string) (*model.CustomerMapping, error) {
	var mapping model.CustomerMapping
	err := r.db.WithContext(ctx).
		Where("stripe_customer_id = ?", customerID).
		First(&mapping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get customer mapping: %w", err)
	}
	return &mapping, nil
}

func (r *customerMappingRepository) Save(ctx context.Context, mapping *model.CustomerMapping) error {
	if err := r.db.WithContext(ctx).Create(mapping).Error; err != nil {
		return fmt.Errorf("failed to save customer mapping: %w", err)
	}
	return nil
}

func (r *customerMappingRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CustomerMapping{}).Error; err != nil {
		return fmt.Errorf("failed to delete customer mapping: %w", err)
	}
	return nil
}

func (r *customerMappingRepository) List(ctx context.Context) ([]*model.CustomerMapping, error) {
	var mappings []*model.CustomerMapping
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&mappings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list customer mappings: %w", err)
	}
	return mappings, nil
}
