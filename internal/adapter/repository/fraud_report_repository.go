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

type fraudReportRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewFraudReportRepository creates a new fraud report repository
func NewFraudReportRepository(db *gorm.DB, logger *zap.Logger) domainRepo.FraudReportRepository {
	return &fraudReportRepository{db: db, logger: logger}
}

func (r *fraudReportRepository) GetByID(ctx context.Context, id int64) (*model.FraudReport, error) {
	var report model.FraudReport
	err := r.db.WithContext(ctx).First(&report, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get fraud report: %w", err)
	}
	return &report, nil
}

func (r *fraudReportRepository) List(ctx context.Context) ([]*model.FraudReport, error) {
	var reports []*model.FraudReport
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list fraud reports: %w", err)
	}
	return reports, nil
}

func (r *fraudReportRepository) Create(ctx context.Context, report *model.FraudReport) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		r.logger.Error("Failed to create fraud report", zap.Error(err))
		return fmt.Errorf("failed to create fraud report: %w", err)
	}
	return nil
}

func (r *fraudReportRepository) Update(ctx context.Context, report *model.FraudReport) error {
	if err := r.db.WithContext(ctx).Save(report).Error; err != nil {
		r.logger.Error("Failed to update fraud report",
			zap.Int64("id", report.ID),
			zap.Error(err))
		return fmt.Errorf("failed to update fraud report: %w", err)
	}
	return nil
}

func (r *fraudReportRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.FraudReport{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete fraud report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
