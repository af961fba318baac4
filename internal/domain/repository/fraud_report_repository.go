package repository

import (
	"context"

	"github.com/gauravtib/mybankchecknext-sub001/internal/domain/model"
)

type FraudReportRepository interface {
	// GetByID retrieves a report, (nil, nil) when missing.
	GetByID(ctx context.Context, id int64) (*model.FraudReport, error)

	// List returns all reports, newest first.
	List(ctx context.Context) ([]*model.FraudReport, error)

	// Create stores a new report.
	Create(ctx context.Context, report *model.FraudReport) error

	// Update replaces an existing report.
	Update(ctx context.Context, report *model.FraudReport) error

	// Delete removes a report by id.
	Delete(ctx context.Context, id int64) error
}
