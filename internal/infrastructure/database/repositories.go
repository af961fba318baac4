package database

import (
	"github.com/gauravtib/mybankchecknext-sub001/internal/adapter/repository"
	domainRepo "github.com/gauravtib/mybankchecknext-sub001/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Subscription    domainRepo.SubscriptionRepository
	Order           domainRepo.OrderRepository
	CustomerMapping domainRepo.CustomerMappingRepository
	FraudReport     domainRepo.FraudReportRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Subscription:    repository.NewSubscriptionRepository(db, logger),
		Order:           repository.NewOrderRepository(db, logger),
		CustomerMapping: repository.NewCustomerMappingRepository(db),
		FraudReport:     repository.NewFraudReportRepository(db, logger),
	}
}
