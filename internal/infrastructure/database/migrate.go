package database

import (
	"github.com/gauravtib/mybankchecknext-sub001/internal/domain/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&model.CustomerMapping{},
		&model.Subscription{},
		&model.Order{},
		&model.FraudReport{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed")
	return nil
}
