package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"deepguard/internal/models"
)

// Connect opens the PostgreSQL connection and migrates the schema.
// The returned handle is injected into repositories; there is no package-level DB.
func Connect(dsn string, appMode string) (*gorm.DB, error) {
	logLevel := logger.Warn
	if appMode == "DEV" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.DetectionResult{},
		&models.BreachCheck{},
		&models.MonitoringAlert{},
		&models.PaymentTransaction{},
		&models.UserPlan{},
		&models.UsageLog{},
		&models.APIKey{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Println("[database] Connected and migrations applied")
	return db, nil
}
