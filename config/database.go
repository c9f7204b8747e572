package config

import (
	"fmt"

	"garagepro-backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the Postgres pool used by every repository.
func ConnectDB(s Settings) (*gorm.DB, error) {
	if s.DBURL == "" {
		return nil, fmt.Errorf("DB_URL not set")
	}

	gormLogger := logger.Default.LogMode(logger.Warn)
	if s.AppEnv == "development" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(s.DBURL), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxIdleConns(s.DBPool.MaxIdleConns)
	sqlDB.SetMaxOpenConns(s.DBPool.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(s.DBPool.ConnMaxLifetime)

	return db, nil
}

// sentLogNaturalKey makes duplicate sent-log inserts collide even when the
// customer or car column is NULL.
const sentLogNaturalKey = `CREATE UNIQUE INDEX IF NOT EXISTS idx_sent_logs_natural_key ON sent_logs (
	tenant_id,
	COALESCE(customer_id, '00000000-0000-0000-0000-000000000000'::uuid),
	COALESCE(car_id, '00000000-0000-0000-0000-000000000000'::uuid),
	date,
	category
)`

// Migrate creates or updates the reminder engine's tables.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("uuid extension: %w", err)
	}
	if err := db.AutoMigrate(
		&models.Tenant{},
		&models.Customer{},
		&models.Vehicle{},
		&models.ReminderTemplate{},
		&models.SentLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec(sentLogNaturalKey).Error; err != nil {
		return fmt.Errorf("sent log index: %w", err)
	}
	return nil
}
