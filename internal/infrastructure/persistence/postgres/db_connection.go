// Package postgres provides the GORM-backed implementations of the
// repository interfaces.
package postgres

import (
	"context"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mspsec/riskboard/internal/config"
	"github.com/mspsec/riskboard/pkg/logger"
)

// NewDBConnection opens the Postgres connection pool and runs schema
// migration for the repository tables.
func NewDBConnection(cfg *config.DatabaseConfig, log logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info(context.Background(), "connected to postgres",
		logger.String("host", cfg.Host),
		logger.String("database", cfg.Database),
	)
	return db, nil
}

// Migrate creates or updates the repository tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&tenantDBM{},
		&reportDBM{},
		&snapshotDBM{},
		&userDBM{},
		&inviteDBM{},
		&integrationDBM{},
	)
}
