package database

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vitalrecife/storefront/internal/config"
	"github.com/vitalrecife/storefront/internal/models"
)

var ErrNotConnected = errors.New("database not configured")

// DB is nil when no database is configured. It only backs the error log sink.
var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate creates the system_logs table.
func Migrate() error {
	if DB == nil {
		return ErrNotConnected
	}
	return DB.AutoMigrate(&models.SystemLog{})
}

// Status is what the health check reports for the log sink.
func Status() string {
	if DB == nil {
		return "disabled"
	}
	if err := Ping(); err != nil {
		return "unhealthy: " + err.Error()
	}
	return "ok"
}

func Ping() error {
	if DB == nil {
		return ErrNotConnected
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
