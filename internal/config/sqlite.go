package config

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB متغیر برای دسترسی به دیتابیس
var DB *gorm.DB

// OpenSQLite opens an in-process SQLite database. One connection keeps an
// in-memory database alive and shared.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get raw db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// InitDB اتصال به SQLite را راه‌اندازی می‌کند
func InitDB(dsn string) {
	var err error
	DB, err = OpenSQLite(dsn)
	if err != nil {
		Logger.Fatal("Error connecting to the database", zap.Error(err))
	}
	Logger.Info("✅ Database connected", zap.String("dsn", dsn))
}
