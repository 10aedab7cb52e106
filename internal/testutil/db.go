// Package testutil opens throwaway databases and seeds ledger records for tests.
package testutil

import (
	"testing"
	"time"

	"ledger-service/internal/model"
	"ledger-service/pkg/config"
	"ledger-service/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// DB opens a private in-memory sqlite database with every model migrated.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	conf := &config.DBConfig{
		Driver:       "sqlite",
		SQLitePath:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		LogLevel:     gormLogger.Silent,
	}
	db, err := database.InitDB(conf, zap.NewNop())
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	if err := database.MigrateModels(db, model.All()...); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}

	tb.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// FixedClock always returns t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
