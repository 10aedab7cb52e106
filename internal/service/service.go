// Package service implements the ledger operations on top of gorm. Every call
// takes the acting owner explicitly; nothing reads an ambient current user.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ledger-service/pkg/logger"
	"ledger-service/prometheus"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNotFound means the record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrNotOwned means the record exists but belongs to another owner
	ErrNotOwned = errors.New("record belongs to another owner")
)

// Clock returns the current instant
type Clock func() time.Time

// findOwned loads a record by primary key and compares its owner with ownerID.
func findOwned[T any](ctx context.Context, db *gorm.DB, entity string, id, ownerID uint, ownerOf func(*T) uint) (*T, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var rec T
	err := db.WithContext(ctx).First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s %d: %w", entity, id, err)
	}
	if ownerOf(&rec) != ownerID {
		prometheus.RecordOwnershipDenial(entity)
		return nil, ErrNotOwned
	}
	return &rec, nil
}

// requestLog prefers the request scoped logger carried by ctx, so entries keep
// request_id and owner_id. Without one, base is used.
func requestLog(ctx context.Context, base *zap.Logger, component string) *zap.Logger {
	if l, ok := logger.Lookup(ctx); ok {
		return l.With(zap.String("component", component))
	}
	return base
}
