package database

import (
	"context"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// slowQueryThreshold is the duration above which queries are logged.
const slowQueryThreshold = 500 * time.Millisecond

// Hook logs failed and slow queries through the database logger.
type Hook struct {
	logger *zap.Logger
}

// NewHook creates a query hook for monitoring.
func NewHook(logger *zap.Logger) *Hook {
	return &Hook{logger: logger.Named("db_query")}
}

// BeforeQuery implements bun.QueryHook.
func (h *Hook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

// AfterQuery implements bun.QueryHook.
func (h *Hook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	elapsed := time.Since(event.StartTime)

	if event.Err != nil {
		h.logger.Debug("Query failed",
			zap.String("operation", event.Operation()),
			zap.Duration("elapsed", elapsed),
			zap.Error(event.Err))
		return
	}

	if elapsed > slowQueryThreshold {
		h.logger.Warn("Slow query",
			zap.String("operation", event.Operation()),
			zap.Duration("elapsed", elapsed))
	}
}
