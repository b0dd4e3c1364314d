package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/threadguard/threadguard/internal/database"
	"github.com/threadguard/threadguard/internal/setup"
	"github.com/threadguard/threadguard/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Worker removes expired rate windows and aged-out abuse signals.
type Worker struct {
	db              database.Client
	logger          *zap.Logger
	windowSize      time.Duration
	sweepInterval   time.Duration
	signalRetention time.Duration
}

// New creates a new sweep worker.
func New(app *setup.App, logger *zap.Logger) *Worker {
	return &Worker{
		db:              app.DB,
		logger:          logger.Named("sweep"),
		windowSize:      time.Duration(app.Config.Engine.RateLimit.WindowMinutes) * time.Minute,
		sweepInterval:   time.Duration(app.Config.Engine.Worker.SweepIntervalMinutes) * time.Minute,
		signalRetention: time.Duration(app.Config.Engine.Worker.SignalRetentionDays) * 24 * time.Hour,
	}
}

// Start begins the sweep worker's main loop.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Sweep Worker started",
		zap.Duration("sweepInterval", w.sweepInterval),
		zap.Duration("signalRetention", w.signalRetention))

	for {
		// The two sweeps touch unrelated tables, so run them together.
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return w.sweepRateWindows(gctx) })
		g.Go(func() error { return w.sweepSignals(gctx) })

		if err := g.Wait(); err != nil {
			w.logger.Error("Sweep cycle failed", zap.Error(err))
		}

		// Wait before next cycle
		if !utils.IntervalSleep(ctx, w.sweepInterval, w.logger, "sweep worker") {
			return
		}
	}
}

// sweepRateWindows removes rate windows too old to influence any limit check.
// Windows stay readable for one extra window size past their end so denied
// requests can still report an accurate reset time.
func (w *Worker) sweepRateWindows(ctx context.Context) error {
	cutoff := time.Now().Add(-2 * w.windowSize)

	affected, err := w.db.Model().RateWindow().PurgeExpired(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to purge expired rate windows: %w", err)
	}

	if affected > 0 {
		w.logger.Info("Purged expired rate windows",
			zap.Int64("affected", affected),
			zap.Time("cutoff", cutoff))
	}

	return nil
}

// sweepSignals removes abuse signals past the retention period.
func (w *Worker) sweepSignals(ctx context.Context) error {
	cutoff := time.Now().Add(-w.signalRetention)

	affected, err := w.db.Model().Signal().PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to purge old abuse signals: %w", err)
	}

	if affected > 0 {
		w.logger.Info("Purged old abuse signals",
			zap.Int64("affected", affected),
			zap.Time("cutoff", cutoff))
	}

	return nil
}
