// Package scheduler runs the pending payment check on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"ledger-service/internal/service"
	"ledger-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// PaymentChecker is the job the scheduler runs
type PaymentChecker interface {
	CheckPendingPayments(ctx context.Context) (service.Report, error)
}

type Scheduler struct {
	cron    *cron.Cron
	checker PaymentChecker
	log     *zap.Logger
	timeout time.Duration
}

// New registers the check under schedule, a standard five field cron expression
// or a descriptor such as "@daily". Runs never overlap.
func New(schedule string, checker PaymentChecker, log *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		checker: checker,
		log:     log.With(zap.String("component", "Scheduler")),
		timeout: 10 * time.Minute,
	}
	s.cron = cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.Recover(cronLogger{s.log}), cron.SkipIfStillRunning(cronLogger{s.log})),
	)
	if _, err := s.cron.AddFunc(schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.log.Info("Scheduler started")
	s.cron.Start()
}

// Stop prevents new runs and waits for a running check until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("Scheduler stopped")
	case <-ctx.Done():
		s.log.Warn("Scheduler stop timed out", zap.Error(ctx.Err()))
	}
}

// RunOnce performs a single pending payment check
func (s *Scheduler) RunOnce(ctx context.Context) (service.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	ctx = logger.WithContext(ctx, s.log.With(zap.String("run_id", uuid.NewString())))

	start := time.Now()
	report, err := s.checker.CheckPendingPayments(ctx)
	fields := []zap.Field{
		zap.Int("selected", report.Selected),
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		s.log.Error("Pending payment check failed", append(fields, zap.Error(err))...)
		return report, err
	}
	s.log.Info("Pending payment check completed", fields...)
	return report, nil
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	log *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
