package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/cinemax-hub/service-checkout/internal/application"
	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// PendingCreditReconciler sweeps purchases whose loyalty credit is still pending.
type PendingCreditReconciler interface {
	ReconcilePending(ctx context.Context, minAge time.Duration) (*application.ReconcileResultDTO, error)
}

// CreditReconciler runs the pending-credit sweep on a fixed interval.
type CreditReconciler struct {
	scheduler  gocron.Scheduler
	reconciler PendingCreditReconciler
	interval   time.Duration
	minAge     time.Duration
	timeout    time.Duration
	logger     *zap.Logger
}

// NewCreditReconciler creates the scheduler and registers the sweep job.
// The first sweep runs immediately on Start.
func NewCreditReconciler(reconciler PendingCreditReconciler, interval, minAge time.Duration, logger *zap.Logger) (*CreditReconciler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	r := &CreditReconciler{
		scheduler:  s,
		reconciler: reconciler,
		interval:   interval,
		minAge:     minAge,
		timeout:    interval,
		logger:     logger,
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(r.sweep),
		gocron.WithName("reconcile-pending-credits"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to register reconcile job: %w", err)
	}
	return r, nil
}

// Start begins running scheduled sweeps.
func (r *CreditReconciler) Start() {
	r.scheduler.Start()
	r.logger.Info("credit reconciler started",
		zap.Duration("interval", r.interval),
		zap.Duration("min_age", r.minAge),
	)
}

// Stop waits for a running sweep and shuts the scheduler down.
func (r *CreditReconciler) Stop() error {
	return r.scheduler.Shutdown()
}

func (r *CreditReconciler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	result, err := r.reconciler.ReconcilePending(ctx, r.minAge)
	if err != nil {
		r.logger.Error("pending credit sweep failed", zap.Error(err))
		return
	}
	if result.Scanned > 0 {
		r.logger.Info("pending credit sweep finished",
			zap.Int("scanned", result.Scanned),
			zap.Int("credited", result.Credited),
			zap.Int("failed", result.Failed),
		)
	}
}
