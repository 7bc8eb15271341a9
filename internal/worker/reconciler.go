package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/velomart/storefront/internal/domain/model"
)

// StorefrontFacade exposes the subset of application functionality required
// by the webhook retry worker.
type StorefrontFacade interface {
	PendingWebhookRetries(ctx context.Context, limit int) ([]model.WebhookFailure, error)
	RetryWebhookFailure(ctx context.Context, failure model.WebhookFailure) error
}

// WebhookReconciler drains recorded webhook failures and re-applies them to
// the order ledger with a pool of workers.
type WebhookReconciler struct {
	facade       StorefrontFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.WebhookFailure
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewWebhookReconciler constructs the retry worker pool.
func NewWebhookReconciler(facade StorefrontFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *WebhookReconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &WebhookReconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.WebhookFailure, batchSize*workers),
	}
}

// Start launches background processing.
func (r *WebhookReconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *WebhookReconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *WebhookReconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *WebhookReconciler) fetchAndDispatch(ctx context.Context) {
	failures, err := r.facade.PendingWebhookRetries(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("fetch webhook failures failed", slog.String("error", err.Error()))
		return
	}
	for _, failure := range failures {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- failure:
		}
	}
}

func (r *WebhookReconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case failure, ok := <-r.jobs:
			if !ok {
				return
			}
			if err := r.facade.RetryWebhookFailure(ctx, failure); err != nil {
				r.logger.Warn("webhook retry failed",
					slog.Int64("failure_id", failure.ID),
					slog.String("event_id", failure.EventID),
					slog.Int("attempts", failure.Attempts),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
