package repository

import (
	"context"

	"github.com/velomart/storefront/internal/domain/model"
)

// WebhookFailureRepository records processor events that failed to reconcile.
type WebhookFailureRepository interface {
	Record(ctx context.Context, failure *model.WebhookFailure) error
	SelectBatchForRetry(ctx context.Context, limit int) ([]model.WebhookFailure, error)
	MarkResolved(ctx context.Context, id int64) error
	MarkAttempt(ctx context.Context, id int64, lastError string) error
}
