package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/velomart/storefront/internal/domain/errors"
	"github.com/velomart/storefront/internal/domain/model"
)

func (r *webhookFailureRepository) Record(ctx context.Context, failure *model.WebhookFailure) error {
	const query = `INSERT INTO webhook_failures (event_id, event_type, order_id, intent_id, last_error)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, attempts, created_at, updated_at`
	return r.storage.pool.QueryRow(ctx, query,
		failure.EventID, failure.EventType, failure.OrderID, failure.IntentID, failure.LastError,
	).Scan(&failure.ID, &failure.Attempts, &failure.CreatedAt, &failure.UpdatedAt)
}

func (r *webhookFailureRepository) SelectBatchForRetry(ctx context.Context, limit int) ([]model.WebhookFailure, error) {
	const query = `SELECT id, event_id, event_type, order_id, intent_id, last_error,
                   attempts, resolved, created_at, updated_at
                   FROM webhook_failures
                   WHERE NOT resolved
                   ORDER BY created_at
                   LIMIT $1
                   FOR UPDATE SKIP LOCKED`

	var failures []model.WebhookFailure
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var f model.WebhookFailure
			if err := rows.Scan(&f.ID, &f.EventID, &f.EventType, &f.OrderID, &f.IntentID,
				&f.LastError, &f.Attempts, &f.Resolved, &f.CreatedAt, &f.UpdatedAt); err != nil {
				return err
			}
			failures = append(failures, f)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return failures, nil
}

func (r *webhookFailureRepository) MarkResolved(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE webhook_failures SET resolved=TRUE, updated_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *webhookFailureRepository) MarkAttempt(ctx context.Context, id int64, lastError string) error {
	const query = `UPDATE webhook_failures SET attempts=attempts+1, last_error=$2, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, lastError)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
