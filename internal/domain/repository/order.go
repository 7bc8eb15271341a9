package repository

import (
	"context"

	"github.com/velomart/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with the order ledger.
type OrderRepository interface {
	// Create persists the order and decrements stock for every line inside
	// one transaction. A line whose conditional decrement fails aborts the
	// whole order with InsufficientStockError and leaves all stock untouched.
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByPaymentIntent(ctx context.Context, intentID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) (*model.OrderPage, error)
	// Cancel restores stock for every line and marks the order cancelled,
	// atomically. Fails with ErrInvalidState unless the order is processing.
	Cancel(ctx context.Context, id int64) (*model.Order, error)
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)
	SetPaymentIntent(ctx context.Context, id int64, intentID string) error
	// MarkPaid sets paymentStatus=completed and status=processing. The update
	// is a plain set so redelivered webhooks converge on the same state.
	MarkPaid(ctx context.Context, id int64, intentID string) error
	MarkPaymentFailed(ctx context.Context, id int64) error
	// MarkRefunded locates the order by its stored intent reference and sets
	// paymentStatus=refunded, status=cancelled regardless of prior status.
	MarkRefunded(ctx context.Context, intentID string) error
	Delete(ctx context.Context, id int64) error
}
