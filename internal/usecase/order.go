package usecase

import (
	"context"
	"log/slog"

	domainErrors "github.com/velomart/storefront/internal/domain/errors"
	"github.com/velomart/storefront/internal/domain/model"
	"github.com/velomart/storefront/internal/domain/repository"
)

// OrderUseCase covers order queries, cancellation and admin fulfillment.
type OrderUseCase struct {
	orders repository.OrderRepository
	logger *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, logger: logger}
}

// ListMine returns the requester's orders, newest first.
func (u *OrderUseCase) ListMine(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// Get returns one order. Existence is checked before ownership, so a missing
// order reads as not found rather than leaking whether it belongs to someone.
func (u *OrderUseCase) Get(ctx context.Context, orderID, requesterID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != requesterID {
		return nil, domainErrors.ErrAccessDenied
	}
	return order, nil
}

// Cancel stops a processing order owned by the requester and restores stock.
func (u *OrderUseCase) Cancel(ctx context.Context, orderID, requesterID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != requesterID {
		return nil, domainErrors.ErrAccessDenied
	}

	cancelled, err := u.orders.Cancel(ctx, orderID)
	if err != nil {
		return nil, err
	}

	u.logger.Info("order cancelled",
		slog.Int64("order_id", orderID),
		slog.Int64("user_id", requesterID),
	)
	return cancelled, nil
}

// List returns a filtered page of all orders. Admin surface.
func (u *OrderUseCase) List(ctx context.Context, filter model.OrderFilter) (*model.OrderPage, error) {
	return u.orders.List(ctx, filter)
}

// GetAny returns any order without an ownership check. Admin surface.
func (u *OrderUseCase) GetAny(ctx context.Context, orderID int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// UpdateStatus moves an order along the fulfillment lifecycle. Unknown
// statuses fail validation; transitions outside the lifecycle graph fail with
// ErrInvalidState. Admin surface.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, domainErrors.ErrValidation
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !model.CanTransition(order.Status, status) {
		return nil, domainErrors.ErrInvalidState
	}

	updated, err := u.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}

	u.logger.Info("order status updated",
		slog.Int64("order_id", orderID),
		slog.String("from", string(order.Status)),
		slog.String("to", string(status)),
	)
	return updated, nil
}

// Delete removes an order record. Admin surface; stock is not restored.
func (u *OrderUseCase) Delete(ctx context.Context, orderID int64) error {
	return u.orders.Delete(ctx, orderID)
}
