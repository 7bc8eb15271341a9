package usecase

import (
	"context"
	"log/slog"
	"math"

	domainErrors "github.com/velomart/storefront/internal/domain/errors"
	"github.com/velomart/storefront/internal/domain/model"
	"github.com/velomart/storefront/internal/domain/repository"
)

// CartItem is one requested line at checkout, prior to price resolution.
type CartItem struct {
	ProductID int64
	Quantity  int32
}

// CheckoutUseCase turns a cart into a persisted order.
type CheckoutUseCase struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	logger   *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(products repository.ProductRepository, orders repository.OrderRepository, logger *slog.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{products: products, orders: orders, logger: logger}
}

// CreateOrder resolves every cart line against the catalog, copies current
// unit prices into the order and persists it. Stock is decremented inside the
// repository transaction; any line short on stock aborts the whole order.
func (u *CheckoutUseCase) CreateOrder(ctx context.Context, userID int64, items []CartItem, shipping model.Address, paymentMethod string) (*model.Order, error) {
	if len(items) == 0 {
		return nil, domainErrors.ErrValidation
	}

	order := &model.Order{
		UserID:          userID,
		ShippingAddress: shipping,
		PaymentMethod:   paymentMethod,
		Status:          model.OrderStatusPending,
		PaymentStatus:   model.PaymentStatusPending,
	}

	var total float64
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, domainErrors.ErrValidation
		}

		product, err := u.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product.Stock < item.Quantity {
			return nil, &domainErrors.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   item.Quantity,
			}
		}

		order.Items = append(order.Items, model.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
		total += product.Price * float64(item.Quantity)
	}
	order.TotalAmount = math.Round(total*100) / 100

	created, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	u.logger.Info("order created",
		slog.Int64("order_id", created.ID),
		slog.Int64("user_id", userID),
		slog.Float64("total", created.TotalAmount),
	)
	return created, nil
}
