package handlers

import (
	"context"

	"github.com/velomart/storefront/internal/adapter/stripe"
	"github.com/velomart/storefront/internal/domain/model"
	pkgAuth "github.com/velomart/storefront/internal/pkg/auth"
	"github.com/velomart/storefront/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (pkgAuth.Identity, error)
}

// CatalogFacade encapsulates catalog operations exposed via HTTP.
type CatalogFacade interface {
	Product(ctx context.Context, id int64) (*model.Product, error)
	Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, int64, error)
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, userID int64, items []usecase.CartItem, shipping model.Address, paymentMethod string) (*model.Order, error)
	MyOrders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, orderID, requesterID int64) (*model.Order, error)
	CancelOrder(ctx context.Context, orderID, requesterID int64) (*model.Order, error)
	AllOrders(ctx context.Context, filter model.OrderFilter) (*model.OrderPage, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error)
	DeleteOrder(ctx context.Context, orderID int64) error
}

// PaymentFacade encapsulates payment processor operations exposed via HTTP.
type PaymentFacade interface {
	CreatePaymentIntent(ctx context.Context, orderID, requesterID int64) (*model.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, orderID, requesterID int64, intentID string) (*model.Order, string, error)
	CreateCheckoutSession(ctx context.Context, userID, orderID int64, items []usecase.CartItem) (*model.CheckoutSession, error)
	CheckoutSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error)
	HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error
	Refund(ctx context.Context, intentID string, amount *float64) (*model.Refund, error)
	PaymentMethods(ctx context.Context, customerID string) ([]stripe.PaymentMethod, error)
}

// ProfileFacade encapsulates account operations exposed via HTTP.
type ProfileFacade interface {
	Profile(ctx context.Context, userID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, name, phone, avatar string) (*model.User, error)
	ChangePassword(ctx context.Context, userID int64, current, next string) error
	AddAddress(ctx context.Context, userID int64, addr model.UserAddress) ([]model.UserAddress, error)
	UpdateAddress(ctx context.Context, userID, addressID int64, addr model.UserAddress) ([]model.UserAddress, error)
	DeleteAddress(ctx context.Context, userID, addressID int64) ([]model.UserAddress, error)
	SetDefaultAddress(ctx context.Context, userID, addressID int64) ([]model.UserAddress, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	CatalogFacade
	OrderFacade
	PaymentFacade
	ProfileFacade
}
