package app

import (
	"context"

	"github.com/velomart/storefront/internal/adapter/stripe"
	"github.com/velomart/storefront/internal/domain/model"
	pkgAuth "github.com/velomart/storefront/internal/pkg/auth"
	"github.com/velomart/storefront/internal/usecase"
)

// StorefrontFacade aggregates the use cases behind one application surface
// consumed by HTTP handlers, middleware and the retry worker.
type StorefrontFacade struct {
	auth     *usecase.AuthUseCase
	profile  *usecase.ProfileUseCase
	catalog  *usecase.CatalogUseCase
	checkout *usecase.CheckoutUseCase
	orders   *usecase.OrderUseCase
	payments *usecase.PaymentUseCase
}

// NewStorefrontFacade wires the facade from individual use cases.
func NewStorefrontFacade(
	auth *usecase.AuthUseCase,
	profile *usecase.ProfileUseCase,
	catalog *usecase.CatalogUseCase,
	checkout *usecase.CheckoutUseCase,
	orders *usecase.OrderUseCase,
	payments *usecase.PaymentUseCase,
) *StorefrontFacade {
	return &StorefrontFacade{
		auth:     auth,
		profile:  profile,
		catalog:  catalog,
		checkout: checkout,
		orders:   orders,
		payments: payments,
	}
}

func (f *StorefrontFacade) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	return f.auth.Register(ctx, name, email, password)
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *StorefrontFacade) ParseToken(token string) (pkgAuth.Identity, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Get(ctx, id)
}

func (f *StorefrontFacade) Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, int64, error) {
	return f.catalog.List(ctx, filter)
}

func (f *StorefrontFacade) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	return f.catalog.Create(ctx, product)
}

func (f *StorefrontFacade) UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	return f.catalog.Update(ctx, product)
}

func (f *StorefrontFacade) PlaceOrder(ctx context.Context, userID int64, items []usecase.CartItem, shipping model.Address, paymentMethod string) (*model.Order, error) {
	return f.checkout.CreateOrder(ctx, userID, items, shipping, paymentMethod)
}

func (f *StorefrontFacade) MyOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListMine(ctx, userID)
}

func (f *StorefrontFacade) Order(ctx context.Context, orderID, requesterID int64) (*model.Order, error) {
	return f.orders.Get(ctx, orderID, requesterID)
}

func (f *StorefrontFacade) CancelOrder(ctx context.Context, orderID, requesterID int64) (*model.Order, error) {
	return f.orders.Cancel(ctx, orderID, requesterID)
}

func (f *StorefrontFacade) AllOrders(ctx context.Context, filter model.OrderFilter) (*model.OrderPage, error) {
	return f.orders.List(ctx, filter)
}

func (f *StorefrontFacade) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, orderID, status)
}

func (f *StorefrontFacade) DeleteOrder(ctx context.Context, orderID int64) error {
	return f.orders.Delete(ctx, orderID)
}

func (f *StorefrontFacade) CreatePaymentIntent(ctx context.Context, orderID, requesterID int64) (*model.PaymentIntent, error) {
	return f.payments.CreateIntent(ctx, orderID, requesterID)
}

func (f *StorefrontFacade) ConfirmPayment(ctx context.Context, orderID, requesterID int64, intentID string) (*model.Order, string, error) {
	return f.payments.Confirm(ctx, orderID, requesterID, intentID)
}

func (f *StorefrontFacade) CreateCheckoutSession(ctx context.Context, userID, orderID int64, items []usecase.CartItem) (*model.CheckoutSession, error) {
	return f.payments.CreateSession(ctx, userID, orderID, items)
}

func (f *StorefrontFacade) CheckoutSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	return f.payments.RetrieveSession(ctx, sessionID)
}

func (f *StorefrontFacade) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	return f.payments.HandleWebhook(ctx, payload, sigHeader)
}

func (f *StorefrontFacade) Refund(ctx context.Context, intentID string, amount *float64) (*model.Refund, error) {
	return f.payments.Refund(ctx, intentID, amount)
}

func (f *StorefrontFacade) PaymentMethods(ctx context.Context, customerID string) ([]stripe.PaymentMethod, error) {
	return f.payments.ListPaymentMethods(ctx, customerID)
}

func (f *StorefrontFacade) PendingWebhookRetries(ctx context.Context, limit int) ([]model.WebhookFailure, error) {
	return f.payments.PendingWebhookRetries(ctx, limit)
}

func (f *StorefrontFacade) RetryWebhookFailure(ctx context.Context, failure model.WebhookFailure) error {
	return f.payments.RetryWebhookFailure(ctx, failure)
}

func (f *StorefrontFacade) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return f.profile.Get(ctx, userID)
}

func (f *StorefrontFacade) UpdateProfile(ctx context.Context, userID int64, name, phone, avatar string) (*model.User, error) {
	return f.profile.Update(ctx, userID, name, phone, avatar)
}

func (f *StorefrontFacade) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	return f.profile.ChangePassword(ctx, userID, current, next)
}

func (f *StorefrontFacade) AddAddress(ctx context.Context, userID int64, addr model.UserAddress) ([]model.UserAddress, error) {
	return f.profile.AddAddress(ctx, userID, addr)
}

func (f *StorefrontFacade) UpdateAddress(ctx context.Context, userID, addressID int64, addr model.UserAddress) ([]model.UserAddress, error) {
	return f.profile.UpdateAddress(ctx, userID, addressID, addr)
}

func (f *StorefrontFacade) DeleteAddress(ctx context.Context, userID, addressID int64) ([]model.UserAddress, error) {
	return f.profile.DeleteAddress(ctx, userID, addressID)
}

func (f *StorefrontFacade) SetDefaultAddress(ctx context.Context, userID, addressID int64) ([]model.UserAddress, error) {
	return f.profile.SetDefaultAddress(ctx, userID, addressID)
}
