package test

import (
	"context"
	"sync"

	"github.com/velomart/storefront/internal/adapter/stripe"
	"github.com/velomart/storefront/internal/domain/model"
	pkgAuth "github.com/velomart/storefront/internal/pkg/auth"
	"github.com/velomart/storefront/internal/usecase"
)

// FacadeStub provides controllable behaviour for every handler endpoint.
// Unset functions fall back to benign defaults.
type FacadeStub struct {
	RegisterFn          func(context.Context, string, string, string) (*model.User, string, error)
	AuthenticateFn      func(context.Context, string, string) (*model.User, string, error)
	ParseTokenFn        func(string) (pkgAuth.Identity, error)
	ProductFn           func(context.Context, int64) (*model.Product, error)
	ProductsFn          func(context.Context, model.ProductFilter) ([]model.Product, int64, error)
	CreateProductFn     func(context.Context, *model.Product) (*model.Product, error)
	UpdateProductFn     func(context.Context, *model.Product) (*model.Product, error)
	PlaceOrderFn        func(context.Context, int64, []usecase.CartItem, model.Address, string) (*model.Order, error)
	MyOrdersFn          func(context.Context, int64) ([]model.Order, error)
	OrderFn             func(context.Context, int64, int64) (*model.Order, error)
	CancelOrderFn       func(context.Context, int64, int64) (*model.Order, error)
	AllOrdersFn         func(context.Context, model.OrderFilter) (*model.OrderPage, error)
	UpdateStatusFn      func(context.Context, int64, model.OrderStatus) (*model.Order, error)
	DeleteOrderFn       func(context.Context, int64) error
	CreateIntentFn      func(context.Context, int64, int64) (*model.PaymentIntent, error)
	ConfirmPaymentFn    func(context.Context, int64, int64, string) (*model.Order, string, error)
	CreateSessionFn     func(context.Context, int64, int64, []usecase.CartItem) (*model.CheckoutSession, error)
	SessionFn           func(context.Context, string) (*model.CheckoutSession, error)
	HandleWebhookFn     func(context.Context, []byte, string) error
	RefundFn            func(context.Context, string, *float64) (*model.Refund, error)
	PaymentMethodsFn    func(context.Context, string) ([]stripe.PaymentMethod, error)
	ProfileFn           func(context.Context, int64) (*model.User, error)
	UpdateProfileFn     func(context.Context, int64, string, string, string) (*model.User, error)
	ChangePasswordFn    func(context.Context, int64, string, string) error
	AddAddressFn        func(context.Context, int64, model.UserAddress) ([]model.UserAddress, error)
	UpdateAddressFn     func(context.Context, int64, int64, model.UserAddress) ([]model.UserAddress, error)
	DeleteAddressFn     func(context.Context, int64, int64) ([]model.UserAddress, error)
	SetDefaultAddressFn func(context.Context, int64, int64) ([]model.UserAddress, error)
}

func (s FacadeStub) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, name, email, password)
	}
	return &model.User{ID: 1, Name: name, Email: email}, "stub-token", nil
}

func (s FacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email}, "stub-token", nil
}

func (s FacadeStub) ParseToken(token string) (pkgAuth.Identity, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return pkgAuth.Identity{UserID: 1}, nil
}

func (s FacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "stub", Price: 1, Stock: 1, IsActive: true}, nil
}

func (s FacadeStub) Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, int64, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, filter)
	}
	return []model.Product{{ID: 1, Name: "stub", Price: 1, Stock: 1, IsActive: true}}, 1, nil
}

func (s FacadeStub) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.CreateProductFn != nil {
		return s.CreateProductFn(ctx, product)
	}
	created := *product
	created.ID = 1
	return &created, nil
}

func (s FacadeStub) UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.UpdateProductFn != nil {
		return s.UpdateProductFn(ctx, product)
	}
	return product, nil
}

func (s FacadeStub) PlaceOrder(ctx context.Context, userID int64, items []usecase.CartItem, shipping model.Address, paymentMethod string) (*model.Order, error) {
	if s.PlaceOrderFn != nil {
		return s.PlaceOrderFn(ctx, userID, items, shipping, paymentMethod)
	}
	return &model.Order{ID: 1, UserID: userID, Status: model.OrderStatusPending, PaymentStatus: model.PaymentStatusPending}, nil
}

func (s FacadeStub) MyOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.MyOrdersFn != nil {
		return s.MyOrdersFn(ctx, userID)
	}
	return []model.Order{{ID: 1, UserID: userID}}, nil
}

func (s FacadeStub) Order(ctx context.Context, orderID, requesterID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID, requesterID)
	}
	return &model.Order{ID: orderID, UserID: requesterID}, nil
}

func (s FacadeStub) CancelOrder(ctx context.Context, orderID, requesterID int64) (*model.Order, error) {
	if s.CancelOrderFn != nil {
		return s.CancelOrderFn(ctx, orderID, requesterID)
	}
	return &model.Order{ID: orderID, UserID: requesterID, Status: model.OrderStatusCancelled}, nil
}

func (s FacadeStub) AllOrders(ctx context.Context, filter model.OrderFilter) (*model.OrderPage, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx, filter)
	}
	return &model.OrderPage{Orders: []model.Order{{ID: 1}}, Total: 1, Page: 1, TotalPages: 1}, nil
}

func (s FacadeStub) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	return &model.Order{ID: orderID, Status: status}, nil
}

func (s FacadeStub) DeleteOrder(ctx context.Context, orderID int64) error {
	if s.DeleteOrderFn != nil {
		return s.DeleteOrderFn(ctx, orderID)
	}
	return nil
}

func (s FacadeStub) CreatePaymentIntent(ctx context.Context, orderID, requesterID int64) (*model.PaymentIntent, error) {
	if s.CreateIntentFn != nil {
		return s.CreateIntentFn(ctx, orderID, requesterID)
	}
	return &model.PaymentIntent{ID: "pi_stub", ClientSecret: "pi_stub_secret", Status: "requires_payment_method"}, nil
}

func (s FacadeStub) ConfirmPayment(ctx context.Context, orderID, requesterID int64, intentID string) (*model.Order, string, error) {
	if s.ConfirmPaymentFn != nil {
		return s.ConfirmPaymentFn(ctx, orderID, requesterID, intentID)
	}
	return &model.Order{ID: orderID, UserID: requesterID, PaymentStatus: model.PaymentStatusCompleted}, "succeeded", nil
}

func (s FacadeStub) CreateCheckoutSession(ctx context.Context, userID, orderID int64, items []usecase.CartItem) (*model.CheckoutSession, error) {
	if s.CreateSessionFn != nil {
		return s.CreateSessionFn(ctx, userID, orderID, items)
	}
	return &model.CheckoutSession{ID: "cs_stub", URL: "https://pay.example/cs_stub"}, nil
}

func (s FacadeStub) CheckoutSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	if s.SessionFn != nil {
		return s.SessionFn(ctx, sessionID)
	}
	return &model.CheckoutSession{ID: sessionID, PaymentStatus: "paid"}, nil
}

func (s FacadeStub) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	if s.HandleWebhookFn != nil {
		return s.HandleWebhookFn(ctx, payload, sigHeader)
	}
	return nil
}

func (s FacadeStub) Refund(ctx context.Context, intentID string, amount *float64) (*model.Refund, error) {
	if s.RefundFn != nil {
		return s.RefundFn(ctx, intentID, amount)
	}
	return &model.Refund{ID: "re_stub", Status: "succeeded"}, nil
}

func (s FacadeStub) PaymentMethods(ctx context.Context, customerID string) ([]stripe.PaymentMethod, error) {
	if s.PaymentMethodsFn != nil {
		return s.PaymentMethodsFn(ctx, customerID)
	}
	return []stripe.PaymentMethod{{ID: "pm_stub", Brand: "visa", Last4: "4242"}}, nil
}

func (s FacadeStub) Profile(ctx context.Context, userID int64) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.User{ID: userID, Name: "stub", Email: "stub@example.com"}, nil
}

func (s FacadeStub) UpdateProfile(ctx context.Context, userID int64, name, phone, avatar string) (*model.User, error) {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, userID, name, phone, avatar)
	}
	return &model.User{ID: userID, Name: name, Phone: phone, Avatar: avatar}, nil
}

func (s FacadeStub) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if s.ChangePasswordFn != nil {
		return s.ChangePasswordFn(ctx, userID, current, next)
	}
	return nil
}

func (s FacadeStub) AddAddress(ctx context.Context, userID int64, addr model.UserAddress) ([]model.UserAddress, error) {
	if s.AddAddressFn != nil {
		return s.AddAddressFn(ctx, userID, addr)
	}
	addr.ID = 1
	addr.IsDefault = true
	return []model.UserAddress{addr}, nil
}

func (s FacadeStub) UpdateAddress(ctx context.Context, userID, addressID int64, addr model.UserAddress) ([]model.UserAddress, error) {
	if s.UpdateAddressFn != nil {
		return s.UpdateAddressFn(ctx, userID, addressID, addr)
	}
	addr.ID = addressID
	return []model.UserAddress{addr}, nil
}

func (s FacadeStub) DeleteAddress(ctx context.Context, userID, addressID int64) ([]model.UserAddress, error) {
	if s.DeleteAddressFn != nil {
		return s.DeleteAddressFn(ctx, userID, addressID)
	}
	return []model.UserAddress{}, nil
}

func (s FacadeStub) SetDefaultAddress(ctx context.Context, userID, addressID int64) ([]model.UserAddress, error) {
	if s.SetDefaultAddressFn != nil {
		return s.SetDefaultAddressFn(ctx, userID, addressID)
	}
	return []model.UserAddress{{ID: addressID, IsDefault: true}}, nil
}

// RetryCall records one RetryWebhookFailure invocation.
type RetryCall struct {
	Failure model.WebhookFailure
}

// WorkerFacadeStub mimics worker interactions with the application facade.
type WorkerFacadeStub struct {
	Batches   [][]model.WebhookFailure
	PendingFn func(context.Context, int) ([]model.WebhookFailure, error)
	RetryFn   func(context.Context, model.WebhookFailure) error

	Retries []RetryCall
	mu      sync.Mutex
	calls   int
}

// PendingWebhookRetries serves configured batches one by one, then empties.
func (s *WorkerFacadeStub) PendingWebhookRetries(ctx context.Context, limit int) ([]model.WebhookFailure, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls >= len(s.Batches) {
		return nil, nil
	}
	batch := s.Batches[s.calls]
	s.calls++
	return batch, nil
}

// RetryWebhookFailure records the call and delegates when configured.
func (s *WorkerFacadeStub) RetryWebhookFailure(ctx context.Context, failure model.WebhookFailure) error {
	s.mu.Lock()
	s.Retries = append(s.Retries, RetryCall{Failure: failure})
	s.mu.Unlock()
	if s.RetryFn != nil {
		return s.RetryFn(ctx, failure)
	}
	return nil
}

// RetryCount reports how many retries were attempted so far.
func (s *WorkerFacadeStub) RetryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Retries)
}
