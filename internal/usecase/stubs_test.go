package usecase

import (
	"context"
	"io"
	"log/slog"

	"github.com/velomart/storefront/internal/adapter/stripe"
	domainErrors "github.com/velomart/storefront/internal/domain/errors"
	"github.com/velomart/storefront/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type stubProductRepository struct {
	getFn    func(context.Context, int64) (*model.Product, error)
	createFn func(context.Context, *model.Product) (*model.Product, error)
	updateFn func(context.Context, *model.Product) (*model.Product, error)
	listFn   func(context.Context, model.ProductFilter) ([]model.Product, int64, error)
}

func (s stubProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	return s.getFn(ctx, id)
}

func (s stubProductRepository) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	return s.createFn(ctx, p)
}

func (s stubProductRepository) Update(ctx context.Context, p *model.Product) (*model.Product, error) {
	return s.updateFn(ctx, p)
}

func (s stubProductRepository) List(ctx context.Context, f model.ProductFilter) ([]model.Product, int64, error) {
	return s.listFn(ctx, f)
}

// productsByID builds a stub serving a fixed catalog.
func productsByID(products ...model.Product) stubProductRepository {
	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return stubProductRepository{getFn: func(_ context.Context, id int64) (*model.Product, error) {
		p, ok := byID[id]
		if !ok {
			return nil, domainErrors.ErrNotFound
		}
		return &p, nil
	}}
}

type stubOrderRepository struct {
	createFn             func(context.Context, *model.Order) (*model.Order, error)
	getFn                func(context.Context, int64) (*model.Order, error)
	getByIntentFn        func(context.Context, string) (*model.Order, error)
	listByUserFn         func(context.Context, int64) ([]model.Order, error)
	listFn               func(context.Context, model.OrderFilter) (*model.OrderPage, error)
	cancelFn             func(context.Context, int64) (*model.Order, error)
	updateStatusFn       func(context.Context, int64, model.OrderStatus) (*model.Order, error)
	setPaymentIntentFn   func(context.Context, int64, string) error
	markPaidFn           func(context.Context, int64, string) error
	markPaymentFailedFn  func(context.Context, int64) error
	markRefundedFn       func(context.Context, string) error
	deleteFn             func(context.Context, int64) error
}

func (s stubOrderRepository) Create(ctx context.Context, o *model.Order) (*model.Order, error) {
	return s.createFn(ctx, o)
}

func (s stubOrderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	return s.getFn(ctx, id)
}

func (s stubOrderRepository) GetByPaymentIntent(ctx context.Context, intentID string) (*model.Order, error) {
	return s.getByIntentFn(ctx, intentID)
}

func (s stubOrderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.listByUserFn(ctx, userID)
}

func (s stubOrderRepository) List(ctx context.Context, f model.OrderFilter) (*model.OrderPage, error) {
	return s.listFn(ctx, f)
}

func (s stubOrderRepository) Cancel(ctx context.Context, id int64) (*model.Order, error) {
	return s.cancelFn(ctx, id)
}

func (s stubOrderRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	return s.updateStatusFn(ctx, id, status)
}

func (s stubOrderRepository) SetPaymentIntent(ctx context.Context, id int64, intentID string) error {
	return s.setPaymentIntentFn(ctx, id, intentID)
}

func (s stubOrderRepository) MarkPaid(ctx context.Context, id int64, intentID string) error {
	return s.markPaidFn(ctx, id, intentID)
}

func (s stubOrderRepository) MarkPaymentFailed(ctx context.Context, id int64) error {
	return s.markPaymentFailedFn(ctx, id)
}

func (s stubOrderRepository) MarkRefunded(ctx context.Context, intentID string) error {
	return s.markRefundedFn(ctx, intentID)
}

func (s stubOrderRepository) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubUserRepository struct {
	createFn            func(context.Context, string, string, string) (*model.User, error)
	getByEmailFn        func(context.Context, string) (*model.User, error)
	getByIDFn           func(context.Context, int64) (*model.User, error)
	updateProfileFn     func(context.Context, int64, string, string, string) (*model.User, error)
	updatePasswordFn    func(context.Context, int64, string) error
	addAddressFn        func(context.Context, int64, model.UserAddress) ([]model.UserAddress, error)
	updateAddressFn     func(context.Context, int64, int64, model.UserAddress) ([]model.UserAddress, error)
	deleteAddressFn     func(context.Context, int64, int64) ([]model.UserAddress, error)
	setDefaultAddressFn func(context.Context, int64, int64) ([]model.UserAddress, error)
}

func (s stubUserRepository) Create(ctx context.Context, name, email, hash string) (*model.User, error) {
	return s.createFn(ctx, name, email, hash)
}

func (s stubUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getByEmailFn(ctx, email)
}

func (s stubUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s stubUserRepository) UpdateProfile(ctx context.Context, id int64, name, phone, avatar string) (*model.User, error) {
	return s.updateProfileFn(ctx, id, name, phone, avatar)
}

func (s stubUserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return s.updatePasswordFn(ctx, id, hash)
}

func (s stubUserRepository) AddAddress(ctx context.Context, userID int64, addr model.UserAddress) ([]model.UserAddress, error) {
	return s.addAddressFn(ctx, userID, addr)
}

func (s stubUserRepository) UpdateAddress(ctx context.Context, userID, addressID int64, addr model.UserAddress) ([]model.UserAddress, error) {
	return s.updateAddressFn(ctx, userID, addressID, addr)
}

func (s stubUserRepository) DeleteAddress(ctx context.Context, userID, addressID int64) ([]model.UserAddress, error) {
	return s.deleteAddressFn(ctx, userID, addressID)
}

func (s stubUserRepository) SetDefaultAddress(ctx context.Context, userID, addressID int64) ([]model.UserAddress, error) {
	return s.setDefaultAddressFn(ctx, userID, addressID)
}

type stubFailureRepository struct {
	recordFn       func(context.Context, *model.WebhookFailure) error
	selectBatchFn  func(context.Context, int) ([]model.WebhookFailure, error)
	markResolvedFn func(context.Context, int64) error
	markAttemptFn  func(context.Context, int64, string) error
}

func (s stubFailureRepository) Record(ctx context.Context, f *model.WebhookFailure) error {
	return s.recordFn(ctx, f)
}

func (s stubFailureRepository) SelectBatchForRetry(ctx context.Context, limit int) ([]model.WebhookFailure, error) {
	return s.selectBatchFn(ctx, limit)
}

func (s stubFailureRepository) MarkResolved(ctx context.Context, id int64) error {
	return s.markResolvedFn(ctx, id)
}

func (s stubFailureRepository) MarkAttempt(ctx context.Context, id int64, lastError string) error {
	return s.markAttemptFn(ctx, id, lastError)
}

type stubProcessor struct {
	createIntentFn    func(context.Context, stripe.CreateIntentRequest) (*model.PaymentIntent, error)
	retrieveIntentFn  func(context.Context, string) (*model.PaymentIntent, error)
	createSessionFn   func(context.Context, stripe.CreateSessionRequest) (*model.CheckoutSession, error)
	retrieveSessionFn func(context.Context, string) (*model.CheckoutSession, error)
	createRefundFn    func(context.Context, string, *int64) (*model.Refund, error)
	listMethodsFn     func(context.Context, string) ([]stripe.PaymentMethod, error)
}

func (s stubProcessor) CreatePaymentIntent(ctx context.Context, req stripe.CreateIntentRequest) (*model.PaymentIntent, error) {
	return s.createIntentFn(ctx, req)
}

func (s stubProcessor) RetrievePaymentIntent(ctx context.Context, intentID string) (*model.PaymentIntent, error) {
	return s.retrieveIntentFn(ctx, intentID)
}

func (s stubProcessor) CreateCheckoutSession(ctx context.Context, req stripe.CreateSessionRequest) (*model.CheckoutSession, error) {
	return s.createSessionFn(ctx, req)
}

func (s stubProcessor) RetrieveCheckoutSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	return s.retrieveSessionFn(ctx, sessionID)
}

func (s stubProcessor) CreateRefund(ctx context.Context, intentID string, amount *int64) (*model.Refund, error) {
	return s.createRefundFn(ctx, intentID, amount)
}

func (s stubProcessor) ListPaymentMethods(ctx context.Context, customerID string) ([]stripe.PaymentMethod, error) {
	return s.listMethodsFn(ctx, customerID)
}

// ParseEvent treats the header "ok" as a valid signature so webhook tests can
// exercise reconciliation without real HMAC material.
func (s stubProcessor) ParseEvent(payload []byte, header string) (*stripe.Event, error) {
	if err := s.VerifySignature(payload, header); err != nil {
		return nil, err
	}
	var event stripe.Event
	if err := event.UnmarshalJSON(payload); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s stubProcessor) VerifySignature(_ []byte, header string) error {
	if header != "ok" {
		return domainErrors.ErrSignatureInvalid
	}
	return nil
}
