package test

import (
	"context"
	"sync"

	"github.com/velomart/storefront/internal/adapter/stripe"
	domainErrors "github.com/velomart/storefront/internal/domain/errors"
	"github.com/velomart/storefront/internal/domain/model"
)

// ProductRepositoryStub keeps products in memory.
type ProductRepositoryStub struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]model.Product
}

// NewProductRepositoryStub creates an empty in-memory catalog.
func NewProductRepositoryStub(seed ...model.Product) *ProductRepositoryStub {
	s := &ProductRepositoryStub{products: make(map[int64]model.Product)}
	for _, p := range seed {
		s.nextID++
		if p.ID == 0 {
			p.ID = s.nextID
		}
		s.products[p.ID] = p
	}
	return s
}

func (s *ProductRepositoryStub) Create(_ context.Context, product *model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	created := *product
	created.ID = s.nextID
	s.products[created.ID] = created
	return &created, nil
}

func (s *ProductRepositoryStub) Update(_ context.Context, product *model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ID]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	s.products[product.ID] = *product
	updated := *product
	return &updated, nil
}

func (s *ProductRepositoryStub) GetByID(_ context.Context, id int64) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &p, nil
}

func (s *ProductRepositoryStub) List(_ context.Context, _ model.ProductFilter) ([]model.Product, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

// OrderRepositoryStub serves canned orders.
type OrderRepositoryStub struct {
	Order *model.Order
}

func (s *OrderRepositoryStub) Create(_ context.Context, order *model.Order) (*model.Order, error) {
	created := *order
	created.ID = 1
	return &created, nil
}

func (s *OrderRepositoryStub) GetByID(context.Context, int64) (*model.Order, error) {
	if s.Order == nil {
		return nil, domainErrors.ErrNotFound
	}
	order := *s.Order
	return &order, nil
}

func (s *OrderRepositoryStub) GetByPaymentIntent(context.Context, string) (*model.Order, error) {
	if s.Order == nil {
		return nil, domainErrors.ErrNotFound
	}
	order := *s.Order
	return &order, nil
}

func (s *OrderRepositoryStub) ListByUser(context.Context, int64) ([]model.Order, error) {
	if s.Order == nil {
		return nil, nil
	}
	return []model.Order{*s.Order}, nil
}

func (s *OrderRepositoryStub) List(context.Context, model.OrderFilter) (*model.OrderPage, error) {
	page := &model.OrderPage{Page: 1, TotalPages: 1}
	if s.Order != nil {
		page.Orders = []model.Order{*s.Order}
		page.Total = 1
	}
	return page, nil
}

func (s *OrderRepositoryStub) Cancel(context.Context, int64) (*model.Order, error) {
	if s.Order == nil {
		return nil, domainErrors.ErrNotFound
	}
	order := *s.Order
	order.Status = model.OrderStatusCancelled
	return &order, nil
}

func (s *OrderRepositoryStub) UpdateStatus(_ context.Context, _ int64, status model.OrderStatus) (*model.Order, error) {
	if s.Order == nil {
		return nil, domainErrors.ErrNotFound
	}
	order := *s.Order
	order.Status = status
	return &order, nil
}

func (s *OrderRepositoryStub) SetPaymentIntent(context.Context, int64, string) error { return nil }
func (s *OrderRepositoryStub) MarkPaid(context.Context, int64, string) error         { return nil }
func (s *OrderRepositoryStub) MarkPaymentFailed(context.Context, int64) error        { return nil }
func (s *OrderRepositoryStub) MarkRefunded(context.Context, string) error            { return nil }
func (s *OrderRepositoryStub) Delete(context.Context, int64) error                   { return nil }

// UserRepositoryStub keeps users in memory keyed by email.
type UserRepositoryStub struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*model.User
}

// NewUserRepositoryStub creates an empty in-memory user store.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{byID: make(map[int64]*model.User)}
}

func (s *UserRepositoryStub) Create(_ context.Context, name, email, passwordHash string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	s.nextID++
	user := &model.User{ID: s.nextID, Name: name, Email: email, PasswordHash: passwordHash}
	s.byID[user.ID] = user
	copied := *user
	return &copied, nil
}

func (s *UserRepositoryStub) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *UserRepositoryStub) UpdateProfile(_ context.Context, id int64, name, phone, avatar string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	u.Name, u.Phone, u.Avatar = name, phone, avatar
	copied := *u
	return &copied, nil
}

func (s *UserRepositoryStub) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (s *UserRepositoryStub) AddAddress(_ context.Context, userID int64, addr model.UserAddress) ([]model.UserAddress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	addr.ID = int64(len(u.Addresses) + 1)
	if len(u.Addresses) == 0 {
		addr.IsDefault = true
	}
	if addr.IsDefault {
		for i := range u.Addresses {
			u.Addresses[i].IsDefault = false
		}
	}
	u.Addresses = append(u.Addresses, addr)
	return append([]model.UserAddress(nil), u.Addresses...), nil
}

func (s *UserRepositoryStub) UpdateAddress(_ context.Context, userID, addressID int64, addr model.UserAddress) ([]model.UserAddress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	for i := range u.Addresses {
		if u.Addresses[i].ID == addressID {
			addr.ID = addressID
			addr.IsDefault = u.Addresses[i].IsDefault
			u.Addresses[i] = addr
			return append([]model.UserAddress(nil), u.Addresses...), nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) DeleteAddress(_ context.Context, userID, addressID int64) ([]model.UserAddress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	kept := u.Addresses[:0]
	found := false
	for _, a := range u.Addresses {
		if a.ID == addressID {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return nil, domainErrors.ErrNotFound
	}
	u.Addresses = kept
	return append([]model.UserAddress(nil), u.Addresses...), nil
}

func (s *UserRepositoryStub) SetDefaultAddress(_ context.Context, userID, addressID int64) ([]model.UserAddress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	found := false
	for i := range u.Addresses {
		u.Addresses[i].IsDefault = u.Addresses[i].ID == addressID
		if u.Addresses[i].IsDefault {
			found = true
		}
	}
	if !found {
		return nil, domainErrors.ErrNotFound
	}
	return append([]model.UserAddress(nil), u.Addresses...), nil
}

// WebhookFailureRepositoryStub records failures in memory.
type WebhookFailureRepositoryStub struct {
	mu       sync.Mutex
	nextID   int64
	Failures []model.WebhookFailure
}

func (s *WebhookFailureRepositoryStub) Record(_ context.Context, failure *model.WebhookFailure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	failure.ID = s.nextID
	s.Failures = append(s.Failures, *failure)
	return nil
}

func (s *WebhookFailureRepositoryStub) SelectBatchForRetry(_ context.Context, limit int) ([]model.WebhookFailure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.WebhookFailure, 0, limit)
	for _, f := range s.Failures {
		if f.Resolved {
			continue
		}
		out = append(out, f)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *WebhookFailureRepositoryStub) MarkResolved(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Failures {
		if s.Failures[i].ID == id {
			s.Failures[i].Resolved = true
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (s *WebhookFailureRepositoryStub) MarkAttempt(_ context.Context, id int64, lastError string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Failures {
		if s.Failures[i].ID == id {
			s.Failures[i].Attempts++
			s.Failures[i].LastError = lastError
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// ProcessorStub satisfies the payment processor client with canned replies.
type ProcessorStub struct {
	Intent  *model.PaymentIntent
	Session *model.CheckoutSession
}

func (s *ProcessorStub) CreatePaymentIntent(_ context.Context, req stripe.CreateIntentRequest) (*model.PaymentIntent, error) {
	if s.Intent != nil {
		return s.Intent, nil
	}
	return &model.PaymentIntent{ID: "pi_stub", ClientSecret: "pi_stub_secret", Status: "requires_payment_method", Amount: req.Amount, OrderID: req.OrderID}, nil
}

func (s *ProcessorStub) RetrievePaymentIntent(_ context.Context, intentID string) (*model.PaymentIntent, error) {
	if s.Intent != nil {
		return s.Intent, nil
	}
	return &model.PaymentIntent{ID: intentID, Status: "succeeded"}, nil
}

func (s *ProcessorStub) CreateCheckoutSession(context.Context, stripe.CreateSessionRequest) (*model.CheckoutSession, error) {
	if s.Session != nil {
		return s.Session, nil
	}
	return &model.CheckoutSession{ID: "cs_stub", URL: "https://pay.example/cs_stub"}, nil
}

func (s *ProcessorStub) RetrieveCheckoutSession(_ context.Context, sessionID string) (*model.CheckoutSession, error) {
	if s.Session != nil {
		return s.Session, nil
	}
	return &model.CheckoutSession{ID: sessionID, PaymentStatus: "paid"}, nil
}

func (s *ProcessorStub) CreateRefund(_ context.Context, intentID string, amount *int64) (*model.Refund, error) {
	refund := &model.Refund{ID: "re_stub", Status: "succeeded"}
	if amount != nil {
		refund.Amount = *amount
	}
	return refund, nil
}

func (s *ProcessorStub) ListPaymentMethods(context.Context, string) ([]stripe.PaymentMethod, error) {
	return []stripe.PaymentMethod{{ID: "pm_stub", Brand: "visa", Last4: "4242"}}, nil
}

func (s *ProcessorStub) ParseEvent(payload []byte, header string) (*stripe.Event, error) {
	if err := s.VerifySignature(payload, header); err != nil {
		return nil, err
	}
	var event stripe.Event
	if err := event.UnmarshalJSON(payload); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *ProcessorStub) VerifySignature(_ []byte, header string) error {
	if header == "" {
		return domainErrors.ErrSignatureInvalid
	}
	return nil
}
