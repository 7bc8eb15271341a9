package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/velomart/storefront/internal/domain/errors"
	"github.com/velomart/storefront/internal/domain/model"
	pkgAuth "github.com/velomart/storefront/internal/pkg/auth"
	"github.com/velomart/storefront/internal/server/http/dto"
	"github.com/velomart/storefront/internal/server/http/middleware"
	testhelpers "github.com/velomart/storefront/internal/test"
	"github.com/velomart/storefront/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path, target string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, path, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.IdentityContextKey, pkgAuth.Identity{UserID: id})
	}
}

func jsonHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var envelope dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return envelope
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "s3cret1"})
	resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(testhelpers.FacadeStub{}).Register, nil, body, jsonHeaders())
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") == "" {
		t.Fatalf("expected auth header to be set")
	}

	var auth dto.AuthResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &auth); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if auth.Token == "" || auth.User.Email != "ada@example.com" {
		t.Fatalf("unexpected auth response: %+v", auth)
	}
}

func TestAuthHandlerRegisterDuplicateEmail(t *testing.T) {
	stub := testhelpers.FacadeStub{RegisterFn: func(context.Context, string, string, string) (*model.User, string, error) {
		return nil, "", domainErrors.ErrAlreadyExists
	}}
	body, _ := json.Marshal(dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "s3cret1"})
	resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(stub).Register, nil, body, jsonHeaders())
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
	if envelope := decodeError(t, resp); envelope.Message == "" {
		t.Fatal("expected error envelope with message")
	}
}

func TestAuthHandlerRegisterValidation(t *testing.T) {
	body, _ := json.Marshal(dto.RegisterRequest{Name: "Ada", Email: "not-an-email", Password: "s3cret1"})
	resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(testhelpers.FacadeStub{}).Register, nil, body, jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	stub := testhelpers.FacadeStub{AuthenticateFn: func(context.Context, string, string) (*model.User, string, error) {
		return nil, "", domainErrors.ErrInvalidCredentials
	}}
	body, _ := json.Marshal(dto.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(stub).Login, nil, body, jsonHeaders())
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestProductHandlerListPassesFilter(t *testing.T) {
	stub := testhelpers.FacadeStub{ProductsFn: func(_ context.Context, filter model.ProductFilter) ([]model.Product, int64, error) {
		if filter.Category != "lamps" || filter.Page != 2 || filter.Limit != 5 || !filter.ActiveOnly {
			t.Fatalf("unexpected filter: %+v", filter)
		}
		return []model.Product{{ID: 1, Name: "Desk Lamp", Price: 20, IsActive: true}}, 6, nil
	}}

	resp := performRequest(t, http.MethodGet, "/products", "/products?category=lamps&page=2&limit=5", NewProductHandler(stub).List, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var page dto.ProductListResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if page.Total != 6 || len(page.Products) != 1 || page.Page != 2 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestProductHandlerGetNotFound(t *testing.T) {
	stub := testhelpers.FacadeStub{ProductFn: func(context.Context, int64) (*model.Product, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp := performRequest(t, http.MethodGet, "/products/:id", "/products/99", NewProductHandler(stub).Get, nil, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestProductHandlerGetBadID(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/products/:id", "/products/xyz", NewProductHandler(testhelpers.FacadeStub{}).Get, nil, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestProductHandlerCreate(t *testing.T) {
	stub := testhelpers.FacadeStub{CreateProductFn: func(_ context.Context, p *model.Product) (*model.Product, error) {
		if !p.IsActive {
			t.Fatal("products default to active")
		}
		created := *p
		created.ID = 7
		return &created, nil
	}}
	body, _ := json.Marshal(dto.ProductRequest{Name: "Desk Lamp", Price: 20, Category: "lamps", Stock: 5})
	resp := performRequest(t, http.MethodPost, "/products", "/products", NewProductHandler(stub).Create, nil, body, jsonHeaders())
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
}

func TestOrderHandlerCreate(t *testing.T) {
	stub := testhelpers.FacadeStub{PlaceOrderFn: func(_ context.Context, userID int64, items []usecase.CartItem, shipping model.Address, method string) (*model.Order, error) {
		if userID != 7 || len(items) != 1 || items[0].Quantity != 2 || method != "card" {
			t.Fatalf("unexpected args: %d %+v %s", userID, items, method)
		}
		return &model.Order{ID: 12, UserID: userID, TotalAmount: 40, Status: model.OrderStatusPending, PaymentStatus: model.PaymentStatusPending}, nil
	}}

	body, _ := json.Marshal(dto.CreateOrderRequest{
		Items:           []dto.OrderItemRequest{{ProductID: 1, Quantity: 2}},
		ShippingAddress: dto.ShippingAddress{Street: "Brivibas 1", City: "Riga", Zip: "LV-1010", Country: "LV"},
		PaymentMethod:   "card",
	})
	resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(stub).Create, asUser(7), body, jsonHeaders())
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var order dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if order.ID != 12 || order.TotalAmount != 40 || order.Status != "pending" {
		t.Fatalf("unexpected order: %+v", order)
	}
}

func TestOrderHandlerCreateInsufficientStock(t *testing.T) {
	stub := testhelpers.FacadeStub{PlaceOrderFn: func(context.Context, int64, []usecase.CartItem, model.Address, string) (*model.Order, error) {
		return nil, &domainErrors.InsufficientStockError{ProductID: 1, ProductName: "Desk Lamp", Available: 1, Requested: 2}
	}}
	body, _ := json.Marshal(dto.CreateOrderRequest{
		Items:           []dto.OrderItemRequest{{ProductID: 1, Quantity: 2}},
		ShippingAddress: dto.ShippingAddress{Street: "Brivibas 1", City: "Riga", Zip: "LV-1010", Country: "LV"},
		PaymentMethod:   "card",
	})
	resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(stub).Create, asUser(7), body, jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	envelope := decodeError(t, resp)
	if envelope.Message != "insufficient stock for Desk Lamp" {
		t.Fatalf("unexpected message %q", envelope.Message)
	}
}

func TestOrderHandlerCreateRejectsUnknownPaymentMethod(t *testing.T) {
	body, _ := json.Marshal(dto.CreateOrderRequest{
		Items:           []dto.OrderItemRequest{{ProductID: 1, Quantity: 2}},
		ShippingAddress: dto.ShippingAddress{Street: "Brivibas 1", City: "Riga", Zip: "LV-1010", Country: "LV"},
		PaymentMethod:   "barter",
	})
	resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(testhelpers.FacadeStub{}).Create, asUser(7), body, jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestOrderHandlerGetForeign(t *testing.T) {
	stub := testhelpers.FacadeStub{OrderFn: func(context.Context, int64, int64) (*model.Order, error) {
		return nil, domainErrors.ErrAccessDenied
	}}
	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/5", NewOrderHandler(stub).Get, asUser(1), nil, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}

func TestOrderHandlerCancelInvalidState(t *testing.T) {
	stub := testhelpers.FacadeStub{CancelOrderFn: func(context.Context, int64, int64) (*model.Order, error) {
		return nil, domainErrors.ErrInvalidState
	}}
	resp := performRequest(t, http.MethodPut, "/orders/:id/cancel", "/orders/5/cancel", NewOrderHandler(stub).Cancel, asUser(1), nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestOrderHandlerUpdateStatus(t *testing.T) {
	stub := testhelpers.FacadeStub{UpdateStatusFn: func(_ context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
		if id != 5 || status != model.OrderStatusShipped {
			t.Fatalf("unexpected args: %d %s", id, status)
		}
		return &model.Order{ID: id, Status: status}, nil
	}}
	body, _ := json.Marshal(dto.UpdateOrderStatusRequest{Status: "shipped"})
	resp := performRequest(t, http.MethodPut, "/orders/:id/status", "/orders/5/status", NewOrderHandler(stub).UpdateStatus, asUser(1), body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestPaymentHandlerCreateIntent(t *testing.T) {
	stub := testhelpers.FacadeStub{CreateIntentFn: func(_ context.Context, orderID, requesterID int64) (*model.PaymentIntent, error) {
		if orderID != 12 || requesterID != 7 {
			t.Fatalf("unexpected args: %d %d", orderID, requesterID)
		}
		return &model.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret", Amount: 4000, Status: "requires_payment_method"}, nil
	}}
	resp := performRequest(t, http.MethodPost, "/orders/:id/payment-intent", "/orders/12/payment-intent", NewPaymentHandler(stub).CreateIntent, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var intent dto.PaymentIntentResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &intent); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if intent.ClientSecret != "pi_1_secret" || intent.Amount != 4000 {
		t.Fatalf("unexpected intent: %+v", intent)
	}
}

func TestPaymentHandlerConfirmNotSucceeded(t *testing.T) {
	stub := testhelpers.FacadeStub{ConfirmPaymentFn: func(context.Context, int64, int64, string) (*model.Order, string, error) {
		return nil, "requires_payment_method", nil
	}}
	body, _ := json.Marshal(dto.ConfirmPaymentRequest{PaymentIntentID: "pi_1"})
	resp := performRequest(t, http.MethodPost, "/orders/:id/confirm-payment", "/orders/12/confirm-payment", NewPaymentHandler(stub).Confirm, asUser(7), body, jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	var confirm dto.ConfirmPaymentResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &confirm); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if confirm.Status != "requires_payment_method" || confirm.Order != nil {
		t.Fatalf("unexpected response: %+v", confirm)
	}
}

func TestPaymentHandlerWebhookForwardsRawBody(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)
	stub := testhelpers.FacadeStub{HandleWebhookFn: func(_ context.Context, body []byte, header string) error {
		if !bytes.Equal(body, payload) {
			t.Fatalf("payload altered before verification: %s", body)
		}
		if header != "t=1,v1=aa" {
			t.Fatalf("unexpected signature header %q", header)
		}
		return nil
	}}
	resp := performRequest(t, http.MethodPost, "/webhook", "/webhook", NewPaymentHandler(stub).Webhook, nil, payload, map[string]string{SignatureHeader: "t=1,v1=aa"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestPaymentHandlerWebhookBadSignature(t *testing.T) {
	stub := testhelpers.FacadeStub{HandleWebhookFn: func(context.Context, []byte, string) error {
		return domainErrors.ErrSignatureInvalid
	}}
	resp := performRequest(t, http.MethodPost, "/webhook", "/webhook", NewPaymentHandler(stub).Webhook, nil, []byte(`{}`), nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestPaymentHandlerRefund(t *testing.T) {
	stub := testhelpers.FacadeStub{RefundFn: func(_ context.Context, intentID string, amount *float64) (*model.Refund, error) {
		if intentID != "pi_1" || amount != nil {
			t.Fatalf("unexpected args: %s %v", intentID, amount)
		}
		return &model.Refund{ID: "re_1", Status: "succeeded", Amount: 4000}, nil
	}}
	body, _ := json.Marshal(dto.RefundRequest{PaymentIntentID: "pi_1"})
	resp := performRequest(t, http.MethodPost, "/refund", "/refund", NewPaymentHandler(stub).Refund, asUser(1), body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestUserHandlerChangePasswordWrongCurrent(t *testing.T) {
	stub := testhelpers.FacadeStub{ChangePasswordFn: func(context.Context, int64, string, string) error {
		return domainErrors.ErrInvalidCredentials
	}}
	body, _ := json.Marshal(dto.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "newpass1"})
	resp := performRequest(t, http.MethodPut, "/password", "/password", NewUserHandler(stub).ChangePassword, asUser(1), body, jsonHeaders())
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestUserHandlerAddAddress(t *testing.T) {
	stub := testhelpers.FacadeStub{AddAddressFn: func(_ context.Context, userID int64, addr model.UserAddress) ([]model.UserAddress, error) {
		if userID != 7 || addr.City != "Riga" {
			t.Fatalf("unexpected args: %d %+v", userID, addr)
		}
		addr.ID = 1
		addr.IsDefault = true
		return []model.UserAddress{addr}, nil
	}}
	body, _ := json.Marshal(dto.AddressRequest{Street: "Brivibas 1", City: "Riga", Zip: "LV-1010", Country: "LV"})
	resp := performRequest(t, http.MethodPost, "/addresses", "/addresses", NewUserHandler(stub).AddAddress, asUser(7), body, jsonHeaders())
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	var addresses []dto.AddressResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &addresses); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(addresses) != 1 || !addresses[0].IsDefault {
		t.Fatalf("first address must become default: %+v", addresses)
	}
}
