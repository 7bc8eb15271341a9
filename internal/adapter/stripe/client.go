package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/velomart/storefront/internal/domain/model"
)

// MetadataOrderSentinel marks payments with no associated order. Webhook
// reconciliation skips events carrying it.
const MetadataOrderSentinel = "direct-payment"

// APIError carries a non-success response from the payment processor.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("processor error (%d %s): %s", e.StatusCode, e.Type, e.Message)
}

// Client exposes operations against the payment processor.
type Client interface {
	CreatePaymentIntent(ctx context.Context, req CreateIntentRequest) (*model.PaymentIntent, error)
	RetrievePaymentIntent(ctx context.Context, intentID string) (*model.PaymentIntent, error)
	CreateCheckoutSession(ctx context.Context, req CreateSessionRequest) (*model.CheckoutSession, error)
	RetrieveCheckoutSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error)
	CreateRefund(ctx context.Context, intentID string, amount *int64) (*model.Refund, error)
	ListPaymentMethods(ctx context.Context, customerID string) ([]PaymentMethod, error)
	ParseEvent(payload []byte, header string) (*Event, error)
	VerifySignature(payload []byte, header string) error
}

// CreateIntentRequest describes a payment intent to open.
type CreateIntentRequest struct {
	Amount   int64
	Currency string
	OrderID  string
	UserID   string
}

// SessionLineItem is one priced line of a hosted checkout session.
type SessionLineItem struct {
	Name        string
	Description string
	Image       string
	UnitAmount  int64
	Quantity    int32
}

// CreateSessionRequest describes a hosted checkout session.
type CreateSessionRequest struct {
	Items         []SessionLineItem
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
	OrderID       string
	UserID        string
}

// PaymentMethod is a stored card usable for payment.
type PaymentMethod struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Brand    string `json:"brand"`
	Last4    string `json:"last4"`
	ExpMonth int    `json:"exp_month"`
	ExpYear  int    `json:"exp_year"`
}

// HTTPClient implements Client via the processor's form-encoded REST API.
type HTTPClient struct {
	baseURL       *url.URL
	apiKey        string
	webhookSecret string
	httpClient    *http.Client
	logger        *slog.Logger
}

// NewHTTPClient creates the processor client with default timeout.
func NewHTTPClient(baseURL, apiKey, webhookSecret string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse processor url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("processor url must be absolute")
	}
	return &HTTPClient{
		baseURL:       parsed,
		apiKey:        apiKey,
		webhookSecret: webhookSecret,
		logger:        logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// intentPayload mirrors the processor's payment intent object.
type intentPayload struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret"`
	Status       string            `json:"status"`
	Amount       int64             `json:"amount"`
	Metadata     map[string]string `json:"metadata"`
}

func (p intentPayload) toModel() *model.PaymentIntent {
	return &model.PaymentIntent{
		ID:           p.ID,
		ClientSecret: p.ClientSecret,
		Status:       p.Status,
		Amount:       p.Amount,
		OrderID:      p.Metadata["orderId"],
	}
}

// sessionPayload mirrors the processor's checkout session object.
type sessionPayload struct {
	ID                string `json:"id"`
	URL               string `json:"url"`
	PaymentIntent     string `json:"payment_intent"`
	ClientReferenceID string `json:"client_reference_id"`
	PaymentStatus     string `json:"payment_status"`
	AmountTotal       int64  `json:"amount_total"`
}

func (p sessionPayload) toModel() *model.CheckoutSession {
	return &model.CheckoutSession{
		ID:                p.ID,
		URL:               p.URL,
		PaymentIntentID:   p.PaymentIntent,
		ClientReferenceID: p.ClientReferenceID,
		PaymentStatus:     p.PaymentStatus,
		AmountTotal:       p.AmountTotal,
	}
}

func (c *HTTPClient) CreatePaymentIntent(ctx context.Context, req CreateIntentRequest) (*model.PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.Amount, 10))
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")
	orderID := req.OrderID
	if orderID == "" {
		orderID = MetadataOrderSentinel
	}
	form.Set("metadata[orderId]", orderID)
	if req.UserID != "" {
		form.Set("metadata[userId]", req.UserID)
	}

	var payload intentPayload
	if err := c.post(ctx, "/v1/payment_intents", form, &payload); err != nil {
		return nil, err
	}
	return payload.toModel(), nil
}

func (c *HTTPClient) RetrievePaymentIntent(ctx context.Context, intentID string) (*model.PaymentIntent, error) {
	var payload intentPayload
	if err := c.get(ctx, "/v1/payment_intents/"+url.PathEscape(intentID), nil, &payload); err != nil {
		return nil, err
	}
	return payload.toModel(), nil
}

func (c *HTTPClient) CreateCheckoutSession(ctx context.Context, req CreateSessionRequest) (*model.CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	if req.CustomerEmail != "" {
		form.Set("customer_email", req.CustomerEmail)
	}
	if req.OrderID != "" {
		form.Set("client_reference_id", req.OrderID)
		form.Set("metadata[orderId]", req.OrderID)
	}
	if req.UserID != "" {
		form.Set("metadata[userId]", req.UserID)
	}

	for i, item := range req.Items {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[quantity]", strconv.FormatInt(int64(item.Quantity), 10))
		form.Set(prefix+"[price_data][currency]", "usd")
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		if item.Description != "" {
			form.Set(prefix+"[price_data][product_data][description]", truncate(item.Description, 100))
		}
		if item.Image != "" {
			form.Set(prefix+"[price_data][product_data][images][0]", item.Image)
		}
	}

	var payload sessionPayload
	if err := c.post(ctx, "/v1/checkout/sessions", form, &payload); err != nil {
		return nil, err
	}
	return payload.toModel(), nil
}

func (c *HTTPClient) RetrieveCheckoutSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	query := url.Values{}
	query.Set("expand[0]", "payment_intent")
	var payload sessionPayload
	if err := c.get(ctx, "/v1/checkout/sessions/"+url.PathEscape(sessionID), query, &payload); err != nil {
		return nil, err
	}
	return payload.toModel(), nil
}

func (c *HTTPClient) CreateRefund(ctx context.Context, intentID string, amount *int64) (*model.Refund, error) {
	form := url.Values{}
	form.Set("payment_intent", intentID)
	if amount != nil {
		form.Set("amount", strconv.FormatInt(*amount, 10))
	}

	var payload struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Amount int64  `json:"amount"`
	}
	if err := c.post(ctx, "/v1/refunds", form, &payload); err != nil {
		return nil, err
	}
	return &model.Refund{ID: payload.ID, Status: payload.Status, Amount: payload.Amount}, nil
}

func (c *HTTPClient) ListPaymentMethods(ctx context.Context, customerID string) ([]PaymentMethod, error) {
	query := url.Values{}
	query.Set("customer", customerID)
	query.Set("type", "card")

	var payload struct {
		Data []struct {
			ID   string `json:"id"`
			Type string `json:"type"`
			Card struct {
				Brand    string `json:"brand"`
				Last4    string `json:"last4"`
				ExpMonth int    `json:"exp_month"`
				ExpYear  int    `json:"exp_year"`
			} `json:"card"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/v1/payment_methods", query, &payload); err != nil {
		return nil, err
	}

	methods := make([]PaymentMethod, 0, len(payload.Data))
	for _, pm := range payload.Data {
		methods = append(methods, PaymentMethod{
			ID:       pm.ID,
			Type:     pm.Type,
			Brand:    pm.Card.Brand,
			Last4:    pm.Card.Last4,
			ExpMonth: pm.Card.ExpMonth,
			ExpYear:  pm.Card.ExpYear,
		})
	}
	return methods, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Idempotency-Key", uuid.NewString())
	return c.do(req, out)
}

func (c *HTTPClient) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.endpoint(path)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *HTTPClient) endpoint(path string) string {
	endpoint := *c.baseURL
	endpoint.Path = strings.TrimSuffix(endpoint.Path, "/") + path
	return endpoint.String()
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var failure struct {
			Error struct {
				Type    string `json:"type"`
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.Unmarshal(body, &failure)
		c.logger.Error("processor request failed",
			slog.String("path", req.URL.Path),
			slog.Int("status", resp.StatusCode),
			slog.String("type", failure.Error.Type),
		)
		return &APIError{StatusCode: resp.StatusCode, Type: failure.Error.Type, Message: failure.Error.Message}
	}

	return json.Unmarshal(body, out)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
