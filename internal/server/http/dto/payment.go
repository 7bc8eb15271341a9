package dto

import (
	"github.com/velomart/storefront/internal/adapter/stripe"
	"github.com/velomart/storefront/internal/domain/model"
)

// PaymentIntentResponse returns the client secret used to collect payment.
type PaymentIntentResponse struct {
	IntentID     string `json:"paymentIntentId"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Status       string `json:"status"`
}

// ConfirmPaymentRequest references the intent to verify with the processor.
type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId" validate:"required"`
}

// ConfirmPaymentResponse reports the processor's verdict. Order is present
// only when the payment was collected.
type ConfirmPaymentResponse struct {
	Status string         `json:"status"`
	Order  *OrderResponse `json:"order,omitempty"`
}

// CheckoutSessionRequest opens a hosted payment page for the given lines.
type CheckoutSessionRequest struct {
	Items   []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	OrderID int64              `json:"orderId" validate:"gte=0"`
}

// CheckoutSessionResponse is the hosted page reference.
type CheckoutSessionResponse struct {
	ID            string `json:"id"`
	URL           string `json:"url,omitempty"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
	AmountTotal   int64  `json:"amountTotal,omitempty"`
}

// RefundRequest describes an operator-issued refund.
type RefundRequest struct {
	PaymentIntentID string   `json:"paymentIntentId" validate:"required"`
	Amount          *float64 `json:"amount" validate:"omitempty,gt=0"`
}

// RefundResponse is the processor's refund record.
type RefundResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount int64  `json:"amount"`
}

// PaymentMethodResponse is one stored card.
type PaymentMethodResponse struct {
	ID       string `json:"id"`
	Brand    string `json:"brand"`
	Last4    string `json:"last4"`
	ExpMonth int    `json:"expMonth"`
	ExpYear  int    `json:"expYear"`
}

// ToPaymentIntentResponse converts a processor intent.
func ToPaymentIntentResponse(intent *model.PaymentIntent) PaymentIntentResponse {
	return PaymentIntentResponse{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Status:       intent.Status,
	}
}

// ToCheckoutSessionResponse converts a processor session.
func ToCheckoutSessionResponse(session *model.CheckoutSession) CheckoutSessionResponse {
	return CheckoutSessionResponse{
		ID:            session.ID,
		URL:           session.URL,
		PaymentStatus: session.PaymentStatus,
		AmountTotal:   session.AmountTotal,
	}
}

// ToPaymentMethodResponses converts stored cards.
func ToPaymentMethodResponses(methods []stripe.PaymentMethod) []PaymentMethodResponse {
	out := make([]PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		out = append(out, PaymentMethodResponse{
			ID:       m.ID,
			Brand:    m.Brand,
			Last4:    m.Last4,
			ExpMonth: m.ExpMonth,
			ExpYear:  m.ExpYear,
		})
	}
	return out
}
