package model

import "time"

// PaymentIntent mirrors the processor's handle for collecting a payment.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       int64
	OrderID      string
}

// IntentSucceeded reports whether the processor considers the intent collected.
func (p PaymentIntent) IntentSucceeded() bool {
	return p.Status == "succeeded"
}

// CheckoutSession mirrors a processor-hosted checkout page.
type CheckoutSession struct {
	ID                string
	URL               string
	PaymentIntentID   string
	ClientReferenceID string
	PaymentStatus     string
	AmountTotal       int64
}

// Refund mirrors the processor's refund object.
type Refund struct {
	ID     string
	Status string
	Amount int64
}

// WebhookFailure is a durable record of a processor event that could not be
// reconciled into the order ledger. The retry worker drains these.
type WebhookFailure struct {
	ID        int64
	EventID   string
	EventType string
	OrderID   int64
	IntentID  string
	LastError string
	Attempts  int
	Resolved  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
