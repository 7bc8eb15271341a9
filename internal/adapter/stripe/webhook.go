package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/velomart/storefront/internal/domain/errors"
)

// Webhook event kinds the reconciler understands.
const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventPaymentIntentSucceeded   = "payment_intent.succeeded"
	EventPaymentIntentFailed      = "payment_intent.payment_failed"
)

// signatureTolerance bounds how stale a signed webhook may be.
const signatureTolerance = 5 * time.Minute

// Event is a processor notification decoded from a webhook body.
type Event struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Object json.RawMessage
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Data struct {
			Object json.RawMessage `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.ID = raw.ID
	e.Type = raw.Type
	e.Object = raw.Data.Object
	return nil
}

// IntentObject decodes the event payload as a payment intent.
func (e *Event) IntentObject() (intentPayload, error) {
	var payload intentPayload
	err := json.Unmarshal(e.Object, &payload)
	return payload, err
}

// SessionObject decodes the event payload as a checkout session.
func (e *Event) SessionObject() (sessionPayload, error) {
	var payload sessionPayload
	err := json.Unmarshal(e.Object, &payload)
	return payload, err
}

// IntentOrderID returns the correlation id from intent metadata, empty when
// the sentinel marks a payment with no order.
func (e *Event) IntentOrderID() (string, error) {
	payload, err := e.IntentObject()
	if err != nil {
		return "", err
	}
	orderID := payload.Metadata["orderId"]
	if orderID == MetadataOrderSentinel {
		return "", nil
	}
	return orderID, nil
}

// ParseEvent verifies the signature header against the raw body and decodes
// the event. The body must be the unparsed request payload.
func (c *HTTPClient) ParseEvent(payload []byte, header string) (*Event, error) {
	if err := c.VerifySignature(payload, header); err != nil {
		return nil, err
	}
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("decode webhook event: %w", err)
	}
	return &event, nil
}

// VerifySignature checks the t=...,v1=... signature header: HMAC-SHA256 over
// "<timestamp>.<payload>" with the shared webhook secret.
func (c *HTTPClient) VerifySignature(payload []byte, header string) error {
	return verifySignature(payload, header, c.webhookSecret, time.Now())
}

func verifySignature(payload []byte, header, secret string, now time.Time) error {
	if header == "" {
		return domainErrors.ErrSignatureInvalid
	}

	var (
		timestamp  int64
		signatures [][]byte
	)
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return domainErrors.ErrSignatureInvalid
			}
			timestamp = ts
		case "v1":
			sig, err := hex.DecodeString(value)
			if err != nil {
				continue
			}
			signatures = append(signatures, sig)
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return domainErrors.ErrSignatureInvalid
	}

	age := now.Sub(time.Unix(timestamp, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return domainErrors.ErrSignatureInvalid
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, sig := range signatures {
		if hmac.Equal(expected, sig) {
			return nil
		}
	}
	return domainErrors.ErrSignatureInvalid
}

// SignPayload produces a valid signature header for the payload. Used by
// tests and local tooling to emulate processor deliveries.
func SignPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(at.Unix(), 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}
