package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/velomart/storefront/internal/adapter/stripe"
	"github.com/velomart/storefront/internal/config"
	domainErrors "github.com/velomart/storefront/internal/domain/errors"
	"github.com/velomart/storefront/internal/domain/model"
	"github.com/velomart/storefront/internal/domain/repository"
)

// PaymentUseCase drives the payment intent workflow: opening intents and
// hosted sessions, reconciling processor webhooks into the ledger, refunds.
type PaymentUseCase struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	users     repository.UserRepository
	failures  repository.WebhookFailureRepository
	processor stripe.Client
	clientURL string
	logger    *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	failures repository.WebhookFailureRepository,
	processor stripe.Client,
	cfg *config.Config,
	logger *slog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		orders:    orders,
		products:  products,
		users:     users,
		failures:  failures,
		processor: processor,
		clientURL: cfg.ClientURL,
		logger:    logger,
	}
}

// CreateIntent opens a payment intent for the order total and stores the
// intent reference on the order. Amounts are converted to cents once, here.
func (u *PaymentUseCase) CreateIntent(ctx context.Context, orderID, requesterID int64) (*model.PaymentIntent, error) {
	order, err := u.ownedOrder(ctx, orderID, requesterID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == model.PaymentStatusCompleted {
		return nil, domainErrors.ErrInvalidState
	}

	intent, err := u.processor.CreatePaymentIntent(ctx, stripe.CreateIntentRequest{
		Amount:  toMinorUnits(order.TotalAmount),
		OrderID: strconv.FormatInt(orderID, 10),
		UserID:  strconv.FormatInt(requesterID, 10),
	})
	if err != nil {
		return nil, err
	}

	if err := u.orders.SetPaymentIntent(ctx, orderID, intent.ID); err != nil {
		return nil, err
	}

	u.logger.Info("payment intent created",
		slog.Int64("order_id", orderID),
		slog.String("intent_id", intent.ID),
		slog.Int64("amount", intent.Amount),
	)
	return intent, nil
}

// Confirm checks the intent's status with the processor. When the processor
// reports success the order is marked paid and returned; otherwise the
// processor status comes back with a nil order and the ledger stays untouched.
func (u *PaymentUseCase) Confirm(ctx context.Context, orderID, requesterID int64, intentID string) (*model.Order, string, error) {
	if _, err := u.ownedOrder(ctx, orderID, requesterID); err != nil {
		return nil, "", err
	}

	intent, err := u.processor.RetrievePaymentIntent(ctx, intentID)
	if err != nil {
		return nil, "", err
	}
	if !intent.IntentSucceeded() {
		return nil, intent.Status, nil
	}

	if err := u.orders.MarkPaid(ctx, orderID, intent.ID); err != nil {
		return nil, "", err
	}
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	return order, intent.Status, nil
}

// CreateSession opens a hosted checkout page for the given cart lines.
// Prices come from the catalog, never from the caller.
func (u *PaymentUseCase) CreateSession(ctx context.Context, userID, orderID int64, items []CartItem) (*model.CheckoutSession, error) {
	if len(items) == 0 {
		return nil, domainErrors.ErrValidation
	}

	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]stripe.SessionLineItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, domainErrors.ErrValidation
		}
		product, err := u.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		line := stripe.SessionLineItem{
			Name:        product.Name,
			Description: product.Description,
			UnitAmount:  toMinorUnits(product.Price),
			Quantity:    item.Quantity,
		}
		if len(product.Images) > 0 {
			line.Image = product.Images[0]
		}
		lines = append(lines, line)
	}

	req := stripe.CreateSessionRequest{
		Items:         lines,
		SuccessURL:    u.clientURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     u.clientURL + "/checkout/cancel",
		CustomerEmail: usr.Email,
		UserID:        strconv.FormatInt(userID, 10),
	}
	if orderID > 0 {
		req.OrderID = strconv.FormatInt(orderID, 10)
	}

	session, err := u.processor.CreateCheckoutSession(ctx, req)
	if err != nil {
		return nil, err
	}

	u.logger.Info("checkout session created",
		slog.String("session_id", session.ID),
		slog.Int64("user_id", userID),
	)
	return session, nil
}

// RetrieveSession proxies a session lookup to the processor.
func (u *PaymentUseCase) RetrieveSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	return u.processor.RetrieveCheckoutSession(ctx, sessionID)
}

// HandleWebhook verifies and applies one processor notification. A bad
// signature is rejected so the processor retries; a reconciliation failure is
// recorded durably and acknowledged, the retry worker picks it up later.
func (u *PaymentUseCase) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := u.processor.ParseEvent(payload, sigHeader)
	if err != nil {
		return err
	}

	orderID, intentID, err := eventReferences(event)
	if err != nil {
		u.logger.Error("webhook event undecodable",
			slog.String("event_id", event.ID),
			slog.String("type", event.Type),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if orderID == 0 {
		u.logger.Info("webhook event carries no order, skipping",
			slog.String("event_id", event.ID),
			slog.String("type", event.Type),
		)
		return nil
	}

	if err := u.Reconcile(ctx, event.Type, orderID, intentID); err != nil {
		return u.recordFailure(ctx, event, orderID, intentID, err)
	}
	return nil
}

// Reconcile applies a processor event's outcome to the order ledger. The
// underlying updates are plain sets, so redelivered events converge.
func (u *PaymentUseCase) Reconcile(ctx context.Context, eventType string, orderID int64, intentID string) error {
	switch eventType {
	case stripe.EventCheckoutSessionCompleted, stripe.EventPaymentIntentSucceeded:
		return u.orders.MarkPaid(ctx, orderID, intentID)
	case stripe.EventPaymentIntentFailed:
		return u.orders.MarkPaymentFailed(ctx, orderID)
	default:
		u.logger.Info("ignoring webhook event type", slog.String("type", eventType))
		return nil
	}
}

// PendingWebhookRetries returns a batch of unresolved reconciliation failures.
func (u *PaymentUseCase) PendingWebhookRetries(ctx context.Context, limit int) ([]model.WebhookFailure, error) {
	return u.failures.SelectBatchForRetry(ctx, limit)
}

// RetryWebhookFailure re-applies a recorded event. Success resolves the
// record; another failure bumps the attempt counter and keeps it queued.
func (u *PaymentUseCase) RetryWebhookFailure(ctx context.Context, failure model.WebhookFailure) error {
	if err := u.Reconcile(ctx, failure.EventType, failure.OrderID, failure.IntentID); err != nil {
		if markErr := u.failures.MarkAttempt(ctx, failure.ID, err.Error()); markErr != nil {
			u.logger.Error("webhook retry attempt not recorded",
				slog.Int64("failure_id", failure.ID),
				slog.String("error", markErr.Error()),
			)
		}
		return err
	}

	if err := u.failures.MarkResolved(ctx, failure.ID); err != nil {
		return err
	}
	u.logger.Info("webhook failure resolved",
		slog.Int64("failure_id", failure.ID),
		slog.String("event_id", failure.EventID),
	)
	return nil
}

// Refund refunds a collected payment, in part when amount is given. The order
// referencing the intent is marked refunded and cancelled; stock is not
// restored, returned goods come back through catalog adjustments.
func (u *PaymentUseCase) Refund(ctx context.Context, intentID string, amount *float64) (*model.Refund, error) {
	var minor *int64
	if amount != nil {
		cents := toMinorUnits(*amount)
		minor = &cents
	}

	refund, err := u.processor.CreateRefund(ctx, intentID, minor)
	if err != nil {
		return nil, err
	}

	if err := u.orders.MarkRefunded(ctx, intentID); err != nil {
		if !errors.Is(err, domainErrors.ErrNotFound) {
			return nil, err
		}
		u.logger.Warn("refund issued for intent with no ledger order",
			slog.String("intent_id", intentID),
		)
	}

	u.logger.Info("refund issued",
		slog.String("intent_id", intentID),
		slog.String("refund_id", refund.ID),
		slog.Int64("amount", refund.Amount),
	)
	return refund, nil
}

// ListPaymentMethods returns the stored cards for a processor customer.
func (u *PaymentUseCase) ListPaymentMethods(ctx context.Context, customerID string) ([]stripe.PaymentMethod, error) {
	if customerID == "" {
		return nil, domainErrors.ErrValidation
	}
	return u.processor.ListPaymentMethods(ctx, customerID)
}

func (u *PaymentUseCase) ownedOrder(ctx context.Context, orderID, requesterID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != requesterID {
		return nil, domainErrors.ErrAccessDenied
	}
	return order, nil
}

func (u *PaymentUseCase) recordFailure(ctx context.Context, event *stripe.Event, orderID int64, intentID string, cause error) error {
	failure := &model.WebhookFailure{
		EventID:   event.ID,
		EventType: event.Type,
		OrderID:   orderID,
		IntentID:  intentID,
		LastError: cause.Error(),
	}
	if err := u.failures.Record(ctx, failure); err != nil {
		u.logger.Error("webhook failure not recorded",
			slog.String("event_id", event.ID),
			slog.String("error", err.Error()),
		)
		return cause
	}

	u.logger.Warn("webhook reconciliation deferred to retry worker",
		slog.String("event_id", event.ID),
		slog.String("type", event.Type),
		slog.Int64("order_id", orderID),
		slog.String("error", cause.Error()),
	)
	return nil
}

// eventReferences pulls the order and intent references out of an event.
// A zero order id means the event has nothing to reconcile.
func eventReferences(event *stripe.Event) (int64, string, error) {
	switch event.Type {
	case stripe.EventCheckoutSessionCompleted:
		session, err := event.SessionObject()
		if err != nil {
			return 0, "", err
		}
		if session.ClientReferenceID == "" {
			return 0, "", nil
		}
		orderID, err := strconv.ParseInt(session.ClientReferenceID, 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("parse client reference %q: %w", session.ClientReferenceID, err)
		}
		return orderID, session.PaymentIntent, nil

	case stripe.EventPaymentIntentSucceeded, stripe.EventPaymentIntentFailed:
		ref, err := event.IntentOrderID()
		if err != nil {
			return 0, "", err
		}
		if ref == "" {
			return 0, "", nil
		}
		orderID, err := strconv.ParseInt(ref, 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("parse order reference %q: %w", ref, err)
		}
		intent, err := event.IntentObject()
		if err != nil {
			return 0, "", err
		}
		return orderID, intent.ID, nil
	}
	return 0, "", nil
}
