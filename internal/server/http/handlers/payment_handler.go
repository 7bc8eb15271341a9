package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velomart/storefront/internal/server/http/dto"
	"github.com/velomart/storefront/internal/server/http/validation"
	"github.com/velomart/storefront/internal/usecase"
)

// SignatureHeader carries the processor's webhook signature.
const SignatureHeader = "Stripe-Signature"

// PaymentHandler manages payment processor endpoints.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// CreateIntent handles POST /api/orders/:id/payment-intent.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	identity := CurrentIdentity(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	intent, err := h.facade.CreatePaymentIntent(c.Request.Context(), id, identity.UserID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentIntentResponse(intent))
}

// Confirm handles POST /api/orders/:id/confirm-payment.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	identity := CurrentIdentity(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ConfirmPaymentRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return
	}

	order, status, err := h.facade.ConfirmPayment(c.Request.Context(), id, identity.UserID, req.PaymentIntentID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	resp := dto.ConfirmPaymentResponse{Status: status}
	if order != nil {
		converted := dto.ToOrderResponse(*order)
		resp.Order = &converted
		c.JSON(http.StatusOK, resp)
		return
	}
	c.JSON(http.StatusBadRequest, resp)
}

// CreateSession handles POST /api/payments/checkout-session.
func (h *PaymentHandler) CreateSession(c *gin.Context) {
	identity := CurrentIdentity(c)

	var req dto.CheckoutSessionRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return
	}

	items := make([]usecase.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.CartItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	session, err := h.facade.CreateCheckoutSession(c.Request.Context(), identity.UserID, req.OrderID, items)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCheckoutSessionResponse(session))
}

// GetSession handles GET /api/payments/checkout-session/:id.
func (h *PaymentHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid id"})
		return
	}

	session, err := h.facade.CheckoutSession(c.Request.Context(), sessionID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCheckoutSessionResponse(session))
}

// Webhook handles POST /api/payments/webhook. The raw body is required for
// signature verification, so nothing may parse it first.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "unreadable payload"})
		return
	}

	if err := h.facade.HandleWebhook(c.Request.Context(), payload, c.GetHeader(SignatureHeader)); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// Refund handles POST /api/payments/refund. Admin only.
func (h *PaymentHandler) Refund(c *gin.Context) {
	var req dto.RefundRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return
	}

	refund, err := h.facade.Refund(c.Request.Context(), req.PaymentIntentID, req.Amount)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RefundResponse{ID: refund.ID, Status: refund.Status, Amount: refund.Amount})
}

// Methods handles GET /api/payments/methods.
func (h *PaymentHandler) Methods(c *gin.Context) {
	methods, err := h.facade.PaymentMethods(c.Request.Context(), c.Query("customer"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentMethodResponses(methods))
}
