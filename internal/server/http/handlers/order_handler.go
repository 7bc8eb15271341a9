package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velomart/storefront/internal/domain/model"
	"github.com/velomart/storefront/internal/server/http/dto"
	"github.com/velomart/storefront/internal/server/http/validation"
)

// OrderHandler manages order endpoints for customers and admins.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	identity := CurrentIdentity(c)

	var req dto.CreateOrderRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), identity.UserID, req.CartItems(), req.ShippingAddress.ToAddress(), req.PaymentMethod)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToOrderResponse(*order))
}

// ListMine handles GET /api/orders/my-orders.
func (h *OrderHandler) ListMine(c *gin.Context) {
	identity := CurrentIdentity(c)

	orders, err := h.facade.MyOrders(c.Request.Context(), identity.UserID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, dto.ToOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	identity := CurrentIdentity(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.facade.Order(c.Request.Context(), id, identity.UserID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(*order))
}

// Cancel handles PUT /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	identity := CurrentIdentity(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.facade.CancelOrder(c.Request.Context(), id, identity.UserID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(*order))
}

// List handles GET /api/orders. Admin only.
func (h *OrderHandler) List(c *gin.Context) {
	filter := model.OrderFilter{
		Status: model.OrderStatus(c.Query("status")),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
	}

	page, err := h.facade.AllOrders(c.Request.Context(), filter)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderPageResponse(page))
}

// UpdateStatus handles PUT /api/orders/:id/status. Admin only.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), id, model.OrderStatus(req.Status))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(*order))
}

// Delete handles DELETE /api/orders/:id. Admin only.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.facade.DeleteOrder(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
