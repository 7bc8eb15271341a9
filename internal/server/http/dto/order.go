package dto

import (
	"time"

	"github.com/velomart/storefront/internal/domain/model"
	"github.com/velomart/storefront/internal/usecase"
)

// OrderItemRequest is one requested cart line.
type OrderItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int32 `json:"quantity" validate:"required,gt=0"`
}

// ShippingAddress is the structured delivery destination of an order.
type ShippingAddress struct {
	Name    string `json:"name"`
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state"`
	Zip     string `json:"zip" validate:"required"`
	Country string `json:"country" validate:"required"`
}

// CreateOrderRequest describes a checkout payload.
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	ShippingAddress ShippingAddress    `json:"shippingAddress" validate:"required"`
	PaymentMethod   string             `json:"paymentMethod" validate:"required,oneof=card cash_on_delivery"`
}

// UpdateOrderStatusRequest moves an order along the fulfillment lifecycle.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderItemResponse is one recorded order line with display projection.
type OrderItemResponse struct {
	ProductID    int64   `json:"productId"`
	ProductName  string  `json:"productName,omitempty"`
	ProductImage string  `json:"productImage,omitempty"`
	Quantity     int32   `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
}

// OrderResponse is the public projection of an order.
type OrderResponse struct {
	ID              int64               `json:"id"`
	UserID          int64               `json:"userId"`
	Items           []OrderItemResponse `json:"items"`
	TotalAmount     float64             `json:"totalAmount"`
	ShippingAddress ShippingAddress     `json:"shippingAddress"`
	PaymentMethod   string              `json:"paymentMethod"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"paymentStatus"`
	PaymentIntentID string              `json:"paymentIntentId,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// OrderPageResponse is one page of the admin order listing.
type OrderPageResponse struct {
	Orders     []OrderResponse `json:"orders"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
}

// CartItems converts requested lines for the checkout use case.
func (r CreateOrderRequest) CartItems() []usecase.CartItem {
	items := make([]usecase.CartItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, usecase.CartItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return items
}

// ToAddress converts the payload address to the domain model.
func (a ShippingAddress) ToAddress() model.Address {
	return model.Address{
		Name:    a.Name,
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		Zip:     a.Zip,
		Country: a.Country,
	}
}

// ToOrderResponse converts a domain order to its projection.
func ToOrderResponse(o model.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
		})
	}

	resp := OrderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		Items:       items,
		TotalAmount: o.TotalAmount,
		ShippingAddress: ShippingAddress{
			Name:    o.ShippingAddress.Name,
			Street:  o.ShippingAddress.Street,
			City:    o.ShippingAddress.City,
			State:   o.ShippingAddress.State,
			Zip:     o.ShippingAddress.Zip,
			Country: o.ShippingAddress.Country,
		},
		PaymentMethod: o.PaymentMethod,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	if o.PaymentIntentID != nil {
		resp.PaymentIntentID = *o.PaymentIntentID
	}
	return resp
}

// ToOrderPageResponse converts an admin listing page.
func ToOrderPageResponse(page *model.OrderPage) OrderPageResponse {
	orders := make([]OrderResponse, 0, len(page.Orders))
	for _, o := range page.Orders {
		orders = append(orders, ToOrderResponse(o))
	}
	return OrderPageResponse{
		Orders:     orders,
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	}
}
