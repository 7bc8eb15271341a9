package model

import "time"

// OrderStatus describes fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentStatus describes payment collection lifecycle.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusShipped},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// ValidOrderStatus reports whether s is a known fulfillment status.
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
// Delivered and cancelled are terminal.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Address is a structured shipping or billing destination.
type Address struct {
	Name    string
	Street  string
	City    string
	State   string
	Zip     string
	Country string
}

// OrderItem is one line of an order. UnitPrice is copied from the catalog
// at checkout time; later price edits never change a recorded order.
type OrderItem struct {
	ProductID int64
	Quantity  int32
	UnitPrice float64

	// Display projection resolved on read, not stored with the line.
	ProductName  string
	ProductImage string
}

// Order is the authoritative record of a purchase.
type Order struct {
	ID              int64
	UserID          int64
	Items           []OrderItem
	TotalAmount     float64
	ShippingAddress Address
	PaymentMethod   string
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	PaymentIntentID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Status OrderStatus
	Page   int
	Limit  int
}

// OrderPage is one page of an admin listing.
type OrderPage struct {
	Orders     []Order
	Total      int64
	Page       int
	TotalPages int
}
