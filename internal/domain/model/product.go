package model

import "time"

// Rating aggregates review scores for a product.
type Rating struct {
	Average float64
	Count   int
}

// Product describes a catalog entry. Stock is authoritative only under
// the conditional decrement performed by the storage layer.
type Product struct {
	ID            int64
	Name          string
	Description   string
	Price         float64
	OriginalPrice *float64
	Images        []string
	Category      string
	Brand         string
	Stock         int32
	Ratings       Rating
	Features      []string
	IsActive      bool
	CreatedAt     time.Time
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category   string
	Brand      string
	Search     string
	ActiveOnly bool
	Page       int
	Limit      int
}
