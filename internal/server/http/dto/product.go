package dto

import (
	"time"

	"github.com/velomart/storefront/internal/domain/model"
)

// ProductRequest describes a catalog create/update payload.
type ProductRequest struct {
	Name          string   `json:"name" validate:"required,min=1,max=200"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	OriginalPrice *float64 `json:"originalPrice" validate:"omitempty,gt=0"`
	Images        []string `json:"images" validate:"dive,url"`
	Category      string   `json:"category" validate:"required"`
	Brand         string   `json:"brand"`
	Stock         int32    `json:"stock" validate:"gte=0"`
	Features      []string `json:"features"`
	IsActive      *bool    `json:"isActive"`
}

// ProductResponse is the public projection of a catalog entry.
type ProductResponse struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Images        []string `json:"images"`
	Category      string   `json:"category"`
	Brand         string   `json:"brand,omitempty"`
	Stock         int32    `json:"stock"`
	Ratings       struct {
		Average float64 `json:"average"`
		Count   int     `json:"count"`
	} `json:"ratings"`
	Features  []string  `json:"features"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductListResponse is one catalog page.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// ToProduct converts the payload to the domain model. Entries default to
// active unless the payload says otherwise.
func (r ProductRequest) ToProduct() *model.Product {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &model.Product{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		Images:        r.Images,
		Category:      r.Category,
		Brand:         r.Brand,
		Stock:         r.Stock,
		Features:      r.Features,
		IsActive:      active,
	}
}

// ToProductResponse converts a domain product to its projection.
func ToProductResponse(p model.Product) ProductResponse {
	resp := ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Images:        p.Images,
		Category:      p.Category,
		Brand:         p.Brand,
		Stock:         p.Stock,
		Features:      p.Features,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
	}
	resp.Ratings.Average = p.Ratings.Average
	resp.Ratings.Count = p.Ratings.Count
	return resp
}
