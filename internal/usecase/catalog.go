package usecase

import (
	"context"

	"github.com/velomart/storefront/internal/domain/model"
	"github.com/velomart/storefront/internal/domain/repository"
)

// CatalogUseCase exposes product lookup and catalog administration.
type CatalogUseCase struct {
	products repository.ProductRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// Get returns one product by id.
func (u *CatalogUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// List returns a filtered catalog page with total count.
func (u *CatalogUseCase) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, int64, error) {
	return u.products.List(ctx, filter)
}

// Create adds a product to the catalog.
func (u *CatalogUseCase) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	return u.products.Create(ctx, product)
}

// Update overwrites a product's catalog fields.
func (u *CatalogUseCase) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	return u.products.Update(ctx, product)
}
