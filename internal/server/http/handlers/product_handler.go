package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/velomart/storefront/internal/domain/model"
	"github.com/velomart/storefront/internal/server/http/dto"
	"github.com/velomart/storefront/internal/server/http/validation"
)

// ProductHandler manages catalog endpoints.
type ProductHandler struct {
	facade CatalogFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade CatalogFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *gin.Context) {
	filter := model.ProductFilter{
		Category:   c.Query("category"),
		Brand:      c.Query("brand"),
		Search:     c.Query("search"),
		ActiveOnly: c.DefaultQuery("includeInactive", "false") != "true",
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 12),
	}

	products, total, err := h.facade.Products(c.Request.Context(), filter)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	resp := dto.ProductListResponse{
		Products: make([]dto.ProductResponse, 0, len(products)),
		Total:    total,
		Page:     filter.Page,
		Limit:    filter.Limit,
	}
	for _, p := range products {
		resp.Products = append(resp.Products, dto.ToProductResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(*product))
}

// Create handles POST /api/products. Admin only.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return
	}

	product, err := h.facade.CreateProduct(c.Request.Context(), req.ToProduct())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToProductResponse(*product))
}

// Update handles PUT /api/products/:id. Admin only.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ProductRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return
	}

	product := req.ToProduct()
	product.ID = id
	updated, err := h.facade.UpdateProduct(c.Request.Context(), product)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(*updated))
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
