package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/velomart/storefront/internal/domain/errors"
	pkgAuth "github.com/velomart/storefront/internal/pkg/auth"
	"github.com/velomart/storefront/internal/server/http/dto"
	"github.com/velomart/storefront/internal/server/http/middleware"
)

// CurrentIdentity extracts the authenticated identity from context.
func CurrentIdentity(c *gin.Context) pkgAuth.Identity {
	identity, _ := middleware.CurrentIdentity(c)
	return identity
}

// pathID parses a numeric path parameter, writing a 400 when it is not one.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid " + name})
		return 0, false
	}
	return id, true
}

// writeDomainError maps domain sentinels to HTTP statuses with the common
// error envelope.
func writeDomainError(c *gin.Context, err error) {
	if stockErr, ok := domainErrors.IsInsufficientStock(err); ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "insufficient stock for " + stockErr.ProductName,
			Error:   stockErr.Error(),
		})
		return
	}

	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "not found"})
	case errors.Is(err, domainErrors.ErrAccessDenied):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "access denied"})
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Message: "already exists"})
	case errors.Is(err, domainErrors.ErrInvalidState):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "operation not allowed in current state"})
	case errors.Is(err, domainErrors.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "validation failed"})
	case errors.Is(err, domainErrors.ErrSignatureInvalid):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid webhook signature"})
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "invalid credentials"})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal error"})
	}
}
