package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velomart/storefront/internal/server/http/dto"
	"github.com/velomart/storefront/internal/server/http/validation"
)

// UserHandler manages profile, password and address endpoints.
type UserHandler struct {
	facade ProfileFacade
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(facade ProfileFacade) *UserHandler {
	return &UserHandler{facade: facade}
}

// Profile handles GET /api/users/profile.
func (h *UserHandler) Profile(c *gin.Context) {
	identity := CurrentIdentity(c)

	user, err := h.facade.Profile(c.Request.Context(), identity.UserID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UpdateProfile handles PUT /api/users/profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	identity := CurrentIdentity(c)

	var req dto.UpdateProfileRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return
	}

	user, err := h.facade.UpdateProfile(c.Request.Context(), identity.UserID, req.Name, req.Phone, req.Avatar)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// ChangePassword handles PUT /api/users/password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	identity := CurrentIdentity(c)

	var req dto.ChangePasswordRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return
	}

	if err := h.facade.ChangePassword(c.Request.Context(), identity.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// AddAddress handles POST /api/users/addresses.
func (h *UserHandler) AddAddress(c *gin.Context) {
	identity := CurrentIdentity(c)

	var req dto.AddressRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return
	}

	addresses, err := h.facade.AddAddress(c.Request.Context(), identity.UserID, req.ToUserAddress())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAddressResponses(addresses))
}

// UpdateAddress handles PUT /api/users/addresses/:id.
func (h *UserHandler) UpdateAddress(c *gin.Context) {
	identity := CurrentIdentity(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.AddressRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return
	}

	addresses, err := h.facade.UpdateAddress(c.Request.Context(), identity.UserID, id, req.ToUserAddress())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAddressResponses(addresses))
}

// DeleteAddress handles DELETE /api/users/addresses/:id.
func (h *UserHandler) DeleteAddress(c *gin.Context) {
	identity := CurrentIdentity(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	addresses, err := h.facade.DeleteAddress(c.Request.Context(), identity.UserID, id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAddressResponses(addresses))
}

// SetDefaultAddress handles PUT /api/users/addresses/:id/default.
func (h *UserHandler) SetDefaultAddress(c *gin.Context) {
	identity := CurrentIdentity(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	addresses, err := h.facade.SetDefaultAddress(c.Request.Context(), identity.UserID, id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAddressResponses(addresses))
}
