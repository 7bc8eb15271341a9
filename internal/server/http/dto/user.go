package dto

import "github.com/velomart/storefront/internal/domain/model"

// UserResponse is the public projection of an account.
type UserResponse struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone,omitempty"`
	Avatar    string            `json:"avatar,omitempty"`
	IsAdmin   bool              `json:"isAdmin"`
	Addresses []AddressResponse `json:"addresses"`
}

// AddressResponse is one stored delivery address.
type AddressResponse struct {
	ID        int64  `json:"id"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	IsDefault bool   `json:"isDefault"`
}

// UpdateProfileRequest describes mutable profile fields.
type UpdateProfileRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=100"`
	Phone  string `json:"phone" validate:"max=32"`
	Avatar string `json:"avatar" validate:"omitempty,url"`
}

// AddressRequest describes a delivery address payload.
type AddressRequest struct {
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state"`
	Zip       string `json:"zip" validate:"required"`
	Country   string `json:"country" validate:"required"`
	IsDefault bool   `json:"isDefault"`
}

// ChangePasswordRequest carries the current and replacement password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// ToUserResponse converts the domain user to its public projection.
func ToUserResponse(u *model.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Avatar:    u.Avatar,
		IsAdmin:   u.IsAdmin,
		Addresses: ToAddressResponses(u.Addresses),
	}
	return resp
}

// ToAddressResponses converts stored addresses to their projection.
func ToAddressResponses(addrs []model.UserAddress) []AddressResponse {
	out := make([]AddressResponse, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, AddressResponse{
			ID:        a.ID,
			Street:    a.Street,
			City:      a.City,
			State:     a.State,
			Zip:       a.Zip,
			Country:   a.Country,
			IsDefault: a.IsDefault,
		})
	}
	return out
}

// ToUserAddress converts an address payload to the domain model.
func (r AddressRequest) ToUserAddress() model.UserAddress {
	return model.UserAddress{
		Street:    r.Street,
		City:      r.City,
		State:     r.State,
		Zip:       r.Zip,
		Country:   r.Country,
		IsDefault: r.IsDefault,
	}
}
