package repository

import (
	"context"

	"github.com/velomart/storefront/internal/domain/model"
)

// UserRepository describes persistence operations with users and addresses.
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, name, phone, avatar string) (*model.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	AddAddress(ctx context.Context, userID int64, addr model.UserAddress) ([]model.UserAddress, error)
	UpdateAddress(ctx context.Context, userID, addressID int64, addr model.UserAddress) ([]model.UserAddress, error)
	DeleteAddress(ctx context.Context, userID, addressID int64) ([]model.UserAddress, error)
	// SetDefaultAddress marks one address default and clears the flag on all
	// others belonging to the same user.
	SetDefaultAddress(ctx context.Context, userID, addressID int64) ([]model.UserAddress, error)
}
