package usecase

import (
	"context"

	domainErrors "github.com/velomart/storefront/internal/domain/errors"
	"github.com/velomart/storefront/internal/domain/model"
	"github.com/velomart/storefront/internal/domain/repository"
	pkgAuth "github.com/velomart/storefront/internal/pkg/auth"
)

// ProfileUseCase manages user profile, addresses and password changes.
type ProfileUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
}

// NewProfileUseCase constructs ProfileUseCase.
func NewProfileUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher) *ProfileUseCase {
	return &ProfileUseCase{users: users, hasher: hasher}
}

// Get returns the user's profile.
func (u *ProfileUseCase) Get(ctx context.Context, userID int64) (*model.User, error) {
	return u.users.GetByID(ctx, userID)
}

// Update overwrites mutable profile fields.
func (u *ProfileUseCase) Update(ctx context.Context, userID int64, name, phone, avatar string) (*model.User, error) {
	return u.users.UpdateProfile(ctx, userID, name, phone, avatar)
}

// AddAddress saves a new delivery address; the first one becomes default.
func (u *ProfileUseCase) AddAddress(ctx context.Context, userID int64, addr model.UserAddress) ([]model.UserAddress, error) {
	return u.users.AddAddress(ctx, userID, addr)
}

// UpdateAddress edits an existing address.
func (u *ProfileUseCase) UpdateAddress(ctx context.Context, userID, addressID int64, addr model.UserAddress) ([]model.UserAddress, error) {
	return u.users.UpdateAddress(ctx, userID, addressID, addr)
}

// DeleteAddress removes an address.
func (u *ProfileUseCase) DeleteAddress(ctx context.Context, userID, addressID int64) ([]model.UserAddress, error) {
	return u.users.DeleteAddress(ctx, userID, addressID)
}

// SetDefaultAddress makes one address the default and demotes all others.
func (u *ProfileUseCase) SetDefaultAddress(ctx context.Context, userID, addressID int64) ([]model.UserAddress, error) {
	return u.users.SetDefaultAddress(ctx, userID, addressID)
}

// ChangePassword verifies the current password before storing a new hash.
func (u *ProfileUseCase) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if next == "" {
		return domainErrors.ErrValidation
	}

	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := u.hasher.Compare(usr.PasswordHash, current); err != nil {
		return domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(next)
	if err != nil {
		return err
	}
	return u.users.UpdatePassword(ctx, userID, hash)
}
