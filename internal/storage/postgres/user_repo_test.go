package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/velomart/storefront/internal/domain/errors"
	"github.com/velomart/storefront/internal/domain/model"
)

var userRowColumns = []string{"id", "name", "email", "password_hash", "phone", "avatar", "is_admin", "created_at"}

var addressRowColumns = []string{"id", "street", "city", "state", "zip", "country", "is_default"}

func userRow(id int64) *pgxmockv3.Rows {
	return pgxmockv3.NewRows(userRowColumns).
		AddRow(id, "Ada", "ada@example.com", "hash", "", "", false, time.Now())
}

func emptyAddressRows() *pgxmockv3.Rows {
	return pgxmockv3.NewRows(addressRowColumns)
}

func TestUserRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	mock.ExpectQuery("INSERT INTO users").WithArgs("Ada", "ada@example.com", "hash").WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "is_admin", "created_at"}).AddRow(int64(1), false, time.Now()),
	)
	user, err := repo.Create(context.Background(), "Ada", "ada@example.com", "hash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 || user.Email != "ada@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	mock.ExpectQuery("INSERT INTO users").WithArgs("Ada", "ada@example.com", "hash").
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})
	if _, err := repo.Create(context.Background(), "Ada", "ada@example.com", "hash"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	mock.ExpectQuery("INSERT INTO users").WithArgs("Ada", "ada@example.com", "hash").
		WillReturnError(errors.New("other"))
	if _, err := repo.Create(context.Background(), "Ada", "ada@example.com", "hash"); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	mock.ExpectQuery("FROM users WHERE email=").WithArgs("ada@example.com").WillReturnRows(userRow(1))
	mock.ExpectQuery("FROM addresses WHERE user_id=").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows(addressRowColumns).
			AddRow(int64(5), "1 Main St", "Springfield", "IL", "62704", "US", true),
	)

	user, err := repo.GetByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(user.Addresses) != 1 || !user.Addresses[0].IsDefault {
		t.Fatalf("unexpected addresses: %+v", user.Addresses)
	}

	mock.ExpectQuery("FROM users WHERE email=").WithArgs("missing@example.com").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByEmail(context.Background(), "missing@example.com"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserRepositoryGetByID(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs(int64(1)).WillReturnRows(userRow(1))
	mock.ExpectQuery("FROM addresses WHERE user_id=").WithArgs(int64(1)).WillReturnRows(emptyAddressRows())

	if _, err := repo.GetByID(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUserRepositoryUpdateProfile(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	mock.ExpectQuery("UPDATE users SET name=").WithArgs(int64(1), "Ada L", "555-0199", "ada.png").
		WillReturnRows(pgxmockv3.NewRows(userRowColumns).
			AddRow(int64(1), "Ada L", "ada@example.com", "hash", "555-0199", "ada.png", false, time.Now()))
	mock.ExpectQuery("FROM addresses WHERE user_id=").WithArgs(int64(1)).WillReturnRows(emptyAddressRows())

	user, err := repo.UpdateProfile(context.Background(), 1, "Ada L", "555-0199", "ada.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Phone != "555-0199" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUserRepositoryUpdatePassword(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	mock.ExpectExec("UPDATE users SET password_hash=").WithArgs(int64(1), "newhash").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.UpdatePassword(context.Background(), 1, "newhash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE users SET password_hash=").WithArgs(int64(99), "newhash").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.UpdatePassword(context.Background(), 99, "newhash"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserRepositoryAddAddressFirstBecomesDefault(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(1)).
		WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO addresses").
		WithArgs(int64(1), "1 Main St", "Springfield", "IL", "62704", "US", true).
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectQuery("FROM addresses WHERE user_id=").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows(addressRowColumns).
			AddRow(int64(5), "1 Main St", "Springfield", "IL", "62704", "US", true),
	)
	mock.ExpectCommit()

	addresses, err := repo.AddAddress(context.Background(), 1, model.UserAddress{
		Street: "1 Main St", City: "Springfield", State: "IL", Zip: "62704", Country: "US",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(addresses) != 1 || !addresses[0].IsDefault {
		t.Fatalf("first address must become default: %+v", addresses)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUserRepositoryAddAddressClearsPriorDefault(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(1)).
		WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec("UPDATE addresses SET is_default=FALSE").WithArgs(int64(1)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectExec("INSERT INTO addresses").
		WithArgs(int64(1), "2 Oak Ave", "Springfield", "IL", "62704", "US", true).
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectQuery("FROM addresses WHERE user_id=").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows(addressRowColumns).
			AddRow(int64(5), "1 Main St", "Springfield", "IL", "62704", "US", false).
			AddRow(int64(6), "2 Oak Ave", "Springfield", "IL", "62704", "US", true),
	)
	mock.ExpectCommit()

	addresses, err := repo.AddAddress(context.Background(), 1, model.UserAddress{
		Street: "2 Oak Ave", City: "Springfield", State: "IL", Zip: "62704", Country: "US", IsDefault: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(addresses) != 2 || addresses[0].IsDefault || !addresses[1].IsDefault {
		t.Fatalf("exactly one default expected: %+v", addresses)
	}
}

func TestUserRepositoryDeleteAddress(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM addresses").WithArgs(int64(1), int64(5)).
		WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	mock.ExpectQuery("FROM addresses WHERE user_id=").WithArgs(int64(1)).WillReturnRows(emptyAddressRows())
	mock.ExpectCommit()

	addresses, err := repo.DeleteAddress(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(addresses) != 0 {
		t.Fatalf("expected no addresses, got %+v", addresses)
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM addresses").WithArgs(int64(1), int64(99)).
		WillReturnResult(pgxmockv3.NewResult("DELETE", 0))
	mock.ExpectRollback()
	if _, err := repo.DeleteAddress(context.Background(), 1, 99); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserRepositorySetDefaultAddress(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE addresses SET is_default=FALSE").WithArgs(int64(1)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 2))
	mock.ExpectExec("UPDATE addresses SET is_default=TRUE").WithArgs(int64(1), int64(6)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectQuery("FROM addresses WHERE user_id=").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows(addressRowColumns).
			AddRow(int64(5), "1 Main St", "Springfield", "IL", "62704", "US", false).
			AddRow(int64(6), "2 Oak Ave", "Springfield", "IL", "62704", "US", true),
	)
	mock.ExpectCommit()

	addresses, err := repo.SetDefaultAddress(context.Background(), 1, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !addresses[1].IsDefault || addresses[0].IsDefault {
		t.Fatalf("default flag not moved: %+v", addresses)
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE addresses SET is_default=FALSE").WithArgs(int64(1)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 2))
	mock.ExpectExec("UPDATE addresses SET is_default=TRUE").WithArgs(int64(1), int64(99)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	mock.ExpectRollback()
	if _, err := repo.SetDefaultAddress(context.Background(), 1, 99); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
