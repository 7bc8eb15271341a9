package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/velomart/storefront/internal/domain/errors"
	"github.com/velomart/storefront/internal/domain/model"
)

const uniqueViolation = "23505"

func (r *userRepository) Create(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3)
                   RETURNING id, is_admin, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, name, email, passwordHash).Scan(&u.ID, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Name = name
	u.Email = email
	u.PasswordHash = passwordHash
	return &u, nil
}

const userColumns = `id, name, email, password_hash, phone, avatar, is_admin, created_at`

func (r *userRepository) scanUser(ctx context.Context, row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Avatar, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if u.Addresses, err = r.listAddresses(ctx, r.storage.pool, u.ID); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return r.scanUser(ctx, r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.scanUser(ctx, r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) UpdateProfile(ctx context.Context, id int64, name, phone, avatar string) (*model.User, error) {
	const query = `UPDATE users SET name=$2, phone=$3, avatar=$4 WHERE id=$1
                   RETURNING ` + userColumns
	return r.scanUser(ctx, r.storage.pool.QueryRow(ctx, query, id, name, phone, avatar))
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE users SET password_hash=$2 WHERE id=$1`, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

const addressColumns = `id, street, city, state, zip, country, is_default`

func (r *userRepository) listAddresses(ctx context.Context, q querier, userID int64) ([]model.UserAddress, error) {
	const query = `SELECT ` + addressColumns + ` FROM addresses WHERE user_id=$1 ORDER BY id`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.UserAddress
	for rows.Next() {
		var a model.UserAddress
		if err := rows.Scan(&a.ID, &a.Street, &a.City, &a.State, &a.Zip, &a.Country, &a.IsDefault); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *userRepository) AddAddress(ctx context.Context, userID int64, addr model.UserAddress) ([]model.UserAddress, error) {
	var addresses []model.UserAddress
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM addresses WHERE user_id=$1`, userID).Scan(&count); err != nil {
			return err
		}

		// First saved address becomes the default automatically.
		isDefault := addr.IsDefault || count == 0
		if isDefault && count > 0 {
			if _, err := tx.Exec(ctx, `UPDATE addresses SET is_default=FALSE WHERE user_id=$1`, userID); err != nil {
				return err
			}
		}

		const insert = `INSERT INTO addresses (user_id, street, city, state, zip, country, is_default)
                        VALUES ($1, $2, $3, $4, $5, $6, $7)`
		if _, err := tx.Exec(ctx, insert, userID, addr.Street, addr.City, addr.State, addr.Zip, addr.Country, isDefault); err != nil {
			return err
		}

		var err error
		addresses, err = r.listAddresses(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *userRepository) UpdateAddress(ctx context.Context, userID, addressID int64, addr model.UserAddress) ([]model.UserAddress, error) {
	var addresses []model.UserAddress
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if addr.IsDefault {
			if _, err := tx.Exec(ctx, `UPDATE addresses SET is_default=FALSE WHERE user_id=$1`, userID); err != nil {
				return err
			}
		}

		const update = `UPDATE addresses SET street=$3, city=$4, state=$5, zip=$6, country=$7, is_default=$8
                        WHERE id=$2 AND user_id=$1`
		tag, err := tx.Exec(ctx, update, userID, addressID, addr.Street, addr.City, addr.State, addr.Zip, addr.Country, addr.IsDefault)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}

		addresses, err = r.listAddresses(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *userRepository) DeleteAddress(ctx context.Context, userID, addressID int64) ([]model.UserAddress, error) {
	var addresses []model.UserAddress
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM addresses WHERE id=$2 AND user_id=$1`, userID, addressID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}

		addresses, err = r.listAddresses(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *userRepository) SetDefaultAddress(ctx context.Context, userID, addressID int64) ([]model.UserAddress, error) {
	var addresses []model.UserAddress
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE addresses SET is_default=FALSE WHERE user_id=$1`, userID); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `UPDATE addresses SET is_default=TRUE WHERE id=$2 AND user_id=$1`, userID, addressID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}

		addresses, err = r.listAddresses(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return addresses, nil
}
