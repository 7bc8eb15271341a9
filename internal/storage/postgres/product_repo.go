package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/velomart/storefront/internal/domain/errors"
	"github.com/velomart/storefront/internal/domain/model"
)

const productColumns = `id, name, description, price, original_price, images, category, brand,
       stock, rating_average, rating_count, features, is_active, created_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.OriginalPrice, &p.Images,
		&p.Category, &p.Brand, &p.Stock, &p.Ratings.Average, &p.Ratings.Count,
		&p.Features, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	const query = `INSERT INTO products
            (name, description, price, original_price, images, category, brand, stock, features, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at`
	created := *product
	err := r.storage.pool.QueryRow(ctx, query,
		product.Name, product.Description, product.Price, product.OriginalPrice,
		product.Images, product.Category, product.Brand, product.Stock,
		product.Features, product.IsActive,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	const query = `UPDATE products SET
            name=$2, description=$3, price=$4, original_price=$5, images=$6,
            category=$7, brand=$8, stock=$9, features=$10, is_active=$11
        WHERE id=$1
        RETURNING created_at`
	updated := *product
	err := r.storage.pool.QueryRow(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.OriginalPrice,
		product.Images, product.Category, product.Brand, product.Stock,
		product.Features, product.IsActive,
	).Scan(&updated.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id=$1`, productColumns)
	return scanProduct(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, int64, error) {
	var (
		conditions []string
		args       []any
	)

	addCondition := func(cond string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.Category != "" {
		addCondition("category=$%d", filter.Category)
	}
	if filter.Brand != "" {
		addCondition("brand=$%d", filter.Brand)
	}
	if filter.Search != "" {
		addCondition("name ILIKE $%d", "%"+filter.Search+"%")
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "is_active")
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.storage.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY created_at DESC`, productColumns, where)
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, (page-1)*filter.Limit)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.OriginalPrice, &p.Images,
			&p.Category, &p.Brand, &p.Stock, &p.Ratings.Average, &p.Ratings.Count,
			&p.Features, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}
