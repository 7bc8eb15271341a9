package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/velomart/storefront/internal/domain/errors"
	"github.com/velomart/storefront/internal/domain/model"
)

// querier is satisfied by both the pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const orderColumns = `id, user_id, total_amount, ship_name, ship_street, ship_city, ship_state,
       ship_zip, ship_country, payment_method, status, payment_status, payment_intent_id,
       created_at, updated_at`

func scanOrderRow(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.TotalAmount,
		&o.ShippingAddress.Name, &o.ShippingAddress.Street, &o.ShippingAddress.City,
		&o.ShippingAddress.State, &o.ShippingAddress.Zip, &o.ShippingAddress.Country,
		&o.PaymentMethod, &o.Status, &o.PaymentStatus, &o.PaymentIntentID,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func loadOrderItems(ctx context.Context, q querier, orderID int64) ([]model.OrderItem, error) {
	const query = `SELECT oi.product_id, oi.quantity, oi.unit_price,
                   COALESCE(p.name, ''), COALESCE(p.images[1], '')
                   FROM order_items oi
                   LEFT JOIN products p ON p.id = oi.product_id
                   WHERE oi.order_id=$1 ORDER BY oi.id`
	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.UnitPrice, &item.ProductName, &item.ProductImage); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// reserveStock decrements product stock only when enough units remain.
// A failed decrement aborts the enclosing transaction with a typed error.
func reserveStock(ctx context.Context, tx pgx.Tx, productID int64, quantity int32) error {
	const decrement = `UPDATE products SET stock = stock - $2 WHERE id=$1 AND stock >= $2`
	tag, err := tx.Exec(ctx, decrement, productID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var (
		name      string
		available int32
	)
	err = tx.QueryRow(ctx, `SELECT name, stock FROM products WHERE id=$1`, productID).Scan(&name, &available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNotFound
		}
		return err
	}
	return &domainErrors.InsufficientStockError{
		ProductID:   productID,
		ProductName: name,
		Available:   available,
		Requested:   quantity,
	}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	created := *order
	created.Status = model.OrderStatusPending
	created.PaymentStatus = model.PaymentStatusPending

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders
                (user_id, total_amount, ship_name, ship_street, ship_city, ship_state,
                 ship_zip, ship_country, payment_method, status, payment_status)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
            RETURNING id, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder,
			created.UserID, created.TotalAmount,
			created.ShippingAddress.Name, created.ShippingAddress.Street, created.ShippingAddress.City,
			created.ShippingAddress.State, created.ShippingAddress.Zip, created.ShippingAddress.Country,
			created.PaymentMethod, created.Status, created.PaymentStatus,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, product_id, quantity, unit_price)
                            VALUES ($1, $2, $3, $4)`
		for _, item := range created.Items {
			if err := reserveStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, insertItem, created.ID, item.ProductID, item.Quantity, item.UnitPrice); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id=$1`, orderColumns)
	order, err := scanOrderRow(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if order.Items, err = loadOrderItems(ctx, r.storage.pool, order.ID); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByPaymentIntent(ctx context.Context, intentID string) (*model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE payment_intent_id=$1`, orderColumns)
	order, err := scanOrderRow(r.storage.pool.QueryRow(ctx, query, intentID))
	if err != nil {
		return nil, err
	}
	if order.Items, err = loadOrderItems(ctx, r.storage.pool, order.ID); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, orderColumns)
	orders, err := r.queryOrders(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) (*model.OrderPage, error) {
	var (
		where string
		args  []any
	)
	if filter.Status != "" {
		where = " WHERE status=$1"
		args = append(args, filter.Status)
	}

	var total int64
	if err := r.storage.pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders"+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	query := fmt.Sprintf(`SELECT %s FROM orders%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	orders, err := r.queryOrders(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &model.OrderPage{Orders: orders, Total: total, Page: page, TotalPages: totalPages}, nil
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount,
			&o.ShippingAddress.Name, &o.ShippingAddress.Street, &o.ShippingAddress.City,
			&o.ShippingAddress.State, &o.ShippingAddress.Zip, &o.ShippingAddress.Country,
			&o.PaymentMethod, &o.Status, &o.PaymentStatus, &o.PaymentIntentID,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		result = append(result, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		items, err := loadOrderItems(ctx, r.storage.pool, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

func (r *orderRepository) Cancel(ctx context.Context, id int64) (*model.Order, error) {
	var cancelled *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		query := fmt.Sprintf(`SELECT %s FROM orders WHERE id=$1 FOR UPDATE`, orderColumns)
		order, err := scanOrderRow(tx.QueryRow(ctx, query, id))
		if err != nil {
			return err
		}
		if order.Status != model.OrderStatusProcessing {
			return domainErrors.ErrInvalidState
		}

		if order.Items, err = loadOrderItems(ctx, tx, order.ID); err != nil {
			return err
		}

		const restore = `UPDATE products SET stock = stock + $2 WHERE id=$1`
		for _, item := range order.Items {
			if _, err := tx.Exec(ctx, restore, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		const update = `UPDATE orders SET status=$2, updated_at=NOW() WHERE id=$1 RETURNING updated_at`
		if err := tx.QueryRow(ctx, update, id, model.OrderStatusCancelled).Scan(&order.UpdatedAt); err != nil {
			return err
		}
		order.Status = model.OrderStatusCancelled
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	const query = `UPDATE orders SET status=$2, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, status)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *orderRepository) SetPaymentIntent(ctx context.Context, id int64, intentID string) error {
	const query = `UPDATE orders SET payment_intent_id=$2, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, intentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, id int64, intentID string) error {
	const query = `UPDATE orders SET payment_status=$2, status=$3,
                   payment_intent_id=CASE WHEN $4='' THEN payment_intent_id ELSE $4 END,
                   updated_at=NOW()
                   WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, model.PaymentStatusCompleted, model.OrderStatusProcessing, intentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) MarkPaymentFailed(ctx context.Context, id int64) error {
	const query = `UPDATE orders SET payment_status=$2, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, model.PaymentStatusFailed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) MarkRefunded(ctx context.Context, intentID string) error {
	const query = `UPDATE orders SET payment_status=$2, status=$3, updated_at=NOW()
                   WHERE payment_intent_id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, intentID, model.PaymentStatusRefunded, model.OrderStatusCancelled)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
