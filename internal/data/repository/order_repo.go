package repository

import (
	"context"
	"errors"
	"fmt"

	"pizza-delivery/internal/data/entity"
	"pizza-delivery/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id int64) (*entity.Order, error)
	FindByIDAndUserID(ctx context.Context, id, userID int64) (*entity.Order, error)
	// FindAll returns orders by id; limit <= 0 means no limit.
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Order, error)
	CountAll(ctx context.Context) (int64, error)
	FindByUserID(ctx context.Context, userID int64) ([]*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id int64) error
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const orderColumns = `id, user_id, quantity, pizza_size, order_status, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (user_id, quantity, pizza_size, order_status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		order.UserID,
		order.Quantity,
		order.PizzaSize,
		order.OrderStatus,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.Int64("user_id", order.UserID),
		)
		return fmt.Errorf("create order for user %d: %w", order.UserID, err)
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID", zap.Error(err), zap.Int64("order_id", id))
		return nil, fmt.Errorf("find order by ID %d: %w", id, err)
	}

	return order, nil
}

func (r *orderRepository) FindByIDAndUserID(ctx context.Context, id, userID int64) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND user_id = $2`

	order, err := scanOrder(database.Conn(ctx, r.db).QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user order",
			zap.Error(err),
			zap.Int64("order_id", id),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find order %d of user %d: %w", id, userID, err)
	}

	return order, nil
}

func (r *orderRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to get all orders",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all orders limit %d offset %d: %w", limit, offset, err)
	}

	return r.collect(rows)
}

func (r *orderRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM orders`

	var count int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Database error counting orders", zap.Error(err))
		return 0, fmt.Errorf("count all orders: %w", err)
	}

	return count, nil
}

func (r *orderRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY id`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find orders by user ID", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("find orders by user ID %d: %w", userID, err)
	}

	return r.collect(rows)
}

// Update persists quantity, size and status. user_id is never written.
func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	query := `
		UPDATE orders
		SET quantity = $2, pizza_size = $3, order_status = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		order.ID,
		order.Quantity,
		order.PizzaSize,
		order.OrderStatus,
	).Scan(&order.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("order %d not found", order.ID)
	}
	if err != nil {
		r.log.Error("Failed to update order", zap.Error(err), zap.Int64("order_id", order.ID))
		return fmt.Errorf("update order %d: %w", order.ID, err)
	}

	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM orders WHERE id = $1`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete order", zap.Error(err), zap.Int64("order_id", id))
		return fmt.Errorf("delete order %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %d not found", id)
	}

	r.log.Info("Order deleted", zap.Int64("order_id", id))
	return nil
}

func (r *orderRepository) collect(rows pgx.Rows) ([]*entity.Order, error) {
	defer rows.Close()

	orders := []*entity.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var order entity.Order
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.Quantity,
		&order.PizzaSize,
		&order.OrderStatus,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
