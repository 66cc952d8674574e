package order

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/peterPain01/SA-Microserices/internal/entities"
	"github.com/peterPain01/SA-Microserices/internal/repository"
	"github.com/peterPain01/SA-Microserices/internal/service/order"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const orderColumns = `id, order_number, user_id, cart_id, items, total_items, subtotal,
	shipping_fee, tax, total_price, shipping_address, customer_info, payment_method,
	payment_status, status, notes, estimated_delivery, actual_delivery, created_at, updated_at`

type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, orderEntity *entities.Order) (*entities.Order, error) {
	items, err := itemsFromDomain(orderEntity.Items)
	if err != nil {
		return nil, err
	}
	address, err := addressFromDomain(orderEntity.ShippingAddress)
	if err != nil {
		return nil, err
	}
	customer, err := customerFromDomain(orderEntity.CustomerInfo)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO orders (order_number, user_id, cart_id, items, total_items, subtotal,
			shipping_fee, tax, total_price, shipping_address, customer_info, payment_method,
			payment_status, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + orderColumns

	orderDB, err := r.scanOne(r.querier.QueryRow(
		ctx,
		query,
		orderEntity.OrderNumber,
		orderEntity.UserID,
		orderEntity.CartID,
		items,
		orderEntity.TotalItems,
		orderEntity.Subtotal,
		orderEntity.ShippingFee,
		orderEntity.Tax,
		orderEntity.TotalPrice,
		address,
		customer,
		orderEntity.PaymentMethod.String(),
		orderEntity.PaymentStatus.String(),
		orderEntity.Status.String(),
		orderEntity.Notes,
	))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, order.ErrOrderAlreadyExists
		}
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	return ToDomain(orderDB)
}

func (r *Repository) GetByID(ctx context.Context, orderID string) (*entities.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID)
}

func (r *Repository) GetByNumber(ctx context.Context, orderNumber string) (*entities.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, orderNumber)
}

func (r *Repository) GetByCartID(ctx context.Context, cartID string) (*entities.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE cart_id = $1`, cartID)
}

func (r *Repository) ListByUserID(ctx context.Context, userID, limit, offset int64) ([]entities.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.querier.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.Order, 0, limit)
	for rows.Next() {
		orderDB, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository list error: %w", err)
		}
		orderEntity, err := ToDomain(orderDB)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *orderEntity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	return orders, nil
}

func (r *Repository) Update(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error) {
	builder := qb.Update("orders")

	if orderModify.Status != nil {
		builder = builder.Set("status", orderModify.Status.String())
	}
	if orderModify.PaymentStatus != nil {
		builder = builder.Set("payment_status", orderModify.PaymentStatus.String())
	}
	if orderModify.EstimatedDelivery != nil {
		builder = builder.Set("estimated_delivery", orderModify.EstimatedDelivery)
	}
	if orderModify.ActualDelivery != nil {
		builder = builder.Set("actual_delivery", orderModify.ActualDelivery)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	builder = builder.
		Where(sq.Eq{"id": orderModify.ID}).
		Suffix("RETURNING " + orderColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	orderDB, err := r.scanOne(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	return ToDomain(orderDB)
}

func (r *Repository) getOne(ctx context.Context, query string, arg interface{}) (*entities.Order, error) {
	orderDB, err := r.scanOne(r.querier.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository get error: %w", err)
	}

	return ToDomain(orderDB)
}

func (r *Repository) scanOne(row pgx.Row) (*OrderDB, error) {
	var orderDB OrderDB
	err := row.Scan(
		&orderDB.ID,
		&orderDB.OrderNumber,
		&orderDB.UserID,
		&orderDB.CartID,
		&orderDB.Items,
		&orderDB.TotalItems,
		&orderDB.Subtotal,
		&orderDB.ShippingFee,
		&orderDB.Tax,
		&orderDB.TotalPrice,
		&orderDB.ShippingAddress,
		&orderDB.CustomerInfo,
		&orderDB.PaymentMethod,
		&orderDB.PaymentStatus,
		&orderDB.Status,
		&orderDB.Notes,
		&orderDB.EstimatedDelivery,
		&orderDB.ActualDelivery,
		&orderDB.CreatedAt,
		&orderDB.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &orderDB, nil
}
