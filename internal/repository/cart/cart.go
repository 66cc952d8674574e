package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/peterPain01/SA-Microserices/internal/entities"
	"github.com/peterPain01/SA-Microserices/internal/repository"
	"github.com/peterPain01/SA-Microserices/internal/service/cart"
)

const cartColumns = `id, user_id, items, total_items, total_price, status, created_at, updated_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetActiveByUserID(ctx context.Context, userID int64) (*entities.Cart, error) {
	query := `SELECT ` + cartColumns + `
		FROM carts
		WHERE user_id = $1 AND status = 'active'`

	cartDB, err := r.scanOne(r.querier.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cart.ErrCartNotFound
		}
		return nil, fmt.Errorf("unexpected cart repository get error: %w", err)
	}

	return ToDomain(cartDB)
}

func (r *Repository) Create(ctx context.Context, cartEntity *entities.Cart) (*entities.Cart, error) {
	items, err := itemsFromDomain(cartEntity.Items)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO carts (user_id, items, total_items, total_price, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + cartColumns

	cartDB, err := r.scanOne(r.querier.QueryRow(
		ctx,
		query,
		cartEntity.UserID,
		items,
		cartEntity.TotalItems,
		cartEntity.TotalPrice,
		entities.CartActive.String(),
	))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			// активная корзина пользователя уже есть, отдаем её
			return r.GetActiveByUserID(ctx, cartEntity.UserID)
		}
		return nil, fmt.Errorf("unexpected cart repository create error: %w", err)
	}

	return ToDomain(cartDB)
}

func (r *Repository) Update(ctx context.Context, cartEntity *entities.Cart) (*entities.Cart, error) {
	items, err := itemsFromDomain(cartEntity.Items)
	if err != nil {
		return nil, err
	}

	query := `UPDATE carts
		SET items = $2, total_items = $3, total_price = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + cartColumns

	cartDB, err := r.scanOne(r.querier.QueryRow(
		ctx,
		query,
		cartEntity.ID,
		items,
		cartEntity.TotalItems,
		cartEntity.TotalPrice,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cart.ErrCartNotFound
		}
		return nil, fmt.Errorf("unexpected cart repository update error: %w", err)
	}

	return ToDomain(cartDB)
}

func (r *Repository) UpdateStatus(ctx context.Context, cartID string, status entities.CartStatusType) error {
	query := `UPDATE carts
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.querier.Exec(ctx, query, cartID, status.String())
	if err != nil {
		return fmt.Errorf("unexpected cart repository update status error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return cart.ErrCartNotFound
	}

	return nil
}

func (r *Repository) scanOne(row pgx.Row) (*CartDB, error) {
	var cartDB CartDB
	err := row.Scan(
		&cartDB.ID,
		&cartDB.UserID,
		&cartDB.Items,
		&cartDB.TotalItems,
		&cartDB.TotalPrice,
		&cartDB.Status,
		&cartDB.CreatedAt,
		&cartDB.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cartDB, nil
}
