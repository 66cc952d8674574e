package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/peterPain01/SA-Microserices/internal/entities"
	"github.com/peterPain01/SA-Microserices/internal/service/cart"
)

const productColumns = `id, name, description, price, stock, category, images, is_published, created_at, updated_at`

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

func (r *Repository) GetByID(ctx context.Context, productID string) (*entities.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE id = $1`

	productDB, err := scanProduct(r.querier.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cart.ErrProductNotFound
		}
		return nil, fmt.Errorf("unexpected product repository get error: %w", err)
	}

	return toDomain(productDB)
}

func (r *Repository) GetByIDs(ctx context.Context, productIDs []string) ([]entities.Product, error) {
	if len(productIDs) == 0 {
		return []entities.Product{}, nil
	}

	query := `SELECT ` + productColumns + `
		FROM products
		WHERE id = ANY($1)`

	rows, err := r.querier.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("unexpected product repository getbyids error: %w", err)
	}
	defer rows.Close()

	products := make([]entities.Product, 0, len(productIDs))
	for rows.Next() {
		productDB, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected product repository getbyids error: %w", err)
		}
		product, err := toDomain(productDB)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected product repository getbyids error: %w", err)
	}

	return products, nil
}

// DecrementStock списывает quantity со склада, только если остатка хватает.
func (r *Repository) DecrementStock(ctx context.Context, productID string, quantity int64) error {
	query := `UPDATE products
		SET stock = stock - $2, updated_at = NOW()
		WHERE id = $1 AND stock >= $2`

	tag, err := r.querier.Exec(ctx, query, productID, quantity)
	if err != nil {
		return fmt.Errorf("unexpected product repository decrement error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return cart.ErrInsufficientStock
	}

	return nil
}

func scanProduct(row pgx.Row) (*ProductDB, error) {
	var productDB ProductDB
	err := row.Scan(
		&productDB.ID,
		&productDB.Name,
		&productDB.Description,
		&productDB.Price,
		&productDB.Stock,
		&productDB.Category,
		&productDB.Images,
		&productDB.IsPublished,
		&productDB.CreatedAt,
		&productDB.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &productDB, nil
}

func toDomain(p *ProductDB) (*entities.Product, error) {
	if p == nil {
		return nil, nil
	}

	var images []string
	if len(p.Images) > 0 {
		if err := json.Unmarshal(p.Images, &images); err != nil {
			return nil, fmt.Errorf("decode product images: %w", err)
		}
	}

	return &entities.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		Images:      images,
		IsPublished: p.IsPublished,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}
