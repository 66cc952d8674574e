package product

import "time"

type ProductDB struct {
	ID          string
	Name        string
	Description string
	Price       int64
	Stock       int64
	Category    string
	Images      []byte
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
