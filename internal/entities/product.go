package entities

import "time"

type Product struct {
	ID          string
	Name        string
	Description string
	Price       int64
	Stock       int64
	Category    string
	Images      []string
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Available проверяет, можно ли положить quantity единиц товара в заказ.
func (p *Product) Available(quantity int64) bool {
	return p.IsPublished && p.Stock >= quantity
}
