package entities

import "time"

type Cart struct {
	ID         string
	UserID     int64
	Items      []CartItem
	TotalItems int64
	TotalPrice int64
	Status     CartStatusType
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CartItem struct {
	ProductID string
	Quantity  int64
	Price     int64
	Snapshot  ProductSnapshot
}

type ProductSnapshot struct {
	Name        string
	Description string
	Images      []string
	Category    string
}

type CartStatusType string

const (
	CartActive    CartStatusType = "active"
	CartCheckout  CartStatusType = "checkout"
	CartAbandoned CartStatusType = "abandoned"
)

func (s CartStatusType) String() string {
	return string(s)
}

// RecalculateTotals пересчитывает агрегаты перед каждым сохранением,
// суммы никогда не хранятся расчётно-неактуальными.
func (c *Cart) RecalculateTotals() {
	var items, price int64
	for _, it := range c.Items {
		items += it.Quantity
		price += it.Price * it.Quantity
	}
	c.TotalItems = items
	c.TotalPrice = price
}
