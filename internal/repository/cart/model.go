package cart

import "time"

type CartDB struct {
	ID         string
	UserID     int64
	Items      []byte
	TotalItems int64
	TotalPrice int64
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type cartItemJSON struct {
	ProductID string              `json:"productId"`
	Quantity  int64               `json:"quantity"`
	Price     int64               `json:"price"`
	Snapshot  productSnapshotJSON `json:"productSnapshot"`
}

type productSnapshotJSON struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	Category    string   `json:"category,omitempty"`
}
