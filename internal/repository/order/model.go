package order

import "time"

type OrderDB struct {
	ID                string
	OrderNumber       string
	UserID            int64
	CartID            string
	Items             []byte
	TotalItems        int64
	Subtotal          int64
	ShippingFee       int64
	Tax               int64
	TotalPrice        int64
	ShippingAddress   []byte
	CustomerInfo      []byte
	PaymentMethod     string
	PaymentStatus     string
	Status            string
	Notes             string
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type orderItemJSON struct {
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

type shippingAddressJSON struct {
	FullName     string  `json:"fullName"`
	Phone        string  `json:"phone"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	ZipCode      string  `json:"zipCode"`
	Country      string  `json:"country"`
	Longitude    float64 `json:"longitude,omitempty"`
	Latitude     float64 `json:"latitude,omitempty"`
	Instructions string  `json:"instructions,omitempty"`
}

type customerInfoJSON struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
