package delivery

import "time"

type DeliveryDB struct {
	ID                    string
	DeliveryNumber        string
	OrderID               string
	OrderNumber           string
	UserID                int64
	DriverID              *int64
	PickupLocation        []byte
	DeliveryLocation      []byte
	Status                string
	Priority              string
	Distance              int64
	DeliveryFee           int64
	DriverEarnings        int64
	StatusHistory         []byte
	EstimatedPickupTime   *time.Time
	EstimatedDeliveryTime *time.Time
	ActualPickupTime      *time.Time
	ActualDeliveryTime    *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type locationJSON struct {
	Address      string  `json:"address"`
	Longitude    float64 `json:"longitude"`
	Latitude     float64 `json:"latitude"`
	ContactName  string  `json:"contactName,omitempty"`
	ContactPhone string  `json:"contactPhone,omitempty"`
	Instructions string  `json:"instructions,omitempty"`
}

type historyEntryJSON struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Longitude *float64  `json:"longitude,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	UpdatedBy string    `json:"updatedBy"`
}
