package driver

import "time"

type DriverDB struct {
	ID              int64
	Name            string
	Phone           string
	Email           string
	Vehicle         []byte
	Longitude       float64
	Latitude        float64
	Status          string
	Rating          float64
	TotalDeliveries int64
	TotalEarnings   int64
	IsActive        bool
	LastActive      time.Time
	CurrentDelivery []byte
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type vehicleJSON struct {
	Type         string `json:"type"`
	LicensePlate string `json:"licensePlate"`
	Model        string `json:"model"`
	Color        string `json:"color"`
}

type currentDeliveryJSON struct {
	DeliveryID string `json:"deliveryId"`
	OrderID    string `json:"orderId"`
}
