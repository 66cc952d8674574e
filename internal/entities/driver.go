package entities

import "time"

type Driver struct {
	ID              int64
	Name            string
	Phone           string
	Email           string
	Vehicle         Vehicle
	Longitude       float64
	Latitude        float64
	Status          DriverStatusType
	Rating          float64
	TotalDeliveries int64
	TotalEarnings   int64
	IsActive        bool
	LastActive      time.Time
	CurrentDelivery *CurrentDelivery
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Vehicle struct {
	Type         VehicleType
	LicensePlate string
	Model        string
	Color        string
}

type VehicleType string

const (
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleCar        VehicleType = "car"
	VehicleTruck      VehicleType = "truck"
)

const DefaultVehicleType = VehicleMotorcycle

func (t VehicleType) String() string {
	return string(t)
}

type DriverStatusType string

const (
	DriverAvailable  DriverStatusType = "available"
	DriverBusy       DriverStatusType = "busy"
	DriverOffline    DriverStatusType = "offline"
	DriverOnDelivery DriverStatusType = "on_delivery"
)

const DefaultDriverStatus = DriverAvailable

func (s DriverStatusType) String() string {
	return string(s)
}

func (s DriverStatusType) Valid() bool {
	switch s {
	case DriverAvailable, DriverBusy, DriverOffline, DriverOnDelivery:
		return true
	}
	return false
}

// CurrentDelivery заполняется только при статусе on_delivery.
type CurrentDelivery struct {
	DeliveryID string
	OrderID    string
}

type DriverModify struct {
	ID                   *int64
	Name                 *string
	Phone                *string
	Email                *string
	Vehicle              *Vehicle
	Longitude            *float64
	Latitude             *float64
	Status               *DriverStatusType
	Rating               *float64
	IsActive             *bool
	CurrentDelivery      *CurrentDelivery
	ClearCurrentDelivery bool
	AddDeliveries        int64
	AddEarnings          int64
}
