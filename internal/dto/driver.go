package dto

import (
	"time"

	"github.com/peterPain01/SA-Microserices/internal/entities"
)

type Driver struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	Phone           string           `json:"phone"`
	Email           string           `json:"email"`
	Vehicle         Vehicle          `json:"vehicle"`
	Longitude       float64          `json:"longitude"`
	Latitude        float64          `json:"latitude"`
	Status          string           `json:"status"`
	Rating          float64          `json:"rating"`
	TotalDeliveries int64            `json:"totalDeliveries"`
	TotalEarnings   int64            `json:"totalEarnings"`
	IsActive        bool             `json:"isActive"`
	LastActive      time.Time        `json:"lastActive"`
	CurrentDelivery *CurrentDelivery `json:"currentDelivery,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

type Vehicle struct {
	Type         string `json:"type"`
	LicensePlate string `json:"licensePlate"`
	Model        string `json:"model,omitempty"`
	Color        string `json:"color,omitempty"`
}

type CurrentDelivery struct {
	DeliveryID string `json:"deliveryId"`
	OrderID    string `json:"orderId"`
}

type DriverCreate struct {
	Name      string   `json:"name"`
	Phone     string   `json:"phone"`
	Email     string   `json:"email"`
	Vehicle   Vehicle  `json:"vehicle"`
	Longitude *float64 `json:"longitude,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
}

type DriverCreateResponse struct {
	ID int64 `json:"id"`
}

type DriverStatusUpdate struct {
	Status string `json:"status"`
}

type DriverLocationUpdate struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

func FromDriver(entity *entities.Driver) Driver {
	var current *CurrentDelivery
	if entity.CurrentDelivery != nil {
		current = &CurrentDelivery{
			DeliveryID: entity.CurrentDelivery.DeliveryID,
			OrderID:    entity.CurrentDelivery.OrderID,
		}
	}

	return Driver{
		ID:    entity.ID,
		Name:  entity.Name,
		Phone: entity.Phone,
		Email: entity.Email,
		Vehicle: Vehicle{
			Type:         entity.Vehicle.Type.String(),
			LicensePlate: entity.Vehicle.LicensePlate,
			Model:        entity.Vehicle.Model,
			Color:        entity.Vehicle.Color,
		},
		Longitude:       entity.Longitude,
		Latitude:        entity.Latitude,
		Status:          entity.Status.String(),
		Rating:          entity.Rating,
		TotalDeliveries: entity.TotalDeliveries,
		TotalEarnings:   entity.TotalEarnings,
		IsActive:        entity.IsActive,
		LastActive:      entity.LastActive,
		CurrentDelivery: current,
		CreatedAt:       entity.CreatedAt,
		UpdatedAt:       entity.UpdatedAt,
	}
}

func FromDrivers(drivers []entities.Driver) []Driver {
	result := make([]Driver, 0, len(drivers))
	for i := range drivers {
		result = append(result, FromDriver(&drivers[i]))
	}
	return result
}
