package dto

import (
	"time"

	"github.com/peterPain01/SA-Microserices/internal/entities"
)

type Delivery struct {
	ID                    string               `json:"id"`
	DeliveryNumber        string               `json:"deliveryNumber"`
	OrderID               string               `json:"orderId"`
	OrderNumber           string               `json:"orderNumber"`
	UserID                int64                `json:"userId"`
	DriverID              *int64               `json:"driverId,omitempty"`
	PickupLocation        Location             `json:"pickupLocation"`
	DeliveryLocation      Location             `json:"deliveryLocation"`
	Status                string               `json:"status"`
	Priority              string               `json:"priority"`
	Distance              int64                `json:"distance"`
	DeliveryFee           int64                `json:"deliveryFee"`
	DriverEarnings        int64                `json:"driverEarnings"`
	StatusHistory         []StatusHistoryEntry `json:"statusHistory"`
	EstimatedPickupTime   *time.Time           `json:"estimatedPickupTime,omitempty"`
	EstimatedDeliveryTime *time.Time           `json:"estimatedDeliveryTime,omitempty"`
	ActualPickupTime      *time.Time           `json:"actualPickupTime,omitempty"`
	ActualDeliveryTime    *time.Time           `json:"actualDeliveryTime,omitempty"`
	CreatedAt             time.Time            `json:"createdAt"`
	UpdatedAt             time.Time            `json:"updatedAt"`
}

type Location struct {
	Address      string  `json:"address"`
	Longitude    float64 `json:"longitude"`
	Latitude     float64 `json:"latitude"`
	ContactName  string  `json:"contactName,omitempty"`
	ContactPhone string  `json:"contactPhone,omitempty"`
	Instructions string  `json:"instructions,omitempty"`
}

type StatusHistoryEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Longitude *float64  `json:"longitude,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	UpdatedBy string    `json:"updatedBy"`
}

type DeliveryStatusUpdate struct {
	Status    string   `json:"status"`
	Longitude *float64 `json:"longitude,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	UpdatedBy string   `json:"updatedBy,omitempty"`
}

type DeliveryStat struct {
	Status        string `json:"status"`
	Count         int64  `json:"count"`
	TotalFee      int64  `json:"totalFee"`
	TotalEarnings int64  `json:"totalEarnings"`
}

func FromDelivery(entity *entities.Delivery) Delivery {
	history := make([]StatusHistoryEntry, 0, len(entity.StatusHistory))
	for _, entry := range entity.StatusHistory {
		history = append(history, StatusHistoryEntry{
			Status:    entry.Status.String(),
			Timestamp: entry.Timestamp,
			Longitude: entry.Longitude,
			Latitude:  entry.Latitude,
			Notes:     entry.Notes,
			UpdatedBy: entry.UpdatedBy.String(),
		})
	}

	return Delivery{
		ID:                    entity.ID,
		DeliveryNumber:        entity.DeliveryNumber,
		OrderID:               entity.OrderID,
		OrderNumber:           entity.OrderNumber,
		UserID:                entity.UserID,
		DriverID:              entity.DriverID,
		PickupLocation:        fromLocation(entity.PickupLocation),
		DeliveryLocation:      fromLocation(entity.DeliveryLocation),
		Status:                entity.Status.String(),
		Priority:              entity.Priority.String(),
		Distance:              entity.Distance,
		DeliveryFee:           entity.DeliveryFee,
		DriverEarnings:        entity.DriverEarnings,
		StatusHistory:         history,
		EstimatedPickupTime:   entity.EstimatedPickupTime,
		EstimatedDeliveryTime: entity.EstimatedDeliveryTime,
		ActualPickupTime:      entity.ActualPickupTime,
		ActualDeliveryTime:    entity.ActualDeliveryTime,
		CreatedAt:             entity.CreatedAt,
		UpdatedAt:             entity.UpdatedAt,
	}
}

func FromDeliveries(deliveries []entities.Delivery) []Delivery {
	result := make([]Delivery, 0, len(deliveries))
	for i := range deliveries {
		result = append(result, FromDelivery(&deliveries[i]))
	}
	return result
}

func FromDeliveryStats(stats []entities.DeliveryStat) []DeliveryStat {
	result := make([]DeliveryStat, 0, len(stats))
	for _, stat := range stats {
		result = append(result, DeliveryStat{
			Status:        stat.Status.String(),
			Count:         stat.Count,
			TotalFee:      stat.TotalFee,
			TotalEarnings: stat.TotalEarnings,
		})
	}
	return result
}

func fromLocation(location entities.Location) Location {
	return Location{
		Address:      location.Address,
		Longitude:    location.Longitude,
		Latitude:     location.Latitude,
		ContactName:  location.ContactName,
		ContactPhone: location.ContactPhone,
		Instructions: location.Instructions,
	}
}
