package driver

import (
	"encoding/json"
	"fmt"

	"github.com/peterPain01/SA-Microserices/internal/entities"
)

func ToDomain(d *DriverDB) (*entities.Driver, error) {
	if d == nil {
		return nil, nil
	}

	var vehicle vehicleJSON
	if len(d.Vehicle) > 0 {
		if err := json.Unmarshal(d.Vehicle, &vehicle); err != nil {
			return nil, fmt.Errorf("decode vehicle: %w", err)
		}
	}

	var currentDelivery *entities.CurrentDelivery
	if len(d.CurrentDelivery) > 0 {
		var current currentDeliveryJSON
		if err := json.Unmarshal(d.CurrentDelivery, &current); err != nil {
			return nil, fmt.Errorf("decode current delivery: %w", err)
		}
		currentDelivery = &entities.CurrentDelivery{
			DeliveryID: current.DeliveryID,
			OrderID:    current.OrderID,
		}
	}

	return &entities.Driver{
		ID:    d.ID,
		Name:  d.Name,
		Phone: d.Phone,
		Email: d.Email,
		Vehicle: entities.Vehicle{
			Type:         entities.VehicleType(vehicle.Type),
			LicensePlate: vehicle.LicensePlate,
			Model:        vehicle.Model,
			Color:        vehicle.Color,
		},
		Longitude:       d.Longitude,
		Latitude:        d.Latitude,
		Status:          entities.DriverStatusType(d.Status),
		Rating:          d.Rating,
		TotalDeliveries: d.TotalDeliveries,
		TotalEarnings:   d.TotalEarnings,
		IsActive:        d.IsActive,
		LastActive:      d.LastActive,
		CurrentDelivery: currentDelivery,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}, nil
}

func vehicleFromDomain(vehicle entities.Vehicle) ([]byte, error) {
	raw, err := json.Marshal(vehicleJSON{
		Type:         vehicle.Type.String(),
		LicensePlate: vehicle.LicensePlate,
		Model:        vehicle.Model,
		Color:        vehicle.Color,
	})
	if err != nil {
		return nil, fmt.Errorf("encode vehicle: %w", err)
	}
	return raw, nil
}

func currentDeliveryFromDomain(current entities.CurrentDelivery) ([]byte, error) {
	raw, err := json.Marshal(currentDeliveryJSON{
		DeliveryID: current.DeliveryID,
		OrderID:    current.OrderID,
	})
	if err != nil {
		return nil, fmt.Errorf("encode current delivery: %w", err)
	}
	return raw, nil
}
