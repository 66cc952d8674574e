package delivery

import (
	"encoding/json"
	"fmt"

	"github.com/peterPain01/SA-Microserices/internal/entities"
)

func ToDomain(d *DeliveryDB) (*entities.Delivery, error) {
	if d == nil {
		return nil, nil
	}

	pickup, err := locationToDomain(d.PickupLocation)
	if err != nil {
		return nil, fmt.Errorf("decode pickup location: %w", err)
	}
	dropoff, err := locationToDomain(d.DeliveryLocation)
	if err != nil {
		return nil, fmt.Errorf("decode delivery location: %w", err)
	}

	var historyJSON []historyEntryJSON
	if len(d.StatusHistory) > 0 {
		if err := json.Unmarshal(d.StatusHistory, &historyJSON); err != nil {
			return nil, fmt.Errorf("decode status history: %w", err)
		}
	}
	history := make([]entities.StatusHistoryEntry, 0, len(historyJSON))
	for _, entry := range historyJSON {
		history = append(history, entities.StatusHistoryEntry{
			Status:    entities.DeliveryStatusType(entry.Status),
			Timestamp: entry.Timestamp,
			Longitude: entry.Longitude,
			Latitude:  entry.Latitude,
			Notes:     entry.Notes,
			UpdatedBy: entities.ActorType(entry.UpdatedBy),
		})
	}

	return &entities.Delivery{
		ID:                    d.ID,
		DeliveryNumber:        d.DeliveryNumber,
		OrderID:               d.OrderID,
		OrderNumber:           d.OrderNumber,
		UserID:                d.UserID,
		DriverID:              d.DriverID,
		PickupLocation:        pickup,
		DeliveryLocation:      dropoff,
		Status:                entities.DeliveryStatusType(d.Status),
		Priority:              entities.DeliveryPriorityType(d.Priority),
		Distance:              d.Distance,
		DeliveryFee:           d.DeliveryFee,
		DriverEarnings:        d.DriverEarnings,
		StatusHistory:         history,
		EstimatedPickupTime:   d.EstimatedPickupTime,
		EstimatedDeliveryTime: d.EstimatedDeliveryTime,
		ActualPickupTime:      d.ActualPickupTime,
		ActualDeliveryTime:    d.ActualDeliveryTime,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}, nil
}

func locationToDomain(raw []byte) (entities.Location, error) {
	var location locationJSON
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &location); err != nil {
			return entities.Location{}, err
		}
	}
	return entities.Location{
		Address:      location.Address,
		Longitude:    location.Longitude,
		Latitude:     location.Latitude,
		ContactName:  location.ContactName,
		ContactPhone: location.ContactPhone,
		Instructions: location.Instructions,
	}, nil
}

func locationFromDomain(location entities.Location) ([]byte, error) {
	raw, err := json.Marshal(locationJSON{
		Address:      location.Address,
		Longitude:    location.Longitude,
		Latitude:     location.Latitude,
		ContactName:  location.ContactName,
		ContactPhone: location.ContactPhone,
		Instructions: location.Instructions,
	})
	if err != nil {
		return nil, fmt.Errorf("encode location: %w", err)
	}
	return raw, nil
}

func historyFromDomain(history []entities.StatusHistoryEntry) ([]byte, error) {
	historyJSON := make([]historyEntryJSON, 0, len(history))
	for _, entry := range history {
		historyJSON = append(historyJSON, historyEntryJSON{
			Status:    entry.Status.String(),
			Timestamp: entry.Timestamp,
			Longitude: entry.Longitude,
			Latitude:  entry.Latitude,
			Notes:     entry.Notes,
			UpdatedBy: entry.UpdatedBy.String(),
		})
	}

	raw, err := json.Marshal(historyJSON)
	if err != nil {
		return nil, fmt.Errorf("encode status history: %w", err)
	}
	return raw, nil
}

func historyEntryFromDomain(entry entities.StatusHistoryEntry) ([]byte, error) {
	raw, err := json.Marshal(historyEntryJSON{
		Status:    entry.Status.String(),
		Timestamp: entry.Timestamp,
		Longitude: entry.Longitude,
		Latitude:  entry.Latitude,
		Notes:     entry.Notes,
		UpdatedBy: entry.UpdatedBy.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode history entry: %w", err)
	}
	return raw, nil
}
