package order

import (
	"encoding/json"
	"fmt"

	"github.com/peterPain01/SA-Microserices/internal/entities"
)

func ToDomain(o *OrderDB) (*entities.Order, error) {
	if o == nil {
		return nil, nil
	}

	var itemsJSON []orderItemJSON
	if len(o.Items) > 0 {
		if err := json.Unmarshal(o.Items, &itemsJSON); err != nil {
			return nil, fmt.Errorf("decode order items: %w", err)
		}
	}
	items := make([]entities.OrderItem, 0, len(itemsJSON))
	for _, item := range itemsJSON {
		items = append(items, entities.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Snapshot: entities.ProductSnapshot{
				Name:        item.Snapshot.Name,
				Description: item.Snapshot.Description,
				Images:      item.Snapshot.Images,
				Category:    item.Snapshot.Category,
			},
		})
	}

	var addressJSON shippingAddressJSON
	if len(o.ShippingAddress) > 0 {
		if err := json.Unmarshal(o.ShippingAddress, &addressJSON); err != nil {
			return nil, fmt.Errorf("decode shipping address: %w", err)
		}
	}

	var customerJSON customerInfoJSON
	if len(o.CustomerInfo) > 0 {
		if err := json.Unmarshal(o.CustomerInfo, &customerJSON); err != nil {
			return nil, fmt.Errorf("decode customer info: %w", err)
		}
	}

	return &entities.Order{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		CartID:      o.CartID,
		Items:       items,
		TotalItems:  o.TotalItems,
		Subtotal:    o.Subtotal,
		ShippingFee: o.ShippingFee,
		Tax:         o.Tax,
		TotalPrice:  o.TotalPrice,
		ShippingAddress: entities.ShippingAddress{
			FullName:     addressJSON.FullName,
			Phone:        addressJSON.Phone,
			Address:      addressJSON.Address,
			City:         addressJSON.City,
			State:        addressJSON.State,
			ZipCode:      addressJSON.ZipCode,
			Country:      addressJSON.Country,
			Longitude:    addressJSON.Longitude,
			Latitude:     addressJSON.Latitude,
			Instructions: addressJSON.Instructions,
		},
		CustomerInfo: entities.CustomerInfo{
			Name:  customerJSON.Name,
			Email: customerJSON.Email,
			Phone: customerJSON.Phone,
		},
		PaymentMethod:     entities.PaymentMethodType(o.PaymentMethod),
		PaymentStatus:     entities.PaymentStatusType(o.PaymentStatus),
		Status:            entities.OrderStatusType(o.Status),
		Notes:             o.Notes,
		EstimatedDelivery: o.EstimatedDelivery,
		ActualDelivery:    o.ActualDelivery,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}, nil
}

func itemsFromDomain(items []entities.OrderItem) ([]byte, error) {
	itemsJSON := make([]orderItemJSON, 0, len(items))
	for _, item := range items {
		itemsJSON = append(itemsJSON, orderItemJSON{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Snapshot: productSnapshotJSON{
				Name:        item.Snapshot.Name,
				Description: item.Snapshot.Description,
				Images:      item.Snapshot.Images,
				Category:    item.Snapshot.Category,
			},
		})
	}

	raw, err := json.Marshal(itemsJSON)
	if err != nil {
		return nil, fmt.Errorf("encode order items: %w", err)
	}
	return raw, nil
}

func addressFromDomain(address entities.ShippingAddress) ([]byte, error) {
	raw, err := json.Marshal(shippingAddressJSON{
		FullName:     address.FullName,
		Phone:        address.Phone,
		Address:      address.Address,
		City:         address.City,
		State:        address.State,
		ZipCode:      address.ZipCode,
		Country:      address.Country,
		Longitude:    address.Longitude,
		Latitude:     address.Latitude,
		Instructions: address.Instructions,
	})
	if err != nil {
		return nil, fmt.Errorf("encode shipping address: %w", err)
	}
	return raw, nil
}

func customerFromDomain(customer entities.CustomerInfo) ([]byte, error) {
	raw, err := json.Marshal(customerInfoJSON{
		Name:  customer.Name,
		Email: customer.Email,
		Phone: customer.Phone,
	})
	if err != nil {
		return nil, fmt.Errorf("encode customer info: %w", err)
	}
	return raw, nil
}
