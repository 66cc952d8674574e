package cart

import (
	"encoding/json"
	"fmt"

	"github.com/peterPain01/SA-Microserices/internal/entities"
)

func ToDomain(c *CartDB) (*entities.Cart, error) {
	if c == nil {
		return nil, nil
	}

	var itemsJSON []cartItemJSON
	if len(c.Items) > 0 {
		if err := json.Unmarshal(c.Items, &itemsJSON); err != nil {
			return nil, fmt.Errorf("decode cart items: %w", err)
		}
	}

	items := make([]entities.CartItem, 0, len(itemsJSON))
	for _, item := range itemsJSON {
		items = append(items, entities.CartItem{
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

	return &entities.Cart{
		ID:         c.ID,
		UserID:     c.UserID,
		Items:      items,
		TotalItems: c.TotalItems,
		TotalPrice: c.TotalPrice,
		Status:     entities.CartStatusType(c.Status),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}, nil
}

func itemsFromDomain(items []entities.CartItem) ([]byte, error) {
	itemsJSON := make([]cartItemJSON, 0, len(items))
	for _, item := range items {
		itemsJSON = append(itemsJSON, cartItemJSON{
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
		return nil, fmt.Errorf("encode cart items: %w", err)
	}
	return raw, nil
}
