package dto

import (
	"time"

	"github.com/peterPain01/SA-Microserices/internal/entities"
	"github.com/peterPain01/SA-Microserices/internal/service/cart"
)

type Cart struct {
	ID         string     `json:"id"`
	UserID     int64      `json:"userId"`
	Items      []CartItem `json:"items"`
	TotalItems int64      `json:"totalItems"`
	TotalPrice int64      `json:"totalPrice"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type CartItem struct {
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	Price     int64           `json:"price"`
	Snapshot  ProductSnapshot `json:"productSnapshot"`
}

type ProductSnapshot struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	Category    string   `json:"category,omitempty"`
}

type CartItemAdd struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

type CartItemUpdate struct {
	Quantity int64 `json:"quantity"`
}

type CheckoutRequest struct {
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	CustomerInfo    CustomerInfo    `json:"customerInfo"`
	PaymentMethod   string          `json:"paymentMethod"`
}

type ShippingAddress struct {
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

type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type UnavailableItem struct {
	ProductID         string `json:"productId"`
	Name              string `json:"name"`
	RequestedQuantity int64  `json:"requestedQuantity"`
	AvailableStock    int64  `json:"availableStock"`
}

func FromCart(entity *entities.Cart) Cart {
	items := make([]CartItem, 0, len(entity.Items))
	for _, item := range entity.Items {
		items = append(items, CartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Snapshot:  fromSnapshot(item.Snapshot),
		})
	}

	return Cart{
		ID:         entity.ID,
		UserID:     entity.UserID,
		Items:      items,
		TotalItems: entity.TotalItems,
		TotalPrice: entity.TotalPrice,
		Status:     entity.Status.String(),
		CreatedAt:  entity.CreatedAt,
		UpdatedAt:  entity.UpdatedAt,
	}
}

func FromUnavailableItems(unavailable []cart.UnavailableItem) []UnavailableItem {
	items := make([]UnavailableItem, 0, len(unavailable))
	for _, item := range unavailable {
		items = append(items, UnavailableItem{
			ProductID:         item.ProductID,
			Name:              item.Name,
			RequestedQuantity: item.RequestedQuantity,
			AvailableStock:    item.AvailableStock,
		})
	}
	return items
}

func fromSnapshot(snapshot entities.ProductSnapshot) ProductSnapshot {
	return ProductSnapshot{
		Name:        snapshot.Name,
		Description: snapshot.Description,
		Images:      snapshot.Images,
		Category:    snapshot.Category,
	}
}
