package dto

import (
	"time"

	"github.com/peterPain01/SA-Microserices/internal/entities"
)

type Order struct {
	ID                string          `json:"id"`
	OrderNumber       string          `json:"orderNumber"`
	UserID            int64           `json:"userId"`
	CartID            string          `json:"cartId"`
	Items             []OrderItem     `json:"items"`
	TotalItems        int64           `json:"totalItems"`
	Subtotal          int64           `json:"subtotal"`
	ShippingFee       int64           `json:"shippingFee"`
	Tax               int64           `json:"tax"`
	TotalPrice        int64           `json:"totalPrice"`
	ShippingAddress   ShippingAddress `json:"shippingAddress"`
	CustomerInfo      CustomerInfo    `json:"customerInfo"`
	PaymentMethod     string          `json:"paymentMethod"`
	PaymentStatus     string          `json:"paymentStatus"`
	Status            string          `json:"status"`
	Notes             string          `json:"notes,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimatedDelivery,omitempty"`
	ActualDelivery    *time.Time      `json:"actualDelivery,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

type OrderItem struct {
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	Price     int64           `json:"price"`
	Snapshot  ProductSnapshot `json:"productSnapshot"`
}

type OrderCreate struct {
	UserID          int64           `json:"userId"`
	CartID          string          `json:"cartId"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	CustomerInfo    CustomerInfo    `json:"customerInfo"`
	PaymentMethod   string          `json:"paymentMethod"`
	Notes           string          `json:"notes,omitempty"`
}

type OrderStatusUpdate struct {
	Status string `json:"status"`
}

type PaymentStatusUpdate struct {
	PaymentStatus string `json:"paymentStatus"`
}

func FromOrder(entity *entities.Order) Order {
	items := make([]OrderItem, 0, len(entity.Items))
	for _, item := range entity.Items {
		items = append(items, OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Snapshot:  fromSnapshot(item.Snapshot),
		})
	}

	return Order{
		ID:          entity.ID,
		OrderNumber: entity.OrderNumber,
		UserID:      entity.UserID,
		CartID:      entity.CartID,
		Items:       items,
		TotalItems:  entity.TotalItems,
		Subtotal:    entity.Subtotal,
		ShippingFee: entity.ShippingFee,
		Tax:         entity.Tax,
		TotalPrice:  entity.TotalPrice,
		ShippingAddress: ShippingAddress{
			FullName:     entity.ShippingAddress.FullName,
			Phone:        entity.ShippingAddress.Phone,
			Address:      entity.ShippingAddress.Address,
			City:         entity.ShippingAddress.City,
			State:        entity.ShippingAddress.State,
			ZipCode:      entity.ShippingAddress.ZipCode,
			Country:      entity.ShippingAddress.Country,
			Longitude:    entity.ShippingAddress.Longitude,
			Latitude:     entity.ShippingAddress.Latitude,
			Instructions: entity.ShippingAddress.Instructions,
		},
		CustomerInfo: CustomerInfo{
			Name:  entity.CustomerInfo.Name,
			Email: entity.CustomerInfo.Email,
			Phone: entity.CustomerInfo.Phone,
		},
		PaymentMethod:     entity.PaymentMethod.String(),
		PaymentStatus:     entity.PaymentStatus.String(),
		Status:            entity.Status.String(),
		Notes:             entity.Notes,
		EstimatedDelivery: entity.EstimatedDelivery,
		ActualDelivery:    entity.ActualDelivery,
		CreatedAt:         entity.CreatedAt,
		UpdatedAt:         entity.UpdatedAt,
	}
}

func FromOrders(orders []entities.Order) []Order {
	result := make([]Order, 0, len(orders))
	for i := range orders {
		result = append(result, FromOrder(&orders[i]))
	}
	return result
}
