// Package events описывает контракты событий саги оформления заказа.
//
// Все непрозрачные идентификаторы сериализуются строками, временные метки
// передаются строкой RFC3339. Kafka-ключом сообщения служит идентификатор
// сущности, о которой говорит событие, — так сохраняется порядок per-key.
package events

import "time"

const (
	TopicUserEvents     = "user-events"
	TopicOrderEvents    = "order-events"
	TopicDeliveryEvents = "delivery-events"
)

const (
	TypeUserCheckout          = "UserCheckout"
	TypeOrderCreated          = "OrderCreated"
	TypeOrderStatusUpdated    = "OrderStatusUpdated"
	TypePaymentStatusUpdated  = "PaymentStatusUpdated"
	TypeDeliveryCreated       = "DeliveryCreated"
	TypeDriverAssigned        = "DriverAssigned"
	TypeDeliveryStatusUpdated = "DeliveryStatusUpdated"
)

// Event реализуют все типы событий; Key возвращает ключ партиционирования.
type Event interface {
	Type() string
	Key() string
}

type Item struct {
	ProductID string           `json:"productId"`
	Quantity  int64            `json:"quantity"`
	Price     int64            `json:"price"`
	Snapshot  *ProductSnapshot `json:"productSnapshot,omitempty"`
}

type ProductSnapshot struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	Category    string   `json:"category,omitempty"`
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

type Location struct {
	Type         string  `json:"type"`
	Address      string  `json:"address"`
	Longitude    float64 `json:"longitude"`
	Latitude     float64 `json:"latitude"`
	ContactName  string  `json:"contactName,omitempty"`
	ContactPhone string  `json:"contactPhone,omitempty"`
	Instructions string  `json:"instructions,omitempty"`
}

// UserCheckout публикуется cart-service в user-events.
type UserCheckout struct {
	EventType       string          `json:"eventType"`
	UserID          int64           `json:"userId"`
	CartID          string          `json:"cartId"`
	Items           []Item          `json:"items"`
	TotalItems      int64           `json:"totalItems"`
	TotalPrice      int64           `json:"totalPrice"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	CustomerInfo    CustomerInfo    `json:"customerInfo"`
	Timestamp       string          `json:"timestamp"`
}

func (e UserCheckout) Type() string { return TypeUserCheckout }
func (e UserCheckout) Key() string  { return e.CartID }

// OrderCreated публикуется order-service в order-events.
type OrderCreated struct {
	EventType       string          `json:"eventType"`
	OrderID         string          `json:"orderId"`
	OrderNumber     string          `json:"orderNumber"`
	UserID          int64           `json:"userId"`
	CartID          string          `json:"cartId"`
	TotalPrice      int64           `json:"totalPrice"`
	Items           []Item          `json:"items"`
	CustomerInfo    CustomerInfo    `json:"customerInfo"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	CreatedAt       string          `json:"createdAt"`
	Timestamp       string          `json:"timestamp"`
}

func (e OrderCreated) Type() string { return TypeOrderCreated }
func (e OrderCreated) Key() string  { return e.OrderID }

type OrderStatusUpdated struct {
	EventType   string `json:"eventType"`
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	UserID      int64  `json:"userId"`
	OldStatus   string `json:"oldStatus"`
	NewStatus   string `json:"newStatus"`
	Timestamp   string `json:"timestamp"`
}

func (e OrderStatusUpdated) Type() string { return TypeOrderStatusUpdated }
func (e OrderStatusUpdated) Key() string  { return e.OrderID }

type PaymentStatusUpdated struct {
	EventType   string `json:"eventType"`
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	UserID      int64  `json:"userId"`
	OldStatus   string `json:"oldStatus"`
	NewStatus   string `json:"newStatus"`
	TotalPrice  int64  `json:"totalPrice"`
	Timestamp   string `json:"timestamp"`
}

func (e PaymentStatusUpdated) Type() string { return TypePaymentStatusUpdated }
func (e PaymentStatusUpdated) Key() string  { return e.OrderID }

// DeliveryCreated публикуется delivery-service в delivery-events.
type DeliveryCreated struct {
	EventType             string   `json:"eventType"`
	DeliveryID            string   `json:"deliveryId"`
	DeliveryNumber        string   `json:"deliveryNumber"`
	OrderID               string   `json:"orderId"`
	OrderNumber           string   `json:"orderNumber"`
	UserID                int64    `json:"userId"`
	PickupLocation        Location `json:"pickupLocation"`
	DeliveryLocation      Location `json:"deliveryLocation"`
	Priority              string   `json:"priority"`
	DeliveryFee           int64    `json:"deliveryFee"`
	EstimatedPickupTime   string   `json:"estimatedPickupTime,omitempty"`
	EstimatedDeliveryTime string   `json:"estimatedDeliveryTime,omitempty"`
	Timestamp             string   `json:"timestamp"`
}

func (e DeliveryCreated) Type() string { return TypeDeliveryCreated }
func (e DeliveryCreated) Key() string  { return e.DeliveryID }

type DriverAssigned struct {
	EventType             string `json:"eventType"`
	DeliveryID            string `json:"deliveryId"`
	DeliveryNumber        string `json:"deliveryNumber"`
	OrderID               string `json:"orderId"`
	OrderNumber           string `json:"orderNumber"`
	DriverID              string `json:"driverId"`
	DriverName            string `json:"driverName"`
	DriverPhone           string `json:"driverPhone"`
	EstimatedPickupTime   string `json:"estimatedPickupTime,omitempty"`
	EstimatedDeliveryTime string `json:"estimatedDeliveryTime,omitempty"`
	Timestamp             string `json:"timestamp"`
}

func (e DriverAssigned) Type() string { return TypeDriverAssigned }
func (e DriverAssigned) Key() string  { return e.DeliveryID }

type DeliveryStatusUpdated struct {
	EventType      string `json:"eventType"`
	DeliveryID     string `json:"deliveryId"`
	DeliveryNumber string `json:"deliveryNumber"`
	OrderID        string `json:"orderId"`
	OrderNumber    string `json:"orderNumber"`
	DriverID       string `json:"driverId,omitempty"`
	OldStatus      string `json:"oldStatus"`
	NewStatus      string `json:"newStatus"`
	Timestamp      string `json:"timestamp"`
}

func (e DeliveryStatusUpdated) Type() string { return TypeDeliveryStatusUpdated }
func (e DeliveryStatusUpdated) Key() string  { return e.DeliveryID }

// Now форматирует временную метку события.
func Now(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
