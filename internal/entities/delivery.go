package entities

import "time"

type Delivery struct {
	ID                    string
	DeliveryNumber        string
	OrderID               string
	OrderNumber           string
	UserID                int64
	DriverID              *int64
	PickupLocation        Location
	DeliveryLocation      Location
	Status                DeliveryStatusType
	Priority              DeliveryPriorityType
	Distance              int64
	DeliveryFee           int64
	DriverEarnings        int64
	StatusHistory         []StatusHistoryEntry
	EstimatedPickupTime   *time.Time
	EstimatedDeliveryTime *time.Time
	ActualPickupTime      *time.Time
	ActualDeliveryTime    *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type Location struct {
	Address      string
	Longitude    float64
	Latitude     float64
	ContactName  string
	ContactPhone string
	Instructions string
}

type StatusHistoryEntry struct {
	Status    DeliveryStatusType
	Timestamp time.Time
	Longitude *float64
	Latitude  *float64
	Notes     string
	UpdatedBy ActorType
}

type ActorType string

const (
	ActorSystem   ActorType = "system"
	ActorDriver   ActorType = "driver"
	ActorCustomer ActorType = "customer"
	ActorAdmin    ActorType = "admin"
)

func (a ActorType) String() string {
	return string(a)
}

type DeliveryStatusType string

const (
	DeliveryPending   DeliveryStatusType = "pending"
	DeliveryAssigned  DeliveryStatusType = "assigned"
	DeliveryPickedUp  DeliveryStatusType = "picked_up"
	DeliveryInTransit DeliveryStatusType = "in_transit"
	DeliveryDelivered DeliveryStatusType = "delivered"
	DeliveryFailed    DeliveryStatusType = "failed"
	DeliveryCancelled DeliveryStatusType = "cancelled"
)

func (s DeliveryStatusType) String() string {
	return string(s)
}

func (s DeliveryStatusType) Valid() bool {
	switch s {
	case DeliveryPending, DeliveryAssigned, DeliveryPickedUp, DeliveryInTransit,
		DeliveryDelivered, DeliveryFailed, DeliveryCancelled:
		return true
	}
	return false
}

// Terminal сообщает, допускает ли статус дальнейшие переходы.
func (s DeliveryStatusType) Terminal() bool {
	return s == DeliveryDelivered || s == DeliveryCancelled || s == DeliveryFailed
}

type DeliveryPriorityType string

const (
	PriorityLow    DeliveryPriorityType = "low"
	PriorityNormal DeliveryPriorityType = "normal"
	PriorityHigh   DeliveryPriorityType = "high"
	PriorityUrgent DeliveryPriorityType = "urgent"
)

func (p DeliveryPriorityType) String() string {
	return string(p)
}

// PriorityForOrderValue распределяет заказы по приоритетам доставки
// в зависимости от суммы заказа (VND).
func PriorityForOrderValue(totalPrice int64) DeliveryPriorityType {
	switch {
	case totalPrice >= 1_000_000:
		return PriorityUrgent
	case totalPrice >= 500_000:
		return PriorityHigh
	case totalPrice >= 200_000:
		return PriorityNormal
	default:
		return PriorityLow
	}
}

// DeliveryStat — агрегат по статусу для отчёта delivery-service.
type DeliveryStat struct {
	Status        DeliveryStatusType
	Count         int64
	TotalFee      int64
	TotalEarnings int64
}

type DeliveryModify struct {
	ID                    *string
	DriverID              *int64
	ClearDriver           bool
	Status                *DeliveryStatusType
	HistoryEntry          *StatusHistoryEntry
	EstimatedPickupTime   *time.Time
	EstimatedDeliveryTime *time.Time
	ActualPickupTime      *time.Time
	ActualDeliveryTime    *time.Time
}
