package entities

import "time"

type Order struct {
	ID                string
	OrderNumber       string
	UserID            int64
	CartID            string
	Items             []OrderItem
	TotalItems        int64
	Subtotal          int64
	ShippingFee       int64
	Tax               int64
	TotalPrice        int64
	ShippingAddress   ShippingAddress
	CustomerInfo      CustomerInfo
	PaymentMethod     PaymentMethodType
	PaymentStatus     PaymentStatusType
	Status            OrderStatusType
	Notes             string
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type OrderItem struct {
	ProductID string
	Quantity  int64
	Price     int64
	Snapshot  ProductSnapshot
}

type ShippingAddress struct {
	FullName     string
	Phone        string
	Address      string
	City         string
	State        string
	ZipCode      string
	Country      string
	Longitude    float64
	Latitude     float64
	Instructions string
}

type CustomerInfo struct {
	Name  string
	Email string
	Phone string
}

type OrderStatusType string

const (
	OrderPending    OrderStatusType = "pending"
	OrderConfirmed  OrderStatusType = "confirmed"
	OrderProcessing OrderStatusType = "processing"
	OrderShipped    OrderStatusType = "shipped"
	OrderDelivered  OrderStatusType = "delivered"
	OrderCancelled  OrderStatusType = "cancelled"
)

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type PaymentStatusType string

const (
	PaymentPending  PaymentStatusType = "pending"
	PaymentPaid     PaymentStatusType = "paid"
	PaymentFailed   PaymentStatusType = "failed"
	PaymentRefunded PaymentStatusType = "refunded"
)

func (s PaymentStatusType) String() string {
	return string(s)
}

func (s PaymentStatusType) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

type PaymentMethodType string

const (
	PaymentCOD          PaymentMethodType = "cod"
	PaymentBankTransfer PaymentMethodType = "bank_transfer"
	PaymentCreditCard   PaymentMethodType = "credit_card"
	PaymentEWallet      PaymentMethodType = "e_wallet"
)

func (m PaymentMethodType) String() string {
	return string(m)
}

func (m PaymentMethodType) Valid() bool {
	switch m {
	case PaymentCOD, PaymentBankTransfer, PaymentCreditCard, PaymentEWallet:
		return true
	}
	return false
}

type OrderModify struct {
	ID                *string
	Status            *OrderStatusType
	PaymentStatus     *PaymentStatusType
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time
}
