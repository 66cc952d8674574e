package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/peterPain01/SA-Microserices/internal/entities"
	"github.com/peterPain01/SA-Microserices/internal/events"
	"github.com/peterPain01/SA-Microserices/internal/pkg/refnum"
	"github.com/peterPain01/SA-Microserices/pkg/logger"
)

const (
	freeShippingThreshold = 500_000
	flatShippingFee       = 30_000
	estimatedDeliveryTTL  = 7 * 24 * time.Hour
)

type Service struct {
	repository Repository
	publisher  EventPublisher
	txManager  TxManager
	log        Logger
}

func New(
	log Logger,
	repository Repository,
	publisher EventPublisher,
	txManager TxManager,
) *Service {
	return &Service{
		repository: repository,
		publisher:  publisher,
		txManager:  txManager,
		log:        log,
	}
}

type CreateOrderRequest struct {
	UserID          int64
	CartID          string
	Items           []entities.OrderItem
	ShippingAddress entities.ShippingAddress
	CustomerInfo    entities.CustomerInfo
	PaymentMethod   entities.PaymentMethodType
	Notes           string
}

// CreateFromCheckout создаёт заказ из события UserCheckout.
// Повторная доставка того же события не создаёт второй заказ:
// уникальность по cartId переводит дубль в чтение существующего заказа.
func (s *Service) CreateFromCheckout(ctx context.Context, event events.UserCheckout) (*entities.Order, error) {
	items := make([]entities.OrderItem, 0, len(event.Items))
	for _, item := range event.Items {
		orderItem := entities.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
		if item.Snapshot != nil {
			orderItem.Snapshot = entities.ProductSnapshot{
				Name:        item.Snapshot.Name,
				Description: item.Snapshot.Description,
				Images:      item.Snapshot.Images,
				Category:    item.Snapshot.Category,
			}
		}
		items = append(items, orderItem)
	}

	return s.CreateOrder(ctx, CreateOrderRequest{
		UserID: event.UserID,
		CartID: event.CartID,
		Items:  items,
		ShippingAddress: entities.ShippingAddress{
			FullName:     event.ShippingAddress.FullName,
			Phone:        event.ShippingAddress.Phone,
			Address:      event.ShippingAddress.Address,
			City:         event.ShippingAddress.City,
			State:        event.ShippingAddress.State,
			ZipCode:      event.ShippingAddress.ZipCode,
			Country:      event.ShippingAddress.Country,
			Longitude:    event.ShippingAddress.Longitude,
			Latitude:     event.ShippingAddress.Latitude,
			Instructions: event.ShippingAddress.Instructions,
		},
		CustomerInfo: entities.CustomerInfo{
			Name:  event.CustomerInfo.Name,
			Email: event.CustomerInfo.Email,
			Phone: event.CustomerInfo.Phone,
		},
		PaymentMethod: entities.PaymentMethodType(event.PaymentMethod),
	})
}

// CreateOrder — единственная точка создания заказа. Заказ всегда
// стартует в pending/pending, суммы выводятся из позиций:
// totalPrice = subtotal + shippingFee + tax.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*entities.Order, error) {
	if req.UserID <= 0 || req.CartID == "" || len(req.Items) == 0 ||
		req.ShippingAddress.Address == "" || req.CustomerInfo.Name == "" {
		return nil, ErrMissingRequiredFields
	}
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: payment method %q", ErrMissingRequiredFields, req.PaymentMethod)
	}

	var totalItems, subtotal int64
	for _, item := range req.Items {
		if item.Quantity <= 0 || item.Price < 0 {
			return nil, fmt.Errorf("%w: bad item %s", ErrMissingRequiredFields, item.ProductID)
		}
		totalItems += item.Quantity
		subtotal += item.Price * item.Quantity
	}

	shippingFee := int64(flatShippingFee)
	if subtotal >= freeShippingThreshold {
		shippingFee = 0
	}
	tax := subtotal / 10

	now := time.Now().UTC()
	order := &entities.Order{
		OrderNumber:     refnum.Generate(refnum.OrderPrefix, now),
		UserID:          req.UserID,
		CartID:          req.CartID,
		Items:           req.Items,
		TotalItems:      totalItems,
		Subtotal:        subtotal,
		ShippingFee:     shippingFee,
		Tax:             tax,
		TotalPrice:      subtotal + shippingFee + tax,
		ShippingAddress: req.ShippingAddress,
		CustomerInfo:    req.CustomerInfo,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   entities.PaymentPending,
		Status:          entities.OrderPending,
		Notes:           req.Notes,
	}

	created, err := s.repository.Create(ctx, order)
	if err != nil {
		if errors.Is(err, ErrOrderAlreadyExists) {
			existing, getErr := s.repository.GetByCartID(ctx, req.CartID)
			if getErr != nil {
				return nil, fmt.Errorf("get existing order for cart %s: %w", req.CartID, getErr)
			}
			s.log.With(
				logger.NewField("order", existing.ID),
				logger.NewField("cart", req.CartID),
			).Warn("duplicate checkout, order already created")
			return existing, nil
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	// Локальное состояние — источник истины: провал публикации не
	// откатывает заказ, расхождение закрывается redelivery/свипом.
	s.publishBestEffort(ctx, events.TopicOrderEvents, orderCreatedEvent(created, time.Now().UTC()))

	return created, nil
}

// UpdateOrderStatus применяет статус как есть, без защиты от «обратных»
// переходов: идемпотентность обязаны обеспечивать консьюмеры.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID string, newStatus entities.OrderStatusType) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	var updated *entities.Order
	var oldStatus entities.OrderStatusType

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		oldStatus = current.Status

		modify := entities.OrderModify{
			ID:     &current.ID,
			Status: &newStatus,
		}
		now := time.Now().UTC()
		switch newStatus {
		case entities.OrderConfirmed:
			estimated := now.Add(estimatedDeliveryTTL)
			modify.EstimatedDelivery = &estimated
		case entities.OrderDelivered:
			modify.ActualDelivery = &now
		}

		updated, err = s.repository.Update(ctx, modify)
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishBestEffort(ctx, events.TopicOrderEvents, events.OrderStatusUpdated{
		EventType:   events.TypeOrderStatusUpdated,
		OrderID:     updated.ID,
		OrderNumber: updated.OrderNumber,
		UserID:      updated.UserID,
		OldStatus:   oldStatus.String(),
		NewStatus:   newStatus.String(),
		Timestamp:   events.Now(time.Now().UTC()),
	})

	return updated, nil
}

func (s *Service) UpdatePaymentStatus(ctx context.Context, orderID string, newStatus entities.PaymentStatusType) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentStatus, newStatus)
	}

	var updated *entities.Order
	var oldStatus entities.PaymentStatusType

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		oldStatus = current.PaymentStatus

		updated, err = s.repository.Update(ctx, entities.OrderModify{
			ID:            &current.ID,
			PaymentStatus: &newStatus,
		})
		if err != nil {
			return fmt.Errorf("update payment status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishBestEffort(ctx, events.TopicOrderEvents, events.PaymentStatusUpdated{
		EventType:   events.TypePaymentStatusUpdated,
		OrderID:     updated.ID,
		OrderNumber: updated.OrderNumber,
		UserID:      updated.UserID,
		OldStatus:   oldStatus.String(),
		NewStatus:   newStatus.String(),
		TotalPrice:  updated.TotalPrice,
		Timestamp:   events.Now(time.Now().UTC()),
	})

	return updated, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	order, err := s.repository.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

func (s *Service) GetOrderByNumber(ctx context.Context, orderNumber string) (*entities.Order, error) {
	if orderNumber == "" {
		return nil, ErrInvalidOrderID
	}

	order, err := s.repository.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("get order by number: %w", err)
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, userID, limit, offset int64) ([]entities.Order, error) {
	if userID <= 0 {
		return nil, ErrMissingRequiredFields
	}
	if limit <= 0 {
		limit = 10
	}

	orders, err := s.repository.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *Service) publishBestEffort(ctx context.Context, topic string, event events.Event) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		s.log.With(
			logger.NewField("topic", topic),
			logger.NewField("event_type", event.Type()),
			logger.NewField("key", event.Key()),
			logger.NewField("error", err),
		).Error("event publish failed, local state kept")
	}
}

func orderCreatedEvent(order *entities.Order, now time.Time) events.OrderCreated {
	items := make([]events.Item, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, events.Item{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return events.OrderCreated{
		EventType:   events.TypeOrderCreated,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		CartID:      order.CartID,
		TotalPrice:  order.TotalPrice,
		Items:       items,
		CustomerInfo: events.CustomerInfo{
			Name:  order.CustomerInfo.Name,
			Email: order.CustomerInfo.Email,
			Phone: order.CustomerInfo.Phone,
		},
		ShippingAddress: events.ShippingAddress{
			FullName:     order.ShippingAddress.FullName,
			Phone:        order.ShippingAddress.Phone,
			Address:      order.ShippingAddress.Address,
			City:         order.ShippingAddress.City,
			State:        order.ShippingAddress.State,
			ZipCode:      order.ShippingAddress.ZipCode,
			Country:      order.ShippingAddress.Country,
			Longitude:    order.ShippingAddress.Longitude,
			Latitude:     order.ShippingAddress.Latitude,
			Instructions: order.ShippingAddress.Instructions,
		},
		PaymentMethod: order.PaymentMethod.String(),
		CreatedAt:     order.CreatedAt.UTC().Format(time.RFC3339),
		Timestamp:     events.Now(now),
	}
}
