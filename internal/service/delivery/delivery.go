package delivery

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/peterPain01/SA-Microserices/internal/entities"
	"github.com/peterPain01/SA-Microserices/internal/events"
	"github.com/peterPain01/SA-Microserices/internal/pkg/geo"
	"github.com/peterPain01/SA-Microserices/internal/pkg/refnum"
	"github.com/peterPain01/SA-Microserices/internal/service/matcher"
	"github.com/peterPain01/SA-Microserices/pkg/logger"
)

const (
	baseDeliveryFee   = 30_000
	driverShare       = 0.7
	pendingSweepLimit = 100
)

type Delivery struct {
	repository    Repository
	driverMatcher DriverMatcher
	driverService DriverService
	publisher     EventPublisher
	txManager     TxManager
	pickup        entities.Location
	log           Logger
}

func New(
	log Logger,
	repository Repository,
	driverMatcher DriverMatcher,
	driverService DriverService,
	publisher EventPublisher,
	txManager TxManager,
	pickup entities.Location,
) *Delivery {
	return &Delivery{
		repository:    repository,
		driverMatcher: driverMatcher,
		driverService: driverService,
		publisher:     publisher,
		txManager:     txManager,
		pickup:        pickup,
		log:           log,
	}
}

// CreateFromOrder заводит доставку по событию OrderCreated. Повторная
// доставка события упирается в уникальность order_id и возвращает уже
// созданную запись. Отсутствие свободных водителей не ошибка: доставка
// остаётся pending до ретраев.
func (d *Delivery) CreateFromOrder(ctx context.Context, event events.OrderCreated) (*entities.Delivery, error) {
	if !isValidOrderID(event.OrderID) {
		return nil, ErrInvalidOrderID
	}
	if event.ShippingAddress.Address == "" {
		return nil, fmt.Errorf("shipping address: %w", ErrMissingRequiredFields)
	}

	dropoff := entities.Location{
		Address:      event.ShippingAddress.Address + ", " + event.ShippingAddress.City,
		Longitude:    event.ShippingAddress.Longitude,
		Latitude:     event.ShippingAddress.Latitude,
		ContactName:  event.ShippingAddress.FullName,
		ContactPhone: event.ShippingAddress.Phone,
		Instructions: event.ShippingAddress.Instructions,
	}
	if dropoff.ContactName == "" {
		dropoff.ContactName = event.CustomerInfo.Name
	}
	// адрес без координат — считаем доставку от координат склада
	if dropoff.Longitude == 0 && dropoff.Latitude == 0 {
		dropoff.Longitude = d.pickup.Longitude
		dropoff.Latitude = d.pickup.Latitude
	}

	distance := int64(math.Round(geo.HaversineMeters(
		d.pickup.Longitude, d.pickup.Latitude,
		dropoff.Longitude, dropoff.Latitude,
	)))
	fee := int64(baseDeliveryFee) + distance
	earnings := int64(math.Round(driverShare * float64(fee)))

	now := time.Now().UTC()
	delivery := &entities.Delivery{
		DeliveryNumber:   refnum.Generate(refnum.DeliveryPrefix, now),
		OrderID:          event.OrderID,
		OrderNumber:      event.OrderNumber,
		UserID:           event.UserID,
		PickupLocation:   d.pickup,
		DeliveryLocation: dropoff,
		Status:           entities.DeliveryPending,
		Priority:         entities.PriorityForOrderValue(event.TotalPrice),
		Distance:         distance,
		DeliveryFee:      fee,
		DriverEarnings:   earnings,
		StatusHistory: []entities.StatusHistoryEntry{{
			Status:    entities.DeliveryPending,
			Timestamp: now,
			Notes:     "Delivery created",
			UpdatedBy: entities.ActorSystem,
		}},
	}

	created, err := d.repository.Create(ctx, delivery)
	if err != nil {
		if errors.Is(err, ErrDeliveryAlreadyExists) {
			existing, getErr := d.repository.GetByOrderID(ctx, event.OrderID)
			if getErr != nil {
				return nil, fmt.Errorf("get existing delivery for order %s: %w", event.OrderID, getErr)
			}
			d.log.With(
				logger.NewField("delivery", existing.ID),
				logger.NewField("order", event.OrderID),
			).Warn("duplicate order event, delivery already created")
			return existing, nil
		}
		return nil, fmt.Errorf("create delivery: %w", err)
	}

	if _, err := d.driverMatcher.Assign(ctx, created); err != nil && !errors.Is(err, matcher.ErrAlreadyAssigned) {
		if errors.Is(err, matcher.ErrNoDriversAvailable) {
			d.log.With(
				logger.NewField("delivery", created.ID),
			).Info("no drivers available, delivery stays pending")
		} else {
			d.log.With(
				logger.NewField("delivery", created.ID),
				logger.NewField("error", err),
			).Error("driver assignment failed")
		}
	} else if fresh, err := d.repository.GetByID(ctx, created.ID); err == nil {
		created = fresh
	}

	d.publishCreated(ctx, created)

	return created, nil
}

// ReconcileOrderStatus приводит доставку в соответствие статусу заказа.
// Таблица переходов фиксированная, повтор события ничего не меняет.
func (d *Delivery) ReconcileOrderStatus(ctx context.Context, event events.OrderStatusUpdated) error {
	if !isValidOrderID(event.OrderID) {
		return ErrInvalidOrderID
	}

	delivery, err := d.repository.GetByOrderID(ctx, event.OrderID)
	if err != nil {
		if errors.Is(err, ErrDeliveryNotFound) {
			d.log.With(
				logger.NewField("order", event.OrderID),
			).Warn("order status update for unknown delivery")
			return nil
		}
		return fmt.Errorf("get delivery by order: %w", err)
	}

	switch entities.OrderStatusType(event.NewStatus) {
	case entities.OrderConfirmed:
		return d.retryAssign(ctx, delivery)
	case entities.OrderCancelled:
		return d.forceStatus(ctx, delivery, entities.DeliveryCancelled, "Order cancelled")
	case entities.OrderShipped:
		// shipped при ещё не назначенной доставке игнорируется
		if delivery.Status != entities.DeliveryAssigned {
			return nil
		}
		_, _, err := d.transition(ctx, delivery.ID, transitionRequest{
			Status:    entities.DeliveryPickedUp,
			Notes:     "Order shipped",
			UpdatedBy: entities.ActorSystem,
		})
		return err
	case entities.OrderDelivered:
		return d.forceStatus(ctx, delivery, entities.DeliveryDelivered, "Order delivered")
	default:
		return nil
	}
}

// ReconcilePaymentStatus реагирует на платёжные события заказа.
func (d *Delivery) ReconcilePaymentStatus(ctx context.Context, event events.PaymentStatusUpdated) error {
	if !isValidOrderID(event.OrderID) {
		return ErrInvalidOrderID
	}

	delivery, err := d.repository.GetByOrderID(ctx, event.OrderID)
	if err != nil {
		if errors.Is(err, ErrDeliveryNotFound) {
			d.log.With(
				logger.NewField("order", event.OrderID),
			).Warn("payment status update for unknown delivery")
			return nil
		}
		return fmt.Errorf("get delivery by order: %w", err)
	}

	switch entities.PaymentStatusType(event.NewStatus) {
	case entities.PaymentPaid:
		return d.retryAssign(ctx, delivery)
	case entities.PaymentRefunded:
		if delivery.Status == entities.DeliveryDelivered {
			d.log.With(
				logger.NewField("delivery", delivery.ID),
			).Warn("refund after completed delivery, nothing to cancel")
			return nil
		}
		return d.forceStatus(ctx, delivery, entities.DeliveryCancelled, "Payment refunded")
	case entities.PaymentFailed:
		d.log.With(
			logger.NewField("delivery", delivery.ID),
			logger.NewField("order", event.OrderID),
		).Warn("payment failed for order")
		return nil
	default:
		return nil
	}
}

type UpdateStatusRequest struct {
	DeliveryID string
	Status     entities.DeliveryStatusType
	Longitude  *float64
	Latitude   *float64
	Notes      string
	UpdatedBy  entities.ActorType
}

func (d *Delivery) UpdateDeliveryStatus(ctx context.Context, req UpdateStatusRequest) (*entities.Delivery, error) {
	if !isValidDeliveryID(req.DeliveryID) {
		return nil, ErrInvalidDeliveryID
	}
	if !req.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}
	if req.UpdatedBy == "" {
		req.UpdatedBy = entities.ActorDriver
	}

	updated, _, err := d.transition(ctx, req.DeliveryID, transitionRequest{
		Status:    req.Status,
		Longitude: req.Longitude,
		Latitude:  req.Latitude,
		Notes:     req.Notes,
		UpdatedBy: req.UpdatedBy,
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RetryPendingAssignments обходит висящие без водителя доставки и
// прогоняет каждую через matcher. Возвращает число назначенных.
func (d *Delivery) RetryPendingAssignments(ctx context.Context) (int64, error) {
	pending, err := d.repository.ListPendingUnassigned(ctx, pendingSweepLimit)
	if err != nil {
		return 0, fmt.Errorf("list pending deliveries: %w", err)
	}

	var assigned int64
	for i := range pending {
		delivery := pending[i]
		if _, err := d.driverMatcher.Assign(ctx, &delivery); err != nil {
			if errors.Is(err, matcher.ErrNoDriversAvailable) || errors.Is(err, matcher.ErrAlreadyAssigned) {
				continue
			}
			d.log.With(
				logger.NewField("delivery", delivery.ID),
				logger.NewField("error", err),
			).Error("assignment retry failed")
			continue
		}
		assigned++
	}

	return assigned, nil
}

// AssignDelivery запускает подбор водителя для конкретной доставки по
// запросу оператора.
func (d *Delivery) AssignDelivery(ctx context.Context, deliveryID string) (*entities.Delivery, error) {
	if !isValidDeliveryID(deliveryID) {
		return nil, ErrInvalidDeliveryID
	}

	delivery, err := d.repository.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}

	if _, err := d.driverMatcher.Assign(ctx, delivery); err != nil {
		return nil, err
	}

	updated, err := d.repository.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("get delivery after assign: %w", err)
	}
	return updated, nil
}

func (d *Delivery) GetDelivery(ctx context.Context, deliveryID string) (*entities.Delivery, error) {
	if !isValidDeliveryID(deliveryID) {
		return nil, ErrInvalidDeliveryID
	}

	delivery, err := d.repository.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return delivery, nil
}

func (d *Delivery) GetDeliveryByOrderID(ctx context.Context, orderID string) (*entities.Delivery, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	delivery, err := d.repository.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get delivery by order: %w", err)
	}
	return delivery, nil
}

func (d *Delivery) ListByDriver(ctx context.Context, driverID, limit, offset int64) ([]entities.Delivery, error) {
	if driverID <= 0 {
		return nil, ErrMissingRequiredFields
	}
	if limit <= 0 {
		limit = 10
	}

	deliveries, err := d.repository.ListByDriverID(ctx, driverID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list deliveries by driver: %w", err)
	}
	return deliveries, nil
}

func (d *Delivery) ListByUser(ctx context.Context, userID, limit, offset int64) ([]entities.Delivery, error) {
	if userID <= 0 {
		return nil, ErrMissingRequiredFields
	}
	if limit <= 0 {
		limit = 10
	}

	deliveries, err := d.repository.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list deliveries by user: %w", err)
	}
	return deliveries, nil
}

func (d *Delivery) Stats(ctx context.Context) ([]entities.DeliveryStat, error) {
	stats, err := d.repository.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("delivery stats: %w", err)
	}
	return stats, nil
}

func (d *Delivery) retryAssign(ctx context.Context, delivery *entities.Delivery) error {
	if delivery.Status != entities.DeliveryPending || delivery.DriverID != nil {
		return nil
	}

	if _, err := d.driverMatcher.Assign(ctx, delivery); err != nil {
		if errors.Is(err, matcher.ErrAlreadyAssigned) {
			return nil
		}
		if errors.Is(err, matcher.ErrNoDriversAvailable) {
			d.log.With(
				logger.NewField("delivery", delivery.ID),
			).Info("no drivers available, delivery stays pending")
			return nil
		}
		return fmt.Errorf("retry assignment: %w", err)
	}
	return nil
}

func (d *Delivery) forceStatus(ctx context.Context, delivery *entities.Delivery, status entities.DeliveryStatusType, notes string) error {
	if delivery.Status == status || delivery.Status.Terminal() {
		return nil
	}

	_, _, err := d.transition(ctx, delivery.ID, transitionRequest{
		Status:    status,
		Notes:     notes,
		UpdatedBy: entities.ActorSystem,
	})
	return err
}

type transitionRequest struct {
	Status    entities.DeliveryStatusType
	Longitude *float64
	Latitude  *float64
	Notes     string
	UpdatedBy entities.ActorType
}

// transition — единственная точка смены статуса доставки. Повторный
// перевод в текущий статус не пишет историю и не публикует событие.
// Завершение доставки и расчёт с водителем выполняются одной
// транзакцией.
func (d *Delivery) transition(ctx context.Context, deliveryID string, req transitionRequest) (*entities.Delivery, bool, error) {
	var (
		updated   *entities.Delivery
		oldStatus entities.DeliveryStatusType
		changed   bool
	)

	err := d.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := d.repository.GetByID(ctx, deliveryID)
		if err != nil {
			return fmt.Errorf("get delivery: %w", err)
		}
		oldStatus = current.Status

		if current.Status == req.Status {
			updated = current
			return nil
		}
		if current.Status.Terminal() {
			return fmt.Errorf("delivery %s is %s: %w", deliveryID, current.Status, ErrTerminalStatus)
		}

		now := time.Now().UTC()
		modify := entities.DeliveryModify{
			ID:     &deliveryID,
			Status: &req.Status,
			HistoryEntry: &entities.StatusHistoryEntry{
				Status:    req.Status,
				Timestamp: now,
				Longitude: req.Longitude,
				Latitude:  req.Latitude,
				Notes:     req.Notes,
				UpdatedBy: req.UpdatedBy,
			},
		}
		switch req.Status {
		case entities.DeliveryPickedUp:
			modify.ActualPickupTime = &now
		case entities.DeliveryDelivered:
			modify.ActualDeliveryTime = &now
		}

		updated, err = d.repository.Update(ctx, modify)
		if err != nil {
			return fmt.Errorf("update delivery status: %w", err)
		}
		changed = true

		if req.Status == entities.DeliveryDelivered && current.DriverID != nil {
			return d.settleDriver(ctx, *current.DriverID, current.DriverEarnings)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if changed {
		d.publishStatusUpdated(ctx, updated, oldStatus)
	}

	return updated, changed, nil
}

// settleDriver начисляет водителю заработок за доставку и возвращает
// его в пул доступных.
func (d *Delivery) settleDriver(ctx context.Context, driverID, earnings int64) error {
	availableStatus := entities.DriverAvailable
	_, err := d.driverService.UpdateDriver(ctx, entities.DriverModify{
		ID:                   &driverID,
		Status:               &availableStatus,
		ClearCurrentDelivery: true,
		AddDeliveries:        1,
		AddEarnings:          earnings,
	})
	if err != nil {
		return fmt.Errorf("settle driver %d: %w", driverID, err)
	}
	return nil
}

func (d *Delivery) publishCreated(ctx context.Context, delivery *entities.Delivery) {
	event := events.DeliveryCreated{
		EventType:      events.TypeDeliveryCreated,
		DeliveryID:     delivery.ID,
		DeliveryNumber: delivery.DeliveryNumber,
		OrderID:        delivery.OrderID,
		OrderNumber:    delivery.OrderNumber,
		UserID:         delivery.UserID,
		PickupLocation: events.Location{
			Type:         "warehouse",
			Address:      delivery.PickupLocation.Address,
			Longitude:    delivery.PickupLocation.Longitude,
			Latitude:     delivery.PickupLocation.Latitude,
			ContactName:  delivery.PickupLocation.ContactName,
			ContactPhone: delivery.PickupLocation.ContactPhone,
		},
		DeliveryLocation: events.Location{
			Type:         "customer",
			Address:      delivery.DeliveryLocation.Address,
			Longitude:    delivery.DeliveryLocation.Longitude,
			Latitude:     delivery.DeliveryLocation.Latitude,
			ContactName:  delivery.DeliveryLocation.ContactName,
			ContactPhone: delivery.DeliveryLocation.ContactPhone,
			Instructions: delivery.DeliveryLocation.Instructions,
		},
		Priority:    delivery.Priority.String(),
		DeliveryFee: delivery.DeliveryFee,
		Timestamp:   events.Now(time.Now().UTC()),
	}
	if delivery.EstimatedPickupTime != nil {
		event.EstimatedPickupTime = events.Now(*delivery.EstimatedPickupTime)
	}
	if delivery.EstimatedDeliveryTime != nil {
		event.EstimatedDeliveryTime = events.Now(*delivery.EstimatedDeliveryTime)
	}

	if err := d.publisher.Publish(ctx, events.TopicDeliveryEvents, event); err != nil {
		d.log.With(
			logger.NewField("delivery", delivery.ID),
			logger.NewField("error", err),
		).Error("event publish failed, local state kept")
	}
}

func (d *Delivery) publishStatusUpdated(ctx context.Context, delivery *entities.Delivery, oldStatus entities.DeliveryStatusType) {
	event := events.DeliveryStatusUpdated{
		EventType:      events.TypeDeliveryStatusUpdated,
		DeliveryID:     delivery.ID,
		DeliveryNumber: delivery.DeliveryNumber,
		OrderID:        delivery.OrderID,
		OrderNumber:    delivery.OrderNumber,
		OldStatus:      oldStatus.String(),
		NewStatus:      delivery.Status.String(),
		Timestamp:      events.Now(time.Now().UTC()),
	}
	if delivery.DriverID != nil {
		event.DriverID = strconv.FormatInt(*delivery.DriverID, 10)
	}

	if err := d.publisher.Publish(ctx, events.TopicDeliveryEvents, event); err != nil {
		d.log.With(
			logger.NewField("delivery", delivery.ID),
			logger.NewField("error", err),
		).Error("event publish failed, local state kept")
	}
}
