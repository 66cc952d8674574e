package matcher

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/peterPain01/SA-Microserices/internal/entities"
	"github.com/peterPain01/SA-Microserices/internal/events"
	"github.com/peterPain01/SA-Microserices/pkg/logger"
)

const (
	searchRadiusMeters = 10_000
	bindAttempts       = 2
)

// Matcher подбирает водителя для доставки. Вся последовательность
// выбрать-привязать выполняется под per-delivery мьютексом: два
// конкурентных вызова по одной доставке не назначат двух водителей.
type Matcher struct {
	deliveries DeliveryRepository
	drivers    DriverRepository
	publisher  EventPublisher
	schedule   ScheduleFactory
	locker     Locker
	log        Logger
}

func New(
	log Logger,
	deliveries DeliveryRepository,
	drivers DriverRepository,
	publisher EventPublisher,
	schedule ScheduleFactory,
	locker Locker,
) *Matcher {
	return &Matcher{
		deliveries: deliveries,
		drivers:    drivers,
		publisher:  publisher,
		schedule:   schedule,
		locker:     locker,
		log:        log,
	}
}

func (m *Matcher) Assign(ctx context.Context, delivery *entities.Delivery) (*entities.Driver, error) {
	if delivery == nil || delivery.ID == "" {
		return nil, ErrInvalidDelivery
	}
	if delivery.Status != entities.DeliveryPending || delivery.DriverID != nil {
		return nil, fmt.Errorf("delivery %s in status %s: %w", delivery.ID, delivery.Status, ErrInvalidDelivery)
	}

	m.locker.Lock(delivery.ID)
	defer m.locker.Unlock(delivery.ID)

	// снимок вызывающего мог устареть, пока мьютекс держал конкурентный
	// вызов — перечитываем доставку уже под мьютексом
	fresh, err := m.deliveries.GetByID(ctx, delivery.ID)
	if err != nil {
		return nil, fmt.Errorf("reread delivery %s: %w", delivery.ID, err)
	}
	if fresh.Status != entities.DeliveryPending || fresh.DriverID != nil {
		return nil, fmt.Errorf("delivery %s: %w", fresh.ID, ErrAlreadyAssigned)
	}

	var lastErr error
	for attempt := 0; attempt < bindAttempts; attempt++ {
		driver, err := m.tryAssign(ctx, fresh)
		if err == nil {
			return driver, nil
		}
		if !errors.Is(err, ErrDriverTaken) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

func (m *Matcher) tryAssign(ctx context.Context, delivery *entities.Delivery) (*entities.Driver, error) {
	candidates, err := m.drivers.FindAvailableNear(
		ctx,
		delivery.PickupLocation.Longitude,
		delivery.PickupLocation.Latitude,
		searchRadiusMeters,
	)
	if err != nil {
		return nil, fmt.Errorf("find drivers near pickup: %w", err)
	}
	if len(candidates) == 0 {
		return nil, ErrNoDriversAvailable
	}

	// repository отдаёт кандидатов по rating DESC, totalDeliveries DESC
	candidate := candidates[0]

	now := time.Now().UTC()
	assignedStatus := entities.DeliveryAssigned
	estimatedPickup := m.schedule.EstimatedPickupTime(now)
	estimatedDelivery := m.schedule.EstimatedDeliveryTime(now)

	bound, err := m.deliveries.Update(ctx, entities.DeliveryModify{
		ID:       &delivery.ID,
		DriverID: &candidate.ID,
		Status:   &assignedStatus,
		HistoryEntry: &entities.StatusHistoryEntry{
			Status:    entities.DeliveryAssigned,
			Timestamp: now,
			Notes:     fmt.Sprintf("Assigned to driver %d", candidate.ID),
			UpdatedBy: entities.ActorSystem,
		},
		EstimatedPickupTime:   &estimatedPickup,
		EstimatedDeliveryTime: &estimatedDelivery,
	})
	if err != nil {
		return nil, fmt.Errorf("bind delivery %s: %w", delivery.ID, err)
	}

	driver, err := m.drivers.Bind(ctx, candidate.ID, entities.CurrentDelivery{
		DeliveryID: delivery.ID,
		OrderID:    delivery.OrderID,
	})
	if err != nil {
		if rollbackErr := m.unbindDelivery(ctx, delivery.ID); rollbackErr != nil {
			m.log.With(
				logger.NewField("delivery", delivery.ID),
				logger.NewField("error", rollbackErr),
			).Error("delivery unbind rollback failed")
		}
		if errors.Is(err, ErrDriverTaken) {
			return nil, fmt.Errorf("driver %d: %w", candidate.ID, ErrDriverTaken)
		}
		return nil, fmt.Errorf("bind driver %d: %w", candidate.ID, err)
	}

	m.publishAssigned(ctx, bound, driver)

	return driver, nil
}

func (m *Matcher) unbindDelivery(ctx context.Context, deliveryID string) error {
	pendingStatus := entities.DeliveryPending
	_, err := m.deliveries.Update(ctx, entities.DeliveryModify{
		ID:          &deliveryID,
		ClearDriver: true,
		Status:      &pendingStatus,
	})
	return err
}

func (m *Matcher) publishAssigned(ctx context.Context, delivery *entities.Delivery, driver *entities.Driver) {
	event := events.DriverAssigned{
		EventType:      events.TypeDriverAssigned,
		DeliveryID:     delivery.ID,
		DeliveryNumber: delivery.DeliveryNumber,
		OrderID:        delivery.OrderID,
		OrderNumber:    delivery.OrderNumber,
		DriverID:       strconv.FormatInt(driver.ID, 10),
		DriverName:     driver.Name,
		DriverPhone:    driver.Phone,
		Timestamp:      events.Now(time.Now().UTC()),
	}
	if delivery.EstimatedPickupTime != nil {
		event.EstimatedPickupTime = events.Now(*delivery.EstimatedPickupTime)
	}
	if delivery.EstimatedDeliveryTime != nil {
		event.EstimatedDeliveryTime = events.Now(*delivery.EstimatedDeliveryTime)
	}

	if err := m.publisher.Publish(ctx, events.TopicDeliveryEvents, event); err != nil {
		m.log.With(
			logger.NewField("delivery", delivery.ID),
			logger.NewField("driver", driver.ID),
			logger.NewField("error", err),
		).Error("event publish failed, local state kept")
	}
}
