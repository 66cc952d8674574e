//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=matcher_test
package matcher

import (
	"context"
	"time"

	"github.com/peterPain01/SA-Microserices/internal/entities"
	"github.com/peterPain01/SA-Microserices/internal/events"
	"github.com/peterPain01/SA-Microserices/pkg/logger"
)

type Logger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type DeliveryRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Delivery, error)
	Update(ctx context.Context, deliveryModify entities.DeliveryModify) (*entities.Delivery, error)
}

type DriverRepository interface {
	FindAvailableNear(ctx context.Context, longitude, latitude, radiusMeters float64) ([]entities.Driver, error)
	Bind(ctx context.Context, driverID int64, currentDelivery entities.CurrentDelivery) (*entities.Driver, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Event) error
}

type ScheduleFactory interface {
	EstimatedPickupTime(baseTime time.Time) time.Time
	EstimatedDeliveryTime(baseTime time.Time) time.Time
}

type Locker interface {
	Lock(key string)
	Unlock(key string)
}
