//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_test
package delivery

import (
	"context"

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

type Repository interface {
	Create(ctx context.Context, delivery *entities.Delivery) (*entities.Delivery, error)
	GetByID(ctx context.Context, id string) (*entities.Delivery, error)
	GetByOrderID(ctx context.Context, orderID string) (*entities.Delivery, error)
	ListByDriverID(ctx context.Context, driverID int64, limit, offset int64) ([]entities.Delivery, error)
	ListByUserID(ctx context.Context, userID, limit, offset int64) ([]entities.Delivery, error)
	ListPendingUnassigned(ctx context.Context, limit int64) ([]entities.Delivery, error)
	Update(ctx context.Context, deliveryModify entities.DeliveryModify) (*entities.Delivery, error)
	Stats(ctx context.Context) ([]entities.DeliveryStat, error)
}

type DriverMatcher interface {
	Assign(ctx context.Context, delivery *entities.Delivery) (*entities.Driver, error)
}

type DriverService interface {
	UpdateDriver(ctx context.Context, driverModify entities.DriverModify) (*entities.Driver, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Event) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
