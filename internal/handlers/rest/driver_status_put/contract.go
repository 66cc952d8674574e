//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=driver_status_put_test
package driver_status_put

import (
	"context"

	"github.com/peterPain01/SA-Microserices/internal/entities"
	"github.com/peterPain01/SA-Microserices/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	UpdateDriverStatus(ctx context.Context, id int64, status entities.DriverStatusType) (*entities.Driver, error)
}
