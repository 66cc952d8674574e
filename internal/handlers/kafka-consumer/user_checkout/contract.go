package user_checkout

import (
	"context"

	"github.com/peterPain01/SA-Microserices/internal/entities"
	"github.com/peterPain01/SA-Microserices/internal/events"
	"github.com/peterPain01/SA-Microserices/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	CreateFromCheckout(ctx context.Context, event events.UserCheckout) (*entities.Order, error)
}
