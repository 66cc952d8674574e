package order_events

import (
	"github.com/peterPain01/SA-Microserices/internal/events"
	"github.com/peterPain01/SA-Microserices/internal/pkg/factory/order_reconcile"
	"github.com/peterPain01/SA-Microserices/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type HandlerFactory interface {
	GetHandler(event events.Event) (order_reconcile.ExecuteFn, error)
}
