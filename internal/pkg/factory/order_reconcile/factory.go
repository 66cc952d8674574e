package order_reconcile

import (
	"context"
	"fmt"

	"github.com/peterPain01/SA-Microserices/internal/entities"
	"github.com/peterPain01/SA-Microserices/internal/events"
)

type DeliveryService interface {
	CreateFromOrder(ctx context.Context, event events.OrderCreated) (*entities.Delivery, error)
	ReconcileOrderStatus(ctx context.Context, event events.OrderStatusUpdated) error
	ReconcilePaymentStatus(ctx context.Context, event events.PaymentStatusUpdated) error
}

type ExecuteFn func(ctx context.Context) error

// HandlerFactory раскладывает события order-events по операциям
// delivery-service.
type HandlerFactory struct {
	deliveryService DeliveryService
}

func NewHandlerFactory(deliveryService DeliveryService) *HandlerFactory {
	return &HandlerFactory{
		deliveryService: deliveryService,
	}
}

func (f *HandlerFactory) GetHandler(event events.Event) (ExecuteFn, error) {
	switch e := event.(type) {
	case events.OrderCreated:
		return f.createdHandler(e), nil
	case events.OrderStatusUpdated:
		return f.orderStatusHandler(e), nil
	case events.PaymentStatusUpdated:
		return f.paymentStatusHandler(e), nil
	default:
		return nil, fmt.Errorf("%w: %s", events.ErrUnknownEventType, event.Type())
	}
}

func (f *HandlerFactory) createdHandler(event events.OrderCreated) ExecuteFn {
	return func(ctx context.Context) error {
		_, err := f.deliveryService.CreateFromOrder(ctx, event)
		if err != nil {
			return fmt.Errorf("create delivery for order %s: %w", event.OrderID, err)
		}
		return nil
	}
}

func (f *HandlerFactory) orderStatusHandler(event events.OrderStatusUpdated) ExecuteFn {
	return func(ctx context.Context) error {
		err := f.deliveryService.ReconcileOrderStatus(ctx, event)
		if err != nil {
			return fmt.Errorf("reconcile order status for order %s: %w", event.OrderID, err)
		}
		return nil
	}
}

func (f *HandlerFactory) paymentStatusHandler(event events.PaymentStatusUpdated) ExecuteFn {
	return func(ctx context.Context) error {
		err := f.deliveryService.ReconcilePaymentStatus(ctx, event)
		if err != nil {
			return fmt.Errorf("reconcile payment status for order %s: %w", event.OrderID, err)
		}
		return nil
	}
}
