package events

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownEventType возвращается для событий, тип которых топику не известен.
// Консьюмер обязан залогировать и подтвердить такое сообщение, а не падать.
var ErrUnknownEventType = errors.New("unknown event type")

type envelope struct {
	EventType string `json:"eventType"`
}

// Decode разбирает сырое сообщение топика в типизированное событие.
func Decode(topic string, raw []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	switch topic {
	case TopicUserEvents:
		return decodeUserEvent(env.EventType, raw)
	case TopicOrderEvents:
		return decodeOrderEvent(env.EventType, raw)
	case TopicDeliveryEvents:
		return decodeDeliveryEvent(env.EventType, raw)
	default:
		return nil, fmt.Errorf("%w: topic %q", ErrUnknownEventType, topic)
	}
}

func decodeUserEvent(eventType string, raw []byte) (Event, error) {
	switch eventType {
	case TypeUserCheckout:
		return unmarshalAs[UserCheckout](raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, eventType)
	}
}

func decodeOrderEvent(eventType string, raw []byte) (Event, error) {
	switch eventType {
	case TypeOrderCreated:
		return unmarshalAs[OrderCreated](raw)
	case TypeOrderStatusUpdated:
		return unmarshalAs[OrderStatusUpdated](raw)
	case TypePaymentStatusUpdated:
		return unmarshalAs[PaymentStatusUpdated](raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, eventType)
	}
}

func decodeDeliveryEvent(eventType string, raw []byte) (Event, error) {
	switch eventType {
	case TypeDeliveryCreated:
		return unmarshalAs[DeliveryCreated](raw)
	case TypeDriverAssigned:
		return unmarshalAs[DriverAssigned](raw)
	case TypeDeliveryStatusUpdated:
		return unmarshalAs[DeliveryStatusUpdated](raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, eventType)
	}
}

func unmarshalAs[T Event](raw []byte) (Event, error) {
	var event T
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("decode %s: %w", event.Type(), err)
	}
	return event, nil
}
