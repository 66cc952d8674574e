package user_checkout

import (
	"context"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"github.com/peterPain01/SA-Microserices/internal/events"
	"github.com/peterPain01/SA-Microserices/pkg/logger"
)

type Handler struct {
	orderService             Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, orderService Service, timeout time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		orderService:             orderService,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				// Messages() закрыт — выходим
				h.log.Info("user.checkout: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// Сессия закрыта (rebalance или остановка consumer group) — выходим
			h.log.Info("user.checkout: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing обрабатывает одно сообщение из Kafka.
// Возвращает true, если нужно прервать ConsumeClaim (при отмене контекста).
// Возвращает false для продолжения обработки следующих сообщений.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	event, err := events.Decode(message.Topic, message.Value)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("user.checkout handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	checkout, ok := event.(events.UserCheckout)
	if !ok {
		h.log.With(
			logger.NewField("event_type", event.Type()),
			logger.NewField("offset", message.Offset),
		).Warn("user.checkout handler skipping unexpected event")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("user", checkout.UserID),
		logger.NewField("cart", checkout.CartID),
		logger.NewField("offset", message.Offset),
	)

	msgLog.Info("user.checkout processing")

	order, err := h.orderService.CreateFromCheckout(ctx, checkout)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			msgLog.With(
				logger.NewField("error", err),
			).Warn("user.checkout handler context cancelled, message will be reprocessed")
			return true
		}

		msgLog.With(
			logger.NewField("error", err),
		).Warn("user.checkout handler failed to create order")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.With(
		logger.NewField("order", order.ID),
		logger.NewField("order_number", order.OrderNumber),
	).Info("user.checkout: processed")

	sess.MarkMessage(message, "")
	return false
}
