package assignment_retry

import (
	"context"
	"time"

	"github.com/peterPain01/SA-Microserices/pkg/logger"
)

type Service interface {
	RetryPendingAssignments(ctx context.Context) (int64, error)
}

// AssignmentRetry периодически пытается назначить водителей на доставки,
// оставшиеся в pending из-за отсутствия свободных водителей.
type AssignmentRetry struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewAssignmentRetry(log logger.Logger, service Service, interval time.Duration) *AssignmentRetry {
	return &AssignmentRetry{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (a *AssignmentRetry) TTL() time.Duration {
	return a.interval
}

func (a *AssignmentRetry) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, a.interval)
	defer cancel()

	assigned, err := a.service.RetryPendingAssignments(ctxWithTimeout)

	if assigned > 0 {
		a.log.With(
			logger.NewField("assigned_deliveries", assigned),
		).Info("assignment retry")
	}

	return err
}

func (a *AssignmentRetry) Info() string {
	return "assignment retry"
}
