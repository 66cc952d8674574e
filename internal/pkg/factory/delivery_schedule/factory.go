package delivery_schedule

import "time"

const (
	pickupWindow   = 30 * time.Minute
	deliveryWindow = 2 * time.Hour
)

// ScheduleFactory вычисляет плановые времена забора и вручения
// при назначении водителя.
type ScheduleFactory struct{}

func New() *ScheduleFactory {
	return &ScheduleFactory{}
}

func (f *ScheduleFactory) EstimatedPickupTime(baseTime time.Time) time.Time {
	return baseTime.Add(pickupWindow)
}

func (f *ScheduleFactory) EstimatedDeliveryTime(baseTime time.Time) time.Time {
	return baseTime.Add(deliveryWindow)
}
