// Package refnum генерирует человекочитаемые номера заказов и доставок.
// Формат: <PREFIX>-<YYYYMMDD>-<unix-миллисекунды>-<4 случайные цифры>,
// например ORD-20240115-1705123456789-0042. Номер неизменяем после выдачи.
package refnum

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	OrderPrefix    = "ORD"
	DeliveryPrefix = "DEL"
)

func Generate(prefix string, now time.Time) string {
	suffix := rand.IntN(10000) //nolint:gosec // уникальность обеспечивает millisecond timestamp
	return fmt.Sprintf("%s-%s-%d-%04d", prefix, now.Format("20060102"), now.UnixMilli(), suffix)
}
