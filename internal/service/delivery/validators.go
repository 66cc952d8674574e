package delivery

import "strings"

func isValidDeliveryID(deliveryID string) bool {
	return strings.TrimSpace(deliveryID) != ""
}

func isValidOrderID(orderID string) bool {
	return strings.TrimSpace(orderID) != ""
}
