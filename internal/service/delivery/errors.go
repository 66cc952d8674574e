package delivery

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidDeliveryID     = errors.New("invalid delivery id")
	ErrInvalidOrderID        = errors.New("invalid order id")
	ErrInvalidStatus         = errors.New("invalid delivery status")

	ErrDeliveryNotFound      = errors.New("delivery not found")
	ErrDeliveryAlreadyExists = errors.New("delivery for this order already exists")
	ErrTerminalStatus        = errors.New("delivery is in a terminal status")
)
