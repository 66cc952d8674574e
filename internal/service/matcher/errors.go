package matcher

import "errors"

var (
	ErrInvalidDelivery    = errors.New("delivery is not assignable")
	ErrAlreadyAssigned    = errors.New("delivery is already assigned")
	ErrNoDriversAvailable = errors.New("no drivers available")
	ErrDriverTaken        = errors.New("driver is no longer available")
)
