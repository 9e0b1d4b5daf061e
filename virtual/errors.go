package virtual

import "errors"

var (
	ErrInvalidConfiguration = errors.New("virtual: invalid configuration")
	ErrMissingIdentity      = errors.New("virtual: measurement does not map to an item")
	ErrInvalidMeasurement   = errors.New("virtual: invalid measurement")
	ErrUnavailableContainer = errors.New("virtual: scroll container unavailable")
	ErrClosed               = errors.New("virtual: engine closed")
)
