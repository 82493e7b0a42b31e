package soft

import "errors"

var (
	// ErrNotAvailable is returned when a device type is not available.
	ErrNotAvailable = errors.New("device type not available")

	// ErrInvalidCall is returned for calls that are invalid in the
	// current device state or with the given parameters.
	ErrInvalidCall = errors.New("invalid call")

	// ErrReleased is returned when a released object is used.
	ErrReleased = errors.New("object was released")
)
