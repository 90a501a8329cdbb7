package registry

import "errors"

var (
	// ErrDeviceNotFound is returned by Resolve when no instance is loaded
	// for the requested type and number.
	ErrDeviceNotFound = errors.New("registry: device not found")

	// ErrWrongType is returned by Load when a driver does not implement the
	// capability interface of the type it is loaded as.
	ErrWrongType = errors.New("registry: driver does not implement device type")
)
