package device

import (
	"fmt"
	"strings"
)

// Type identifies an ASCOM device type.
type Type int

// Device types in the order management listings report them.
const (
	Camera Type = iota
	CoverCalibrator
	Dome
	FilterWheel
	Focuser
	ObservingConditions
	Rotator
	SafetyMonitor
	Switch
	Telescope
)

var typeNames = [...]string{
	Camera:              "Camera",
	CoverCalibrator:     "CoverCalibrator",
	Dome:                "Dome",
	FilterWheel:         "FilterWheel",
	Focuser:             "Focuser",
	ObservingConditions: "ObservingConditions",
	Rotator:             "Rotator",
	SafetyMonitor:       "SafetyMonitor",
	Switch:              "Switch",
	Telescope:           "Telescope",
}

// Types lists every device type in listing order.
func Types() []Type {
	out := make([]Type, len(typeNames))
	for i := range typeNames {
		out[i] = Type(i)
	}
	return out
}

// String returns the Alpaca name of the type, e.g. "SafetyMonitor".
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// PathSegment returns the lowercase form used in /api/v1/{type}/ URLs.
func (t Type) PathSegment() string {
	return strings.ToLower(t.String())
}

// ParseType resolves a device type name, ignoring case.
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if strings.EqualFold(name, s) {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("device: unknown device type %q", s)
}

// Implements reports whether d satisfies the capability interface of t.
func (t Type) Implements(d Device) bool {
	var ok bool
	switch t {
	case Camera:
		_, ok = d.(CameraDevice)
	case CoverCalibrator:
		_, ok = d.(CoverCalibratorDevice)
	case Dome:
		_, ok = d.(DomeDevice)
	case FilterWheel:
		_, ok = d.(FilterWheelDevice)
	case Focuser:
		_, ok = d.(FocuserDevice)
	case ObservingConditions:
		_, ok = d.(ObservingConditionsDevice)
	case Rotator:
		_, ok = d.(RotatorDevice)
	case SafetyMonitor:
		_, ok = d.(SafetyMonitorDevice)
	case Switch:
		_, ok = d.(SwitchDevice)
	case Telescope:
		_, ok = d.(TelescopeDevice)
	}
	return ok
}
