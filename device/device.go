// Package device defines the ASCOM capability interfaces the Alpaca gateway
// dispatches to, together with their enumerations and the driver fault
// taxonomy.
//
// Every member returns an error. Drivers report expected operational
// failures as *Error values (see NotImplemented, InvalidValue and
// NotConnected); anything else is treated by the gateway as an unexpected
// fault. Implementations must be safe for concurrent use: the gateway never
// serializes calls to the same instance.
package device

import "time"

// Device holds the members common to every device type.
type Device interface {
	Action(action, parameters string) (string, error)
	CommandBlind(command string, raw bool) error
	CommandBool(command string, raw bool) (bool, error)
	CommandString(command string, raw bool) (string, error)

	Connected() (bool, error)
	SetConnected(connected bool) error
	Connecting() (bool, error)
	Connect() error
	Disconnect() error

	Description() (string, error)
	DriverInfo() (string, error)
	DriverVersion() (string, error)
	InterfaceVersion() (int32, error)
	Name() (string, error)
	SupportedActions() ([]string, error)

	// DeviceState returns the device's operational properties in one call.
	DeviceState() ([]StateValue, error)
}

// StateValue is one entry of a DeviceState response.
type StateValue struct {
	Name  string `json:"Name"`
	Value any    `json:"Value"`
}

// TimeStamp is the conventional last entry of a DeviceState list.
func TimeStamp(t time.Time) StateValue {
	return StateValue{Name: "TimeStamp", Value: t.UTC().Format("2006-01-02T15:04:05.0000000")}
}

// AxisRate is a supported rate range for Telescope.MoveAxis, in degrees/second.
type AxisRate struct {
	Minimum float64 `json:"Minimum"`
	Maximum float64 `json:"Maximum"`
}
