package device

import (
	"errors"
	"fmt"
)

// ASCOM error numbers carried in the ErrorNumber field of Alpaca responses.
const (
	ErrNumNotImplemented       int32 = 0x400
	ErrNumInvalidValue         int32 = 0x401
	ErrNumValueNotSet          int32 = 0x402
	ErrNumNotConnected         int32 = 0x407
	ErrNumInvalidWhileParked   int32 = 0x408
	ErrNumInvalidWhileSlaved   int32 = 0x409
	ErrNumInvalidOperation     int32 = 0x40B
	ErrNumActionNotImplemented int32 = 0x40C
	ErrNumOperationCancelled   int32 = 0x40E
	ErrNumUnspecified          int32 = 0x4FF
	ErrNumDriverBase           int32 = 0x500
	ErrNumDriverMax            int32 = 0xFFF
)

// Error is a driver-level fault. The gateway passes Number and Message
// through to the client inside a normal HTTP 200 response.
type Error struct {
	Number  int32
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (0x%X)", e.Message, e.Number)
}

// Is matches another *Error with the same Number, so callers can write
// errors.Is(err, &device.Error{Number: device.ErrNumNotImplemented}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Number == e.Number
}

// NotImplemented reports a member this device does not provide.
func NotImplemented(member string) *Error {
	return &Error{Number: ErrNumNotImplemented, Message: member + " is not implemented in this driver"}
}

// InvalidValue reports an argument outside its permitted range.
func InvalidValue(format string, args ...any) *Error {
	return &Error{Number: ErrNumInvalidValue, Message: fmt.Sprintf(format, args...)}
}

// ValueNotSet reports a read of a value that has not been set yet.
func ValueNotSet(member string) *Error {
	return &Error{Number: ErrNumValueNotSet, Message: member + " has not been set"}
}

// NotConnected reports an operation that requires a connection.
func NotConnected(member string) *Error {
	return &Error{Number: ErrNumNotConnected, Message: member + " requires the device to be connected"}
}

// InvalidWhileParked reports an operation refused because the device is parked.
func InvalidWhileParked(member string) *Error {
	return &Error{Number: ErrNumInvalidWhileParked, Message: member + " is not allowed while parked"}
}

// InvalidWhileSlaved reports an operation refused because the dome is slaved.
func InvalidWhileSlaved(member string) *Error {
	return &Error{Number: ErrNumInvalidWhileSlaved, Message: member + " is not allowed while slaved"}
}

// InvalidOperation reports a call that is not valid in the current state.
func InvalidOperation(format string, args ...any) *Error {
	return &Error{Number: ErrNumInvalidOperation, Message: fmt.Sprintf(format, args...)}
}

// ActionNotImplemented reports an unknown Action name.
func ActionNotImplemented(action string) *Error {
	return &Error{Number: ErrNumActionNotImplemented, Message: "action " + action + " is not implemented in this driver"}
}

// OperationCancelled reports an operation aborted before it completed.
func OperationCancelled(member string) *Error {
	return &Error{Number: ErrNumOperationCancelled, Message: member + " was cancelled"}
}

// DriverError builds a driver-specific fault. offset is added to the driver
// error base and clamped to the driver range.
func DriverError(offset int32, format string, args ...any) *Error {
	n := ErrNumDriverBase + offset
	if n < ErrNumDriverBase || n > ErrNumDriverMax {
		n = ErrNumDriverBase
	}
	return &Error{Number: n, Message: fmt.Sprintf(format, args...)}
}

// AsError extracts a driver fault from err.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
