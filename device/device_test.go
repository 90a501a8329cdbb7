package device

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeNames(t *testing.T) {
	tests := []struct {
		typ  Type
		name string
		path string
	}{
		{Camera, "Camera", "camera"},
		{CoverCalibrator, "CoverCalibrator", "covercalibrator"},
		{ObservingConditions, "ObservingConditions", "observingconditions"},
		{SafetyMonitor, "SafetyMonitor", "safetymonitor"},
		{Telescope, "Telescope", "telescope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.typ.String())
			assert.Equal(t, tt.path, tt.typ.PathSegment())

			got, err := ParseType(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.typ, got)
		})
	}

	assert.Len(t, Types(), 10)
	assert.Equal(t, "Type(42)", Type(42).String())
	_, err := ParseType("toaster")
	assert.Error(t, err)
}

func TestErrorNumbers(t *testing.T) {
	tests := []struct {
		err  *Error
		want int32
	}{
		{NotImplemented("Park"), ErrNumNotImplemented},
		{InvalidValue("bad %d", 1), ErrNumInvalidValue},
		{ValueNotSet("TargetRightAscension"), ErrNumValueNotSet},
		{NotConnected("Azimuth"), ErrNumNotConnected},
		{InvalidWhileParked("SlewToAltAz"), ErrNumInvalidWhileParked},
		{InvalidWhileSlaved("SlewToAzimuth"), ErrNumInvalidWhileSlaved},
		{InvalidOperation("busy"), ErrNumInvalidOperation},
		{ActionNotImplemented("Dance"), ErrNumActionNotImplemented},
		{OperationCancelled("SetAsync"), ErrNumOperationCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.err.Message, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Number)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestDriverErrorRange(t *testing.T) {
	assert.Equal(t, ErrNumDriverBase+7, DriverError(7, "relay %d", 7).Number)
	assert.Equal(t, ErrNumDriverBase, DriverError(-1, "x").Number)
	assert.Equal(t, ErrNumDriverBase, DriverError(0x1000, "x").Number)
	assert.Equal(t, "relay 3", DriverError(1, "relay %d", 3).Message)
}

func TestAsErrorUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("slewing: %w", InvalidWhileParked("SlewToTarget"))
	de, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrNumInvalidWhileParked, de.Number)
	assert.True(t, errors.Is(wrapped, &Error{Number: ErrNumInvalidWhileParked}))
	assert.False(t, errors.Is(wrapped, &Error{Number: ErrNumNotConnected}))

	_, ok = AsError(errors.New("plain"))
	assert.False(t, ok)
}

func TestTimeStamp(t *testing.T) {
	ts := TimeStamp(time.Date(2024, 3, 20, 22, 5, 6, 123456700, time.FixedZone("CET", 3600)))
	assert.Equal(t, "TimeStamp", ts.Name)
	assert.Equal(t, "2024-03-20T21:05:06.1234567", ts.Value)
}

func TestUnimplementedSwitchAsync(t *testing.T) {
	var u UnimplementedSwitchAsync
	can, err := u.CanAsync(0)
	require.NoError(t, err)
	assert.False(t, can)
	assert.ErrorIs(t, u.SetAsync(0, true), &Error{Number: ErrNumNotImplemented})
	assert.ErrorIs(t, u.CancelAsync(0), &Error{Number: ErrNumNotImplemented})
}
