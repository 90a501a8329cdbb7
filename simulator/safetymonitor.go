package simulator

import (
	"strconv"
	"strings"
	"sync/atomic"

	"alpaca-gateway/device"

	"go.uber.org/zap"
)

// actionSetSafe forces the simulated safety state. Its parameter is a
// boolean.
const actionSetSafe = "SetSafe"

// SafetyMonitor simulates a safety monitor whose state is set through the
// SetSafe action.
type SafetyMonitor struct {
	base
	safe atomic.Bool
}

// NewSafetyMonitor returns a monitor reporting safe unless opts.Unsafe.
func NewSafetyMonitor(opts Options) *SafetyMonitor {
	m := &SafetyMonitor{base: newBase(device.SafetyMonitor, 3, opts)}
	m.safe.Store(!opts.Unsafe)
	return m
}

// IsSafe is false whenever the monitor is disconnected.
func (m *SafetyMonitor) IsSafe() (bool, error) {
	return m.connected.Load() && m.safe.Load(), nil
}

func (m *SafetyMonitor) SupportedActions() ([]string, error) {
	return []string{actionSetSafe}, nil
}

func (m *SafetyMonitor) Action(action, parameters string) (string, error) {
	if !strings.EqualFold(action, actionSetSafe) {
		return "", device.ActionNotImplemented(action)
	}
	safe, err := strconv.ParseBool(strings.TrimSpace(parameters))
	if err != nil {
		return "", device.InvalidValue("%s parameter %q is not a boolean", actionSetSafe, parameters)
	}
	m.safe.Store(safe)
	m.logger.Info("safety state forced", zap.Bool("safe", safe))
	return strconv.FormatBool(safe), nil
}

func (m *SafetyMonitor) DeviceState() ([]device.StateValue, error) {
	safe, _ := m.IsSafe()
	return []device.StateValue{
		{Name: "IsSafe", Value: safe},
		device.TimeStamp(m.now()),
	}, nil
}
