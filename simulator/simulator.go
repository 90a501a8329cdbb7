// Package simulator provides in-process simulated drivers for every ASCOM
// device type, so the gateway can be run and tested without hardware.
//
// Motion is modelled lazily: an operation records where it started and how
// fast it moves, and property reads work out the current position from the
// clock. No goroutines are started.
package simulator

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"alpaca-gateway/device"

	"github.com/carlmjohnson/versioninfo"
	"go.uber.org/zap"
)

// Options configures a simulated driver. Fields that do not apply to the
// simulated type are ignored.
type Options struct {
	Name        string
	Description string

	// Switch channels.
	Channels []Channel
	// FilterWheel filter names and focus offsets.
	Filters      []string
	FocusOffsets []int32
	// Focuser travel in steps.
	MaxStep int32
	// Camera sensor size in pixels.
	Width  int32
	Height int32
	// SafetyMonitor initial state.
	Unsafe bool
	// Telescope site.
	Latitude  float64
	Longitude float64
	Elevation float64

	// Speed multiplies every simulated motion rate. Zero means 1.
	Speed float64
	// Clock replaces time.Now.
	Clock  func() time.Time
	Logger *zap.Logger
}

// New builds a simulated driver of type t.
func New(t device.Type, opts Options) (device.Device, error) {
	switch t {
	case device.Camera:
		return NewCamera(opts), nil
	case device.CoverCalibrator:
		return NewCoverCalibrator(opts), nil
	case device.Dome:
		return NewDome(opts), nil
	case device.FilterWheel:
		return NewFilterWheel(opts), nil
	case device.Focuser:
		return NewFocuser(opts), nil
	case device.ObservingConditions:
		return NewObservingConditions(opts), nil
	case device.Rotator:
		return NewRotator(opts), nil
	case device.SafetyMonitor:
		return NewSafetyMonitor(opts), nil
	case device.Switch:
		return NewSwitch(opts), nil
	case device.Telescope:
		return NewTelescope(opts), nil
	}
	return nil, fmt.Errorf("simulator: no simulator for %s", t)
}

// base implements the members common to every simulated device.
type base struct {
	kind             device.Type
	name             string
	description      string
	interfaceVersion int32
	speed            float64
	connected        atomic.Bool
	now              func() time.Time
	logger           *zap.Logger
}

func newBase(kind device.Type, interfaceVersion int32, opts Options) base {
	b := base{
		kind:             kind,
		name:             opts.Name,
		description:      opts.Description,
		interfaceVersion: interfaceVersion,
		speed:            opts.Speed,
		now:              opts.Clock,
		logger:           opts.Logger,
	}
	if b.name == "" {
		b.name = "Simulated " + kind.String()
	}
	if b.description == "" {
		b.description = "Alpaca gateway " + strings.ToLower(kind.String()) + " simulator"
	}
	if b.speed <= 0 {
		b.speed = 1
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	b.logger = b.logger.Named("simulator").With(zap.Stringer("type", kind))
	return b
}

func (b *base) Action(action, _ string) (string, error) {
	return "", device.ActionNotImplemented(action)
}

func (b *base) CommandBlind(string, bool) error {
	return device.NotImplemented("CommandBlind")
}

func (b *base) CommandBool(string, bool) (bool, error) {
	return false, device.NotImplemented("CommandBool")
}

func (b *base) CommandString(string, bool) (string, error) {
	return "", device.NotImplemented("CommandString")
}

func (b *base) Connected() (bool, error) { return b.connected.Load(), nil }

func (b *base) SetConnected(connected bool) error {
	if b.connected.Swap(connected) != connected {
		b.logger.Debug("connection changed", zap.Bool("connected", connected))
	}
	return nil
}

// Connecting is always false; simulated connections complete immediately.
func (b *base) Connecting() (bool, error) { return false, nil }
func (b *base) Connect() error            { return b.SetConnected(true) }
func (b *base) Disconnect() error         { return b.SetConnected(false) }
func (b *base) Description() (string, error) {
	return b.description, nil
}

func (b *base) DriverInfo() (string, error) {
	return "Alpaca gateway " + b.kind.String() + " simulator", nil
}

func (b *base) DriverVersion() (string, error) { return versioninfo.Short(), nil }
func (b *base) InterfaceVersion() (int32, error) {
	return b.interfaceVersion, nil
}
func (b *base) Name() (string, error)               { return b.name, nil }
func (b *base) SupportedActions() ([]string, error) { return []string{}, nil }

// require returns NotConnected unless the device is connected.
func (b *base) require(member string) error {
	if !b.connected.Load() {
		return device.NotConnected(member)
	}
	return nil
}
