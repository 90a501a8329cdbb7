// Package backend exposes switch channels provided by hardware backends as
// one ASCOM Switch device.
package backend

import (
	"fmt"
	"sync/atomic"
	"time"

	"alpaca-gateway/device"

	"github.com/carlmjohnson/versioninfo"
	"go.uber.org/zap"
)

// SwitchBackend is the interface all hardware backends must implement.
// Each backend manages one or more named switches (0-based local IDs).
type SwitchBackend interface {
	// NumSwitches returns the total number of switches this backend controls.
	NumSwitches() int32

	GetName(id int32) string
	SetName(id int32, name string) error
	GetDescription(id int32) string
	GetCanWrite(id int32) bool
	GetMin(id int32) float64
	GetMax(id int32) float64
	GetStep(id int32) float64

	// GetSwitch returns the boolean on/off state of switch id.
	GetSwitch(id int32) (bool, error)
	GetSwitchValue(id int32) (float64, error)
	SetSwitch(id int32, state bool) error
	SetSwitchValue(id int32, value float64) error

	// Connect initialises the backend and connects to hardware.
	Connect() error
	Disconnect()
	IsConnected() bool
}

// Router maps flat global switch IDs to the correct backend and local ID,
// and serves the result as a device.SwitchDevice.
type Router struct {
	device.UnimplementedSwitchAsync

	name        string
	description string
	backends    []SwitchBackend
	// index[globalID] = {backend, localID}
	index     []switchRef
	connected atomic.Bool
	logger    *zap.Logger
}

type switchRef struct {
	backend SwitchBackend
	localID int32
}

// NewRouter builds a Router from an ordered list of backends.
func NewRouter(name string, backends []SwitchBackend, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	if name == "" {
		name = "Alpaca Switch"
	}
	r := &Router{
		name:        name,
		description: "Hardware switch channels",
		backends:    backends,
		logger:      logger.Named("switch"),
	}
	for _, b := range backends {
		for localID := int32(0); localID < b.NumSwitches(); localID++ {
			r.index = append(r.index, switchRef{backend: b, localID: localID})
		}
	}
	return r
}

func (r *Router) ref(globalID int32) (switchRef, error) {
	if globalID < 0 || int(globalID) >= len(r.index) {
		return switchRef{}, device.InvalidValue("switch id %d is outside 0 to %d", globalID, len(r.index)-1)
	}
	return r.index[globalID], nil
}

// live resolves a channel that needs the hardware connection.
func (r *Router) live(member string, id int32) (switchRef, error) {
	if !r.connected.Load() {
		return switchRef{}, device.NotConnected(member)
	}
	return r.ref(id)
}

// hardwareError passes device faults through and reports anything else as a
// driver error.
func (r *Router) hardwareError(member string, id int32, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := device.AsError(err); ok {
		return err
	}
	r.logger.Warn("hardware call failed", zap.String("member", member), zap.Int32("id", id), zap.Error(err))
	return device.DriverError(1, "%s on switch %d failed: %v", member, id, err)
}

func (r *Router) Action(action, _ string) (string, error) {
	return "", device.ActionNotImplemented(action)
}

func (r *Router) CommandBlind(string, bool) error { return device.NotImplemented("CommandBlind") }
func (r *Router) CommandBool(string, bool) (bool, error) {
	return false, device.NotImplemented("CommandBool")
}
func (r *Router) CommandString(string, bool) (string, error) {
	return "", device.NotImplemented("CommandString")
}

func (r *Router) Connected() (bool, error) { return r.connected.Load(), nil }

// SetConnected connects every backend. A backend that fails to connect
// leaves the others disconnected again.
func (r *Router) SetConnected(connected bool) error {
	if !connected {
		for _, b := range r.backends {
			b.Disconnect()
		}
		r.connected.Store(false)
		return nil
	}
	for i, b := range r.backends {
		if err := b.Connect(); err != nil {
			for _, done := range r.backends[:i] {
				done.Disconnect()
			}
			return r.hardwareError("Connect", int32(i), err)
		}
	}
	r.connected.Store(true)
	r.logger.Info("switch connected", zap.Int("switches", len(r.index)), zap.Int("backends", len(r.backends)))
	return nil
}

func (r *Router) Connecting() (bool, error) { return false, nil }
func (r *Router) Connect() error            { return r.SetConnected(true) }
func (r *Router) Disconnect() error         { return r.SetConnected(false) }

func (r *Router) Description() (string, error) { return r.description, nil }
func (r *Router) DriverInfo() (string, error) {
	return "Alpaca gateway hardware switch router", nil
}
func (r *Router) DriverVersion() (string, error)      { return versioninfo.Short(), nil }
func (r *Router) InterfaceVersion() (int32, error)    { return 3, nil }
func (r *Router) Name() (string, error)               { return r.name, nil }
func (r *Router) SupportedActions() ([]string, error) { return []string{}, nil }

// DeviceState reports every channel's state. Channels whose hardware does
// not answer are left out.
func (r *Router) DeviceState() ([]device.StateValue, error) {
	if !r.connected.Load() {
		return nil, device.NotConnected("DeviceState")
	}
	var out []device.StateValue
	for id, ref := range r.index {
		v, err := ref.backend.GetSwitchValue(ref.localID)
		if err != nil {
			r.logger.Debug("channel left out of device state", zap.Int("id", id), zap.Error(err))
			continue
		}
		out = append(out,
			device.StateValue{Name: fmt.Sprintf("GetSwitch%d", id), Value: v > ref.backend.GetMin(ref.localID)},
			device.StateValue{Name: fmt.Sprintf("GetSwitchValue%d", id), Value: v},
		)
	}
	return append(out, device.TimeStamp(time.Now())), nil
}

// MaxSwitch returns the total number of switches across all backends.
func (r *Router) MaxSwitch() (int32, error) { return int32(len(r.index)), nil }

func (r *Router) CanWrite(id int32) (bool, error) {
	ref, err := r.ref(id)
	if err != nil {
		return false, err
	}
	return ref.backend.GetCanWrite(ref.localID), nil
}

func (r *Router) GetSwitchName(id int32) (string, error) {
	ref, err := r.ref(id)
	if err != nil {
		return "", err
	}
	return ref.backend.GetName(ref.localID), nil
}

func (r *Router) SetSwitchName(id int32, name string) error {
	ref, err := r.ref(id)
	if err != nil {
		return err
	}
	return r.hardwareError("SetSwitchName", id, ref.backend.SetName(ref.localID, name))
}

func (r *Router) GetSwitchDescription(id int32) (string, error) {
	ref, err := r.ref(id)
	if err != nil {
		return "", err
	}
	return ref.backend.GetDescription(ref.localID), nil
}

func (r *Router) MinSwitchValue(id int32) (float64, error) {
	ref, err := r.ref(id)
	if err != nil {
		return 0, err
	}
	return ref.backend.GetMin(ref.localID), nil
}

func (r *Router) MaxSwitchValue(id int32) (float64, error) {
	ref, err := r.ref(id)
	if err != nil {
		return 0, err
	}
	return ref.backend.GetMax(ref.localID), nil
}

func (r *Router) SwitchStep(id int32) (float64, error) {
	ref, err := r.ref(id)
	if err != nil {
		return 0, err
	}
	return ref.backend.GetStep(ref.localID), nil
}

func (r *Router) GetSwitch(id int32) (bool, error) {
	ref, err := r.live("GetSwitch", id)
	if err != nil {
		return false, err
	}
	on, err := ref.backend.GetSwitch(ref.localID)
	return on, r.hardwareError("GetSwitch", id, err)
}

func (r *Router) GetSwitchValue(id int32) (float64, error) {
	ref, err := r.live("GetSwitchValue", id)
	if err != nil {
		return 0, err
	}
	v, err := ref.backend.GetSwitchValue(ref.localID)
	return v, r.hardwareError("GetSwitchValue", id, err)
}

func (r *Router) SetSwitch(id int32, state bool) error {
	ref, err := r.live("SetSwitch", id)
	if err != nil {
		return err
	}
	if !ref.backend.GetCanWrite(ref.localID) {
		return device.NotImplemented(fmt.Sprintf("SetSwitch on read-only switch %d", id))
	}
	return r.hardwareError("SetSwitch", id, ref.backend.SetSwitch(ref.localID, state))
}

func (r *Router) SetSwitchValue(id int32, value float64) error {
	ref, err := r.live("SetSwitchValue", id)
	if err != nil {
		return err
	}
	if !ref.backend.GetCanWrite(ref.localID) {
		return device.NotImplemented(fmt.Sprintf("SetSwitchValue on read-only switch %d", id))
	}
	lo, hi := ref.backend.GetMin(ref.localID), ref.backend.GetMax(ref.localID)
	if value < lo || value > hi {
		return device.InvalidValue("value %v for switch %d is outside %v to %v", value, id, lo, hi)
	}
	return r.hardwareError("SetSwitchValue", id, ref.backend.SetSwitchValue(ref.localID, value))
}
