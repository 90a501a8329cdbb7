package simulator

import (
	"sync"

	"alpaca-gateway/device"
)

const (
	focuserDefaultMaxStep = 50000
	focuserStepRate       = 1000.0 // steps per second
	focuserStepSize       = 1.5    // microns per step
	focuserTemperature    = 12.5
)

// Focuser simulates an absolute focuser with temperature compensation.
type Focuser struct {
	base

	mu       sync.Mutex
	maxStep  int32
	position motion
	tempComp bool
}

// NewFocuser returns a focuser at mid travel.
func NewFocuser(opts Options) *Focuser {
	maxStep := opts.MaxStep
	if maxStep <= 0 {
		maxStep = focuserDefaultMaxStep
	}
	return &Focuser{
		base:     newBase(device.Focuser, 4, opts),
		maxStep:  maxStep,
		position: rest(float64(maxStep/2), 0),
	}
}

func (f *Focuser) Absolute() (bool, error)          { return true, nil }
func (f *Focuser) MaxIncrement() (int32, error)     { return f.maxStep, nil }
func (f *Focuser) MaxStep() (int32, error)          { return f.maxStep, nil }
func (f *Focuser) StepSize() (float64, error)       { return focuserStepSize, nil }
func (f *Focuser) TempCompAvailable() (bool, error) { return true, nil }

func (f *Focuser) IsMoving() (bool, error) {
	if err := f.require("IsMoving"); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, moving := f.position.at(f.now())
	return moving, nil
}

func (f *Focuser) Position() (int32, error) {
	if err := f.require("Position"); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	pos, _ := f.position.at(f.now())
	return int32(pos), nil
}

func (f *Focuser) TempComp() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tempComp, nil
}

func (f *Focuser) SetTempComp(enabled bool) error {
	if err := f.require("TempComp"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tempComp = enabled
	return nil
}

func (f *Focuser) Temperature() (float64, error) {
	if err := f.require("Temperature"); err != nil {
		return 0, err
	}
	return focuserTemperature, nil
}

func (f *Focuser) Halt() error {
	if err := f.require("Halt"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.position = f.position.stop(f.now())
	return nil
}

func (f *Focuser) Move(position int32) error {
	if err := f.require("Move"); err != nil {
		return err
	}
	if position < 0 || position > f.maxStep {
		return device.InvalidValue("position %d is outside 0 to %d", position, f.maxStep)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tempComp {
		return device.InvalidOperation("Move is not allowed while temperature compensation is on")
	}
	f.position = f.position.moveTo(f.now(), float64(position), focuserStepRate*f.speed)
	return nil
}

func (f *Focuser) DeviceState() ([]device.StateValue, error) {
	if err := f.require("DeviceState"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.now()
	pos, moving := f.position.at(now)
	return []device.StateValue{
		{Name: "IsMoving", Value: moving},
		{Name: "Position", Value: int32(pos)},
		{Name: "Temperature", Value: focuserTemperature},
		device.TimeStamp(now),
	}, nil
}
