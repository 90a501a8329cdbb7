package simulator

import (
	"sync"

	"alpaca-gateway/device"
)

const (
	rotatorRate     = 5.0 // degrees per second
	rotatorStepSize = 0.1
)

// Rotator simulates a field rotator. Position is the sky position angle,
// which differs from the mechanical angle by the offset set through Sync.
type Rotator struct {
	base

	mu         sync.Mutex
	mechanical motion
	target     float64
	offset     float64
	reverse    bool
}

// NewRotator returns a rotator at mechanical angle 0.
func NewRotator(opts Options) *Rotator {
	return &Rotator{
		base:       newBase(device.Rotator, 4, opts),
		mechanical: rest(0, 360),
	}
}

func (r *Rotator) CanReverse() (bool, error)  { return true, nil }
func (r *Rotator) StepSize() (float64, error) { return rotatorStepSize, nil }

func (r *Rotator) IsMoving() (bool, error) {
	if err := r.require("IsMoving"); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, moving := r.mechanical.at(r.now())
	return moving, nil
}

func (r *Rotator) MechanicalPosition() (float64, error) {
	if err := r.require("MechanicalPosition"); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	pos, _ := r.mechanical.at(r.now())
	return pos, nil
}

func (r *Rotator) Position() (float64, error) {
	if err := r.require("Position"); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	pos, _ := r.mechanical.at(r.now())
	return normDegrees(pos + r.offset), nil
}

func (r *Rotator) Reverse() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reverse, nil
}

func (r *Rotator) SetReverse(reverse bool) error {
	if err := r.require("Reverse"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reverse = reverse
	return nil
}

func (r *Rotator) TargetPosition() (float64, error) {
	if err := r.require("TargetPosition"); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target, nil
}

func (r *Rotator) Halt() error {
	if err := r.require("Halt"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mechanical = r.mechanical.stop(r.now())
	return nil
}

// Move rotates by offset degrees relative to the current sky position.
func (r *Rotator) Move(offset float64) error {
	if err := r.require("Move"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	pos, _ := r.mechanical.at(r.now())
	return r.moveLocked(normDegrees(pos + r.offset + offset))
}

func (r *Rotator) MoveAbsolute(position float64) error {
	if err := r.require("MoveAbsolute"); err != nil {
		return err
	}
	if position < 0 || position >= 360 {
		return device.InvalidValue("position %v is outside 0 to 360", position)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.moveLocked(position)
}

func (r *Rotator) MoveMechanical(position float64) error {
	if err := r.require("MoveMechanical"); err != nil {
		return err
	}
	if position < 0 || position >= 360 {
		return device.InvalidValue("position %v is outside 0 to 360", position)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.moveLocked(normDegrees(position + r.offset))
}

// moveLocked starts a move to sky position target.
func (r *Rotator) moveLocked(target float64) error {
	r.target = target
	r.mechanical = r.mechanical.moveTo(r.now(), normDegrees(target-r.offset), rotatorRate*r.speed)
	return nil
}

// Sync makes the current mechanical angle report as sky position.
func (r *Rotator) Sync(position float64) error {
	if err := r.require("Sync"); err != nil {
		return err
	}
	if position < 0 || position >= 360 {
		return device.InvalidValue("position %v is outside 0 to 360", position)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	mech, _ := r.mechanical.at(r.now())
	r.offset = normDegrees(position - mech)
	r.target = position
	return nil
}

func (r *Rotator) DeviceState() ([]device.StateValue, error) {
	if err := r.require("DeviceState"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	mech, moving := r.mechanical.at(now)
	return []device.StateValue{
		{Name: "IsMoving", Value: moving},
		{Name: "MechanicalPosition", Value: mech},
		{Name: "Position", Value: normDegrees(mech + r.offset)},
		device.TimeStamp(now),
	}, nil
}

func normDegrees(v float64) float64 {
	return rest(0, 360).norm(v)
}
