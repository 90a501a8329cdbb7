package simulator

import (
	"sync"

	"alpaca-gateway/device"
)

const (
	coverMoveTime        = 4.0 // seconds to open or close
	calibratorWarmupTime = 2.0 // seconds to reach brightness
	calibratorMax        = 255
)

// CoverCalibrator simulates a motorised dust cover with a flat panel.
type CoverCalibrator struct {
	base

	mu         sync.Mutex
	coverOpen  bool
	coverMove  timer
	halted     bool
	brightness int32
	warmup     timer
}

// NewCoverCalibrator returns a closed cover with the light off.
func NewCoverCalibrator(opts Options) *CoverCalibrator {
	return &CoverCalibrator{base: newBase(device.CoverCalibrator, 2, opts)}
}

func (c *CoverCalibrator) MaxBrightness() (int32, error) { return calibratorMax, nil }

func (c *CoverCalibrator) Brightness() (int32, error) {
	if err := c.require("Brightness"); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.brightness, nil
}

func (c *CoverCalibrator) CoverState() (device.CoverStatus, error) {
	if err := c.require("CoverState"); err != nil {
		return device.CoverUnknown, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.coverLocked(), nil
}

func (c *CoverCalibrator) coverLocked() device.CoverStatus {
	switch {
	case c.halted:
		return device.CoverUnknown
	case c.coverMove.running(c.now()):
		return device.CoverMoving
	case c.coverOpen:
		return device.CoverOpen
	default:
		return device.CoverClosed
	}
}

func (c *CoverCalibrator) CoverMoving() (bool, error) {
	s, err := c.CoverState()
	return s == device.CoverMoving, err
}

func (c *CoverCalibrator) CalibratorState() (device.CalibratorStatus, error) {
	if err := c.require("CalibratorState"); err != nil {
		return device.CalibratorUnknown, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calibratorLocked(), nil
}

func (c *CoverCalibrator) calibratorLocked() device.CalibratorStatus {
	switch {
	case c.brightness == 0:
		return device.CalibratorOff
	case c.warmup.running(c.now()):
		return device.CalibratorNotReady
	default:
		return device.CalibratorReady
	}
}

func (c *CoverCalibrator) CalibratorChanging() (bool, error) {
	s, err := c.CalibratorState()
	return s == device.CalibratorNotReady, err
}

func (c *CoverCalibrator) CalibratorOn(brightness int32) error {
	if err := c.require("CalibratorOn"); err != nil {
		return err
	}
	if brightness < 0 || brightness > calibratorMax {
		return device.InvalidValue("brightness %d is outside 0 to %d", brightness, calibratorMax)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.brightness = brightness
	c.warmup = after(c.now(), seconds(calibratorWarmupTime, c.speed))
	return nil
}

func (c *CoverCalibrator) CalibratorOff() error {
	if err := c.require("CalibratorOff"); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.brightness = 0
	c.warmup = timer{}
	return nil
}

func (c *CoverCalibrator) OpenCover() error  { return c.moveCover("OpenCover", true) }
func (c *CoverCalibrator) CloseCover() error { return c.moveCover("CloseCover", false) }

func (c *CoverCalibrator) moveCover(member string, open bool) error {
	if err := c.require(member); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.coverOpen == open && !c.halted {
		return nil
	}
	c.halted = false
	c.coverOpen = open
	c.coverMove = after(c.now(), seconds(coverMoveTime, c.speed))
	return nil
}

// HaltCover leaves the cover in an unknown position if it was moving.
func (c *CoverCalibrator) HaltCover() error {
	if err := c.require("HaltCover"); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.coverMove.running(c.now()) {
		c.coverMove = timer{}
		c.halted = true
	}
	return nil
}

func (c *CoverCalibrator) DeviceState() ([]device.StateValue, error) {
	if err := c.require("DeviceState"); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	cal := c.calibratorLocked()
	cover := c.coverLocked()
	return []device.StateValue{
		{Name: "Brightness", Value: c.brightness},
		{Name: "CalibratorChanging", Value: cal == device.CalibratorNotReady},
		{Name: "CalibratorState", Value: int32(cal)},
		{Name: "CoverMoving", Value: cover == device.CoverMoving},
		{Name: "CoverState", Value: int32(cover)},
		device.TimeStamp(c.now()),
	}, nil
}
