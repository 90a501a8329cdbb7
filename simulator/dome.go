package simulator

import (
	"math"
	"sync"
	"time"

	"alpaca-gateway/device"

	"go.uber.org/zap"
)

const (
	domeSlewRate      = 10.0 // degrees per second
	domeShutterTime   = 5.0  // seconds to open or close
	domeMaxAltitude   = 90.0
	domeHomeTolerance = 0.5
)

// Dome simulates a rotating dome with a shutter that also moves in altitude.
type Dome struct {
	base

	mu          sync.Mutex
	azimuth     motion
	altitude    motion
	shutterOpen bool
	shutterMove timer
	slaved      bool
	parking     bool
	parkAz      float64
	homeAz      float64
}

// NewDome returns a dome parked at azimuth 180 with the shutter closed.
func NewDome(opts Options) *Dome {
	return &Dome{
		base:     newBase(device.Dome, 3, opts),
		azimuth:  rest(180, 360),
		altitude: rest(0, 0),
		parkAz:   180,
		parking:  true,
	}
}

func (d *Dome) Altitude() (float64, error) {
	if err := d.require("Altitude"); err != nil {
		return 0, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	alt, _ := d.altitude.at(d.now())
	return alt, nil
}

func (d *Dome) AtHome() (bool, error) {
	if err := d.require("AtHome"); err != nil {
		return false, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	az, moving := d.azimuth.at(d.now())
	return !moving && angleDistance(az, d.homeAz) < domeHomeTolerance, nil
}

func (d *Dome) AtPark() (bool, error) {
	if err := d.require("AtPark"); err != nil {
		return false, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.atParkLocked(d.now()), nil
}

func (d *Dome) atParkLocked(now time.Time) bool {
	_, moving := d.azimuth.at(now)
	return d.parking && !moving
}

func (d *Dome) Azimuth() (float64, error) {
	if err := d.require("Azimuth"); err != nil {
		return 0, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	az, _ := d.azimuth.at(d.now())
	return az, nil
}

func (d *Dome) CanFindHome() (bool, error)    { return true, nil }
func (d *Dome) CanPark() (bool, error)        { return true, nil }
func (d *Dome) CanSetAltitude() (bool, error) { return true, nil }
func (d *Dome) CanSetAzimuth() (bool, error)  { return true, nil }
func (d *Dome) CanSetPark() (bool, error)     { return true, nil }
func (d *Dome) CanSetShutter() (bool, error)  { return true, nil }
func (d *Dome) CanSlave() (bool, error)       { return true, nil }
func (d *Dome) CanSyncAzimuth() (bool, error) { return true, nil }

func (d *Dome) ShutterStatus() (device.ShutterState, error) {
	if err := d.require("ShutterStatus"); err != nil {
		return device.ShutterError, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shutterLocked(d.now()), nil
}

func (d *Dome) shutterLocked(now time.Time) device.ShutterState {
	switch {
	case d.shutterMove.running(now) && d.shutterOpen:
		return device.ShutterOpening
	case d.shutterMove.running(now):
		return device.ShutterClosing
	case d.shutterOpen:
		return device.ShutterOpen
	default:
		return device.ShutterClosed
	}
}

func (d *Dome) Slaved() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.slaved, nil
}

func (d *Dome) SetSlaved(slaved bool) error {
	if err := d.require("Slaved"); err != nil {
		return err
	}
	d.mu.Lock()
	d.slaved = slaved
	d.mu.Unlock()
	d.logger.Debug("slaved changed", zap.Bool("slaved", slaved))
	return nil
}

func (d *Dome) Slewing() (bool, error) {
	if err := d.require("Slewing"); err != nil {
		return false, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	_, azMoving := d.azimuth.at(now)
	_, altMoving := d.altitude.at(now)
	return azMoving || altMoving || d.shutterMove.running(now), nil
}

func (d *Dome) AbortSlew() error {
	if err := d.require("AbortSlew"); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	d.azimuth = d.azimuth.stop(now)
	d.altitude = d.altitude.stop(now)
	d.parking = false
	return nil
}

func (d *Dome) OpenShutter() error  { return d.moveShutter("OpenShutter", true) }
func (d *Dome) CloseShutter() error { return d.moveShutter("CloseShutter", false) }

func (d *Dome) moveShutter(member string, open bool) error {
	if err := d.require(member); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	if d.shutterOpen == open {
		return nil
	}
	d.shutterOpen = open
	d.shutterMove = after(now, seconds(domeShutterTime, d.speed))
	if !open {
		d.altitude = d.altitude.moveTo(now, 0, domeSlewRate*d.speed)
	}
	return nil
}

func (d *Dome) FindHome() error {
	if err := d.require("FindHome"); err != nil {
		return err
	}
	return d.slewAzimuth("FindHome", d.homeAz, false)
}

func (d *Dome) Park() error {
	if err := d.require("Park"); err != nil {
		return err
	}
	return d.slewAzimuth("Park", d.parkAz, true)
}

func (d *Dome) SetPark() error {
	if err := d.require("SetPark"); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.parkAz, _ = d.azimuth.at(d.now())
	return nil
}

func (d *Dome) SlewToAltitude(altitude float64) error {
	if err := d.require("SlewToAltitude"); err != nil {
		return err
	}
	if altitude < 0 || altitude > domeMaxAltitude {
		return device.InvalidValue("altitude %v is outside 0 to %v", altitude, domeMaxAltitude)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	if s := d.shutterLocked(now); s != device.ShutterOpen {
		return device.InvalidOperation("shutter must be open to set altitude, it is %s", s)
	}
	d.altitude = d.altitude.moveTo(now, altitude, domeSlewRate*d.speed)
	return nil
}

func (d *Dome) SlewToAzimuth(azimuth float64) error {
	if err := d.require("SlewToAzimuth"); err != nil {
		return err
	}
	if azimuth < 0 || azimuth >= 360 {
		return device.InvalidValue("azimuth %v is outside 0 to 360", azimuth)
	}
	return d.slewAzimuth("SlewToAzimuth", azimuth, false)
}

func (d *Dome) slewAzimuth(member string, azimuth float64, park bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.slaved {
		return device.InvalidWhileSlaved(member)
	}
	d.azimuth = d.azimuth.moveTo(d.now(), azimuth, domeSlewRate*d.speed)
	d.parking = park
	return nil
}

func (d *Dome) SyncToAzimuth(azimuth float64) error {
	if err := d.require("SyncToAzimuth"); err != nil {
		return err
	}
	if azimuth < 0 || azimuth >= 360 {
		return device.InvalidValue("azimuth %v is outside 0 to 360", azimuth)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.azimuth = rest(azimuth, 360)
	d.parking = false
	return nil
}

func (d *Dome) DeviceState() ([]device.StateValue, error) {
	if err := d.require("DeviceState"); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	az, azMoving := d.azimuth.at(now)
	alt, altMoving := d.altitude.at(now)
	return []device.StateValue{
		{Name: "Altitude", Value: alt},
		{Name: "AtHome", Value: !azMoving && angleDistance(az, d.homeAz) < domeHomeTolerance},
		{Name: "AtPark", Value: d.atParkLocked(now)},
		{Name: "Azimuth", Value: az},
		{Name: "ShutterStatus", Value: int32(d.shutterLocked(now))},
		{Name: "Slewing", Value: azMoving || altMoving || d.shutterMove.running(now)},
		device.TimeStamp(now),
	}, nil
}

// angleDistance is the absolute shortest distance between two angles in
// degrees.
func angleDistance(a, b float64) float64 {
	return math.Abs(math.Remainder(a-b, 360))
}
