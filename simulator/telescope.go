package simulator

import (
	"math"
	"sync"
	"time"

	"alpaca-gateway/device"

	"go.uber.org/zap"
)

const (
	telescopeSlewRate  = 4.0 // degrees per second
	telescopeMaxRate   = 4.0 // MoveAxis limit, degrees per second
	telescopeAperture  = 0.2 // metres
	telescopeFocal     = 1.0 // metres
	telescopeGuideRate = 0.5 * siderealRate
)

// Telescope simulates a German equatorial mount.
//
// The mount position is held as right ascension and declination motions.
// While tracking is off the hour angle stays fixed, so the reported right
// ascension is the stored value advanced by the sidereal time elapsed since
// tracking stopped.
type Telescope struct {
	base

	mu            sync.Mutex
	lat, long     float64
	elevation     float64
	ra            motion // hours
	dec           motion // degrees
	tracking      bool
	trackOffLST   float64
	trackingRate  device.DriveRate
	raRate        float64
	decRate       float64
	guideRateRA   float64
	guideRateDec  float64
	guide         timer
	axisRates     [2]float64
	axisStart     time.Time
	parked        bool
	parking       bool
	homing        bool
	targetRA      *float64
	targetDec     *float64
	settleTime    int32
	refraction    bool
	clockOffset   time.Duration
	equatorialSys device.EquatorialCoordinateType
}

// NewTelescope returns a parked mount at opts' site.
func NewTelescope(opts Options) *Telescope {
	t := &Telescope{
		base:          newBase(device.Telescope, 4, opts),
		lat:           opts.Latitude,
		long:          opts.Longitude,
		elevation:     opts.Elevation,
		guideRateRA:   telescopeGuideRate,
		guideRateDec:  telescopeGuideRate,
		equatorialSys: device.EquTopocentric,
		parked:        true,
	}
	if t.lat == 0 && t.long == 0 {
		t.lat, t.long = 51.4769, -0.0005
	}
	now := t.now()
	t.trackOffLST = localSiderealTime(now, t.long)
	ha, dec := t.parkPosition()
	t.ra = rest(wrapHours(t.trackOffLST-ha), 24)
	t.dec = rest(dec, 0)
	return t
}

// parkPosition points the mount at the visible celestial pole.
func (t *Telescope) parkPosition() (ha, dec float64) {
	if t.lat < 0 {
		return 0, -90
	}
	return 0, 90
}

func (t *Telescope) lstLocked(now time.Time) float64 {
	return localSiderealTime(now.Add(t.clockOffset), t.long)
}

// positionLocked returns the current right ascension, declination and
// whether a slew or axis move is in progress.
func (t *Telescope) positionLocked(now time.Time) (ra, dec float64, moving bool) {
	ra, raMoving := t.ra.at(now)
	dec, decMoving := t.dec.at(now)
	if !t.tracking {
		ra += t.lstLocked(now) - t.trackOffLST
	}
	if t.axisRates != [2]float64{} {
		elapsed := now.Sub(t.axisStart).Seconds()
		ra -= t.axisRates[0] * elapsed / 15
		dec = clamp(dec+t.axisRates[1]*elapsed, -90, 90)
	}
	moving = raMoving || decMoving || t.axisRates != [2]float64{}
	return wrapHours(ra), dec, moving
}

// foldLocked freezes the current position, stopping any slew or axis move.
func (t *Telescope) foldLocked(now time.Time) {
	ra, dec, _ := t.positionLocked(now)
	if !t.tracking {
		ra -= t.lstLocked(now) - t.trackOffLST
	}
	t.ra = rest(wrapHours(ra), 24)
	t.dec = rest(dec, 0)
	t.axisRates = [2]float64{}
}

// slewLocked starts a slew to ra/dec. The caller has validated state.
func (t *Telescope) slewLocked(now time.Time, ra, dec float64) {
	t.foldLocked(now)
	if !t.tracking {
		ra -= t.lstLocked(now) - t.trackOffLST
	}
	t.ra = t.ra.moveTo(now, wrapHours(ra), telescopeSlewRate*t.speed/15)
	t.dec = t.dec.moveTo(now, dec, telescopeSlewRate*t.speed)
	t.homing = false
	t.parking = false
	t.logger.Debug("slew started", zap.Float64("ra", ra), zap.Float64("dec", dec))
}

func (t *Telescope) checkMovable(member string) error {
	if err := t.require(member); err != nil {
		return err
	}
	t.mu.Lock()
	parked := t.atParkLocked(t.now())
	t.mu.Unlock()
	if parked {
		return device.InvalidWhileParked(member)
	}
	return nil
}

func validRADec(ra, dec float64) error {
	if ra < 0 || ra >= 24 {
		return device.InvalidValue("right ascension %v is outside 0 to 24", ra)
	}
	if dec < -90 || dec > 90 {
		return device.InvalidValue("declination %v is outside -90 to 90", dec)
	}
	return nil
}

func validAltAz(az, alt float64) error {
	if az < 0 || az >= 360 {
		return device.InvalidValue("azimuth %v is outside 0 to 360", az)
	}
	if alt < -90 || alt > 90 {
		return device.InvalidValue("altitude %v is outside -90 to 90", alt)
	}
	return nil
}

func (t *Telescope) AlignmentMode() (device.AlignmentMode, error) {
	return device.AlignGermanPolar, nil
}

func (t *Telescope) Altitude() (float64, error) {
	alt, _, err := t.altAz("Altitude")
	return alt, err
}

func (t *Telescope) Azimuth() (float64, error) {
	_, az, err := t.altAz("Azimuth")
	return az, err
}

func (t *Telescope) altAz(member string) (alt, az float64, err error) {
	if err := t.require(member); err != nil {
		return 0, 0, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	ra, dec, _ := t.positionLocked(now)
	alt, az = altAz(hourAngleHours(t.lstLocked(now), ra), dec, t.lat)
	return alt, az, nil
}

func (t *Telescope) ApertureArea() (float64, error) {
	return math.Pi * telescopeAperture * telescopeAperture / 4, nil
}

func (t *Telescope) ApertureDiameter() (float64, error) { return telescopeAperture, nil }
func (t *Telescope) FocalLength() (float64, error)      { return telescopeFocal, nil }

func (t *Telescope) AtHome() (bool, error) {
	if err := t.require("AtHome"); err != nil {
		return false, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _, moving := t.positionLocked(t.now())
	return t.homing && !moving, nil
}

func (t *Telescope) AtPark() (bool, error) {
	if err := t.require("AtPark"); err != nil {
		return false, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.atParkLocked(t.now()), nil
}

func (t *Telescope) atParkLocked(now time.Time) bool {
	if t.parking {
		if _, _, moving := t.positionLocked(now); !moving {
			t.parking = false
			t.parked = true
		}
	}
	return t.parked
}

func (t *Telescope) CanFindHome() (bool, error)              { return true, nil }
func (t *Telescope) CanPark() (bool, error)                  { return true, nil }
func (t *Telescope) CanPulseGuide() (bool, error)            { return true, nil }
func (t *Telescope) CanSetDeclinationRate() (bool, error)    { return true, nil }
func (t *Telescope) CanSetGuideRates() (bool, error)         { return true, nil }
func (t *Telescope) CanSetPark() (bool, error)               { return false, nil }
func (t *Telescope) CanSetPierSide() (bool, error)           { return false, nil }
func (t *Telescope) CanSetRightAscensionRate() (bool, error) { return true, nil }
func (t *Telescope) CanSetTracking() (bool, error)           { return true, nil }
func (t *Telescope) CanSlew() (bool, error)                  { return true, nil }
func (t *Telescope) CanSlewAltAz() (bool, error)             { return true, nil }
func (t *Telescope) CanSlewAltAzAsync() (bool, error)        { return true, nil }
func (t *Telescope) CanSlewAsync() (bool, error)             { return true, nil }
func (t *Telescope) CanSync() (bool, error)                  { return true, nil }
func (t *Telescope) CanSyncAltAz() (bool, error)             { return true, nil }
func (t *Telescope) CanUnpark() (bool, error)                { return true, nil }

func (t *Telescope) RightAscension() (float64, error) {
	if err := t.require("RightAscension"); err != nil {
		return 0, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	ra, _, _ := t.positionLocked(t.now())
	return ra, nil
}

func (t *Telescope) Declination() (float64, error) {
	if err := t.require("Declination"); err != nil {
		return 0, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_, dec, _ := t.positionLocked(t.now())
	return dec, nil
}

func (t *Telescope) DeclinationRate() (float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.decRate, nil
}

func (t *Telescope) SetDeclinationRate(rate float64) error {
	if err := t.require("DeclinationRate"); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.trackingRate != device.DriveSidereal {
		return device.InvalidOperation("DeclinationRate can only be set while tracking at the sidereal rate")
	}
	t.decRate = rate
	return nil
}

func (t *Telescope) RightAscensionRate() (float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.raRate, nil
}

func (t *Telescope) SetRightAscensionRate(rate float64) error {
	if err := t.require("RightAscensionRate"); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.trackingRate != device.DriveSidereal {
		return device.InvalidOperation("RightAscensionRate can only be set while tracking at the sidereal rate")
	}
	t.raRate = rate
	return nil
}

func (t *Telescope) DoesRefraction() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.refraction, nil
}

func (t *Telescope) SetDoesRefraction(enabled bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.refraction = enabled
	return nil
}

func (t *Telescope) EquatorialSystem() (device.EquatorialCoordinateType, error) {
	return t.equatorialSys, nil
}

func (t *Telescope) GuideRateDeclination() (float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.guideRateDec, nil
}

func (t *Telescope) SetGuideRateDeclination(rate float64) error {
	if rate < 0 || rate > telescopeMaxRate {
		return device.InvalidValue("guide rate %v is outside 0 to %v", rate, telescopeMaxRate)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.guideRateDec = rate
	return nil
}

func (t *Telescope) GuideRateRightAscension() (float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.guideRateRA, nil
}

func (t *Telescope) SetGuideRateRightAscension(rate float64) error {
	if rate < 0 || rate > telescopeMaxRate {
		return device.InvalidValue("guide rate %v is outside 0 to %v", rate, telescopeMaxRate)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.guideRateRA = rate
	return nil
}

func (t *Telescope) IsPulseGuiding() (bool, error) {
	if err := t.require("IsPulseGuiding"); err != nil {
		return false, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.guide.running(t.now()), nil
}

// PulseGuide only reports the guide pulse through IsPulseGuiding; the
// position is not nudged.
func (t *Telescope) PulseGuide(direction device.GuideDirection, duration time.Duration) error {
	if err := t.checkMovable("PulseGuide"); err != nil {
		return err
	}
	if !direction.Valid() {
		return device.InvalidValue("guide direction %d is not valid", direction)
	}
	if duration < 0 {
		return device.InvalidValue("guide duration %v is negative", duration)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.guide = after(t.now(), duration)
	return nil
}

func (t *Telescope) SideOfPier() (device.PierSide, error) {
	if err := t.require("SideOfPier"); err != nil {
		return device.PierUnknown, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	ra, _, _ := t.positionLocked(now)
	return pierSide(hourAngleHours(t.lstLocked(now), ra)), nil
}

// pierSide is east, the normal pointing state, while looking west of the
// meridian.
func pierSide(ha float64) device.PierSide {
	if ha >= 0 {
		return device.PierEast
	}
	return device.PierWest
}

func (t *Telescope) SetSideOfPier(device.PierSide) error {
	return device.NotImplemented("SideOfPier")
}

func (t *Telescope) DestinationSideOfPier(ra, dec float64) (device.PierSide, error) {
	if err := t.require("DestinationSideOfPier"); err != nil {
		return device.PierUnknown, err
	}
	if err := validRADec(ra, dec); err != nil {
		return device.PierUnknown, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return pierSide(hourAngleHours(t.lstLocked(t.now()), ra)), nil
}

func (t *Telescope) SiderealTime() (float64, error) {
	if err := t.require("SiderealTime"); err != nil {
		return 0, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lstLocked(t.now()), nil
}

func (t *Telescope) SiteElevation() (float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elevation, nil
}

func (t *Telescope) SetSiteElevation(metres float64) error {
	if metres < -300 || metres > 10000 {
		return device.InvalidValue("site elevation %v is outside -300 to 10000", metres)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.elevation = metres
	return nil
}

func (t *Telescope) SiteLatitude() (float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lat, nil
}

func (t *Telescope) SetSiteLatitude(degrees float64) error {
	if degrees < -90 || degrees > 90 {
		return device.InvalidValue("site latitude %v is outside -90 to 90", degrees)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lat = degrees
	return nil
}

func (t *Telescope) SiteLongitude() (float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.long, nil
}

func (t *Telescope) SetSiteLongitude(degrees float64) error {
	if degrees < -180 || degrees > 180 {
		return device.InvalidValue("site longitude %v is outside -180 to 180", degrees)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.foldLocked(now)
	t.long = degrees
	if !t.tracking {
		t.trackOffLST = t.lstLocked(now)
	}
	return nil
}

func (t *Telescope) Slewing() (bool, error) {
	if err := t.require("Slewing"); err != nil {
		return false, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _, moving := t.positionLocked(t.now())
	return moving, nil
}

func (t *Telescope) SlewSettleTime() (int32, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settleTime, nil
}

func (t *Telescope) SetSlewSettleTime(seconds int32) error {
	if seconds < 0 {
		return device.InvalidValue("slew settle time %d is negative", seconds)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.settleTime = seconds
	return nil
}

func (t *Telescope) TargetDeclination() (float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.targetDec == nil {
		return 0, device.ValueNotSet("TargetDeclination")
	}
	return *t.targetDec, nil
}

func (t *Telescope) SetTargetDeclination(dec float64) error {
	if dec < -90 || dec > 90 {
		return device.InvalidValue("target declination %v is outside -90 to 90", dec)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.targetDec = &dec
	return nil
}

func (t *Telescope) TargetRightAscension() (float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.targetRA == nil {
		return 0, device.ValueNotSet("TargetRightAscension")
	}
	return *t.targetRA, nil
}

func (t *Telescope) SetTargetRightAscension(ra float64) error {
	if ra < 0 || ra >= 24 {
		return device.InvalidValue("target right ascension %v is outside 0 to 24", ra)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.targetRA = &ra
	return nil
}

func (t *Telescope) Tracking() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tracking, nil
}

func (t *Telescope) SetTracking(enabled bool) error {
	if err := t.require("Tracking"); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if enabled && t.parked {
		return device.InvalidWhileParked("Tracking")
	}
	t.setTrackingLocked(t.now(), enabled)
	return nil
}

func (t *Telescope) setTrackingLocked(now time.Time, enabled bool) {
	if enabled == t.tracking {
		return
	}
	t.foldLocked(now)
	lst := t.lstLocked(now)
	if enabled {
		t.ra = rest(wrapHours(t.ra.to+lst-t.trackOffLST), 24)
	} else {
		t.trackOffLST = lst
	}
	t.tracking = enabled
}

func (t *Telescope) TrackingRate() (device.DriveRate, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.trackingRate, nil
}

func (t *Telescope) SetTrackingRate(rate device.DriveRate) error {
	if rate < device.DriveSidereal || rate > device.DriveKing {
		return device.InvalidValue("tracking rate %d is not valid", rate)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.trackingRate = rate
	return nil
}

func (t *Telescope) TrackingRates() ([]device.DriveRate, error) {
	return []device.DriveRate{device.DriveSidereal, device.DriveLunar, device.DriveSolar, device.DriveKing}, nil
}

func (t *Telescope) UTCDate() (time.Time, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now().Add(t.clockOffset).UTC(), nil
}

func (t *Telescope) SetUTCDate(utc time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.foldLocked(now)
	t.clockOffset = utc.Sub(now)
	if !t.tracking {
		t.trackOffLST = t.lstLocked(now)
	}
	return nil
}

func (t *Telescope) AbortSlew() error {
	if err := t.checkMovable("AbortSlew"); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.foldLocked(t.now())
	t.homing = false
	return nil
}

func (t *Telescope) AxisRates(axis device.TelescopeAxis) ([]device.AxisRate, error) {
	if !axis.Valid() {
		return nil, device.InvalidValue("axis %d is not valid", axis)
	}
	if axis == device.AxisTertiary {
		return []device.AxisRate{}, nil
	}
	return []device.AxisRate{{Minimum: 0, Maximum: telescopeMaxRate}}, nil
}

func (t *Telescope) CanMoveAxis(axis device.TelescopeAxis) (bool, error) {
	if !axis.Valid() {
		return false, device.InvalidValue("axis %d is not valid", axis)
	}
	return axis != device.AxisTertiary, nil
}

func (t *Telescope) MoveAxis(axis device.TelescopeAxis, rate float64) error {
	if err := t.checkMovable("MoveAxis"); err != nil {
		return err
	}
	if !axis.Valid() {
		return device.InvalidValue("axis %d is not valid", axis)
	}
	if axis == device.AxisTertiary {
		return device.NotImplemented("MoveAxis on the tertiary axis")
	}
	if math.Abs(rate) > telescopeMaxRate {
		return device.InvalidValue("rate %v exceeds %v", rate, telescopeMaxRate)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	rates := t.axisRates
	t.foldLocked(now)
	rates[axis] = rate
	t.axisRates = rates
	t.axisStart = now
	t.homing = false
	return nil
}

func (t *Telescope) FindHome() error {
	if err := t.checkMovable("FindHome"); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.slewLocked(now, t.lstLocked(now), 0)
	t.homing = true
	return nil
}

func (t *Telescope) Park() error {
	if err := t.require("Park"); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.parked {
		return nil
	}
	now := t.now()
	t.setTrackingLocked(now, false)
	ha, dec := t.parkPosition()
	t.slewLocked(now, t.lstLocked(now)-ha, dec)
	t.parking = true
	return nil
}

func (t *Telescope) SetPark() error {
	return device.NotImplemented("SetPark")
}

func (t *Telescope) Unpark() error {
	if err := t.require("Unpark"); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.parked = false
	t.parking = false
	return nil
}

func (t *Telescope) SlewToAltAz(azimuth, altitude float64) error {
	return t.slewAltAz("SlewToAltAz", azimuth, altitude)
}

func (t *Telescope) SlewToAltAzAsync(azimuth, altitude float64) error {
	return t.slewAltAz("SlewToAltAzAsync", azimuth, altitude)
}

// slewAltAz serves both the synchronous and asynchronous forms; the
// simulator returns as soon as the slew starts.
func (t *Telescope) slewAltAz(member string, azimuth, altitude float64) error {
	if err := t.checkMovable(member); err != nil {
		return err
	}
	if err := validAltAz(azimuth, altitude); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tracking {
		return device.InvalidOperation("%s is not allowed while tracking", member)
	}
	now := t.now()
	ha, dec := hourAngleDec(altitude, azimuth, t.lat)
	t.slewLocked(now, wrapHours(t.lstLocked(now)-ha), dec)
	return nil
}

func (t *Telescope) SlewToCoordinates(ra, dec float64) error {
	return t.slewRADec("SlewToCoordinates", ra, dec, true)
}

func (t *Telescope) SlewToCoordinatesAsync(ra, dec float64) error {
	return t.slewRADec("SlewToCoordinatesAsync", ra, dec, true)
}

func (t *Telescope) SlewToTarget() error {
	return t.slewTarget("SlewToTarget")
}

func (t *Telescope) SlewToTargetAsync() error {
	return t.slewTarget("SlewToTargetAsync")
}

func (t *Telescope) slewTarget(member string) error {
	t.mu.Lock()
	ra, dec := t.targetRA, t.targetDec
	t.mu.Unlock()
	if ra == nil || dec == nil {
		return device.InvalidOperation("%s requires TargetRightAscension and TargetDeclination", member)
	}
	return t.slewRADec(member, *ra, *dec, false)
}

func (t *Telescope) slewRADec(member string, ra, dec float64, setTarget bool) error {
	if err := t.checkMovable(member); err != nil {
		return err
	}
	if err := validRADec(ra, dec); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.tracking {
		return device.InvalidOperation("%s requires tracking to be on", member)
	}
	if setTarget {
		t.targetRA, t.targetDec = &ra, &dec
	}
	t.slewLocked(t.now(), ra, dec)
	return nil
}

func (t *Telescope) SyncToAltAz(azimuth, altitude float64) error {
	if err := t.checkMovable("SyncToAltAz"); err != nil {
		return err
	}
	if err := validAltAz(azimuth, altitude); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tracking {
		return device.InvalidOperation("SyncToAltAz is not allowed while tracking")
	}
	now := t.now()
	ha, dec := hourAngleDec(altitude, azimuth, t.lat)
	t.syncLocked(now, wrapHours(t.lstLocked(now)-ha), dec)
	return nil
}

func (t *Telescope) SyncToCoordinates(ra, dec float64) error {
	if err := t.checkMovable("SyncToCoordinates"); err != nil {
		return err
	}
	if err := validRADec(ra, dec); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.targetRA, t.targetDec = &ra, &dec
	t.syncLocked(t.now(), ra, dec)
	return nil
}

func (t *Telescope) SyncToTarget() error {
	t.mu.Lock()
	ra, dec := t.targetRA, t.targetDec
	t.mu.Unlock()
	if ra == nil || dec == nil {
		return device.InvalidOperation("SyncToTarget requires TargetRightAscension and TargetDeclination")
	}
	return t.SyncToCoordinates(*ra, *dec)
}

func (t *Telescope) syncLocked(now time.Time, ra, dec float64) {
	t.foldLocked(now)
	if !t.tracking {
		ra -= t.lstLocked(now) - t.trackOffLST
	}
	t.ra = rest(wrapHours(ra), 24)
	t.dec = rest(dec, 0)
	t.homing = false
}

func (t *Telescope) DeviceState() ([]device.StateValue, error) {
	if err := t.require("DeviceState"); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	ra, dec, moving := t.positionLocked(now)
	lst := t.lstLocked(now)
	ha := hourAngleHours(lst, ra)
	alt, az := altAz(ha, dec, t.lat)
	return []device.StateValue{
		{Name: "Altitude", Value: alt},
		{Name: "AtHome", Value: t.homing && !moving},
		{Name: "AtPark", Value: t.atParkLocked(now)},
		{Name: "Azimuth", Value: az},
		{Name: "Declination", Value: dec},
		{Name: "IsPulseGuiding", Value: t.guide.running(now)},
		{Name: "RightAscension", Value: ra},
		{Name: "SideOfPier", Value: int32(pierSide(ha))},
		{Name: "SiderealTime", Value: lst},
		{Name: "Slewing", Value: moving},
		{Name: "Tracking", Value: t.tracking},
		{Name: "UTCDate", Value: now.Add(t.clockOffset).UTC().Format(time.RFC3339Nano)},
		device.TimeStamp(now),
	}, nil
}
