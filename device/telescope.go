package device

import "time"

// AlignmentMode is the geometry of a telescope mount.
type AlignmentMode int32

const (
	AlignAltAz AlignmentMode = iota
	AlignPolar
	AlignGermanPolar
)

// EquatorialCoordinateType is the epoch of a mount's coordinates.
type EquatorialCoordinateType int32

const (
	EquOther EquatorialCoordinateType = iota
	EquTopocentric
	EquJ2000
	EquJ2050
	EquB1950
)

// PierSide is the pointing state of a German equatorial mount.
type PierSide int32

const (
	PierUnknown PierSide = -1
	PierEast    PierSide = 0
	PierWest    PierSide = 1
)

// DriveRate is a tracking rate.
type DriveRate int32

const (
	DriveSidereal DriveRate = iota
	DriveLunar
	DriveSolar
	DriveKing
)

// TelescopeAxis identifies a mount axis for MoveAxis and AxisRates.
type TelescopeAxis int32

const (
	AxisPrimary TelescopeAxis = iota
	AxisSecondary
	AxisTertiary
)

// Valid reports whether a is a defined axis.
func (a TelescopeAxis) Valid() bool {
	return a >= AxisPrimary && a <= AxisTertiary
}

// GuideDirection is the direction of a PulseGuide call.
type GuideDirection int32

const (
	GuideNorth GuideDirection = iota
	GuideSouth
	GuideEast
	GuideWest
)

// Valid reports whether d is a defined direction.
func (d GuideDirection) Valid() bool {
	return d >= GuideNorth && d <= GuideWest
}

// TelescopeDevice is the ITelescopeV4 contract. Right ascension is in
// hours, every other angle in degrees.
type TelescopeDevice interface {
	Device

	AlignmentMode() (AlignmentMode, error)
	Altitude() (float64, error)
	ApertureArea() (float64, error)
	ApertureDiameter() (float64, error)
	AtHome() (bool, error)
	AtPark() (bool, error)
	Azimuth() (float64, error)
	CanFindHome() (bool, error)
	CanPark() (bool, error)
	CanPulseGuide() (bool, error)
	CanSetDeclinationRate() (bool, error)
	CanSetGuideRates() (bool, error)
	CanSetPark() (bool, error)
	CanSetPierSide() (bool, error)
	CanSetRightAscensionRate() (bool, error)
	CanSetTracking() (bool, error)
	CanSlew() (bool, error)
	CanSlewAltAz() (bool, error)
	CanSlewAltAzAsync() (bool, error)
	CanSlewAsync() (bool, error)
	CanSync() (bool, error)
	CanSyncAltAz() (bool, error)
	CanUnpark() (bool, error)
	Declination() (float64, error)
	DeclinationRate() (float64, error)
	SetDeclinationRate(rate float64) error
	DoesRefraction() (bool, error)
	SetDoesRefraction(enabled bool) error
	EquatorialSystem() (EquatorialCoordinateType, error)
	FocalLength() (float64, error)
	GuideRateDeclination() (float64, error)
	SetGuideRateDeclination(rate float64) error
	GuideRateRightAscension() (float64, error)
	SetGuideRateRightAscension(rate float64) error
	IsPulseGuiding() (bool, error)
	RightAscension() (float64, error)
	RightAscensionRate() (float64, error)
	SetRightAscensionRate(rate float64) error
	SideOfPier() (PierSide, error)
	SetSideOfPier(side PierSide) error
	SiderealTime() (float64, error)
	SiteElevation() (float64, error)
	SetSiteElevation(metres float64) error
	SiteLatitude() (float64, error)
	SetSiteLatitude(degrees float64) error
	SiteLongitude() (float64, error)
	SetSiteLongitude(degrees float64) error
	Slewing() (bool, error)
	SlewSettleTime() (int32, error)
	SetSlewSettleTime(seconds int32) error
	TargetDeclination() (float64, error)
	SetTargetDeclination(dec float64) error
	TargetRightAscension() (float64, error)
	SetTargetRightAscension(ra float64) error
	Tracking() (bool, error)
	SetTracking(enabled bool) error
	TrackingRate() (DriveRate, error)
	SetTrackingRate(rate DriveRate) error
	TrackingRates() ([]DriveRate, error)
	UTCDate() (time.Time, error)
	SetUTCDate(t time.Time) error

	AbortSlew() error
	AxisRates(axis TelescopeAxis) ([]AxisRate, error)
	CanMoveAxis(axis TelescopeAxis) (bool, error)
	DestinationSideOfPier(ra, dec float64) (PierSide, error)
	FindHome() error
	MoveAxis(axis TelescopeAxis, rate float64) error
	Park() error
	PulseGuide(direction GuideDirection, duration time.Duration) error
	SetPark() error
	SlewToAltAz(azimuth, altitude float64) error
	SlewToAltAzAsync(azimuth, altitude float64) error
	SlewToCoordinates(ra, dec float64) error
	SlewToCoordinatesAsync(ra, dec float64) error
	SlewToTarget() error
	SlewToTargetAsync() error
	SyncToAltAz(azimuth, altitude float64) error
	SyncToCoordinates(ra, dec float64) error
	SyncToTarget() error
	Unpark() error
}
