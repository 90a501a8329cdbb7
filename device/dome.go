package device

// ShutterState is the status of a dome shutter or roll-off roof.
type ShutterState int32

const (
	ShutterOpen ShutterState = iota
	ShutterClosed
	ShutterOpening
	ShutterClosing
	ShutterError
)

func (s ShutterState) String() string {
	switch s {
	case ShutterOpen:
		return "Open"
	case ShutterClosed:
		return "Closed"
	case ShutterOpening:
		return "Opening"
	case ShutterClosing:
		return "Closing"
	default:
		return "Error"
	}
}

// DomeDevice is the IDomeV3 contract.
type DomeDevice interface {
	Device

	Altitude() (float64, error)
	AtHome() (bool, error)
	AtPark() (bool, error)
	Azimuth() (float64, error)
	CanFindHome() (bool, error)
	CanPark() (bool, error)
	CanSetAltitude() (bool, error)
	CanSetAzimuth() (bool, error)
	CanSetPark() (bool, error)
	CanSetShutter() (bool, error)
	CanSlave() (bool, error)
	CanSyncAzimuth() (bool, error)
	ShutterStatus() (ShutterState, error)
	Slaved() (bool, error)
	SetSlaved(slaved bool) error
	Slewing() (bool, error)

	AbortSlew() error
	CloseShutter() error
	FindHome() error
	OpenShutter() error
	Park() error
	SetPark() error
	SlewToAltitude(altitude float64) error
	SlewToAzimuth(azimuth float64) error
	SyncToAzimuth(azimuth float64) error
}

// UnimplementedDome answers every dome member with NotImplemented. Embed it
// and override the members a driver supports.
type UnimplementedDome struct{}

func (UnimplementedDome) Altitude() (float64, error) { return 0, NotImplemented("Altitude") }
func (UnimplementedDome) AtHome() (bool, error)      { return false, NotImplemented("AtHome") }
func (UnimplementedDome) AtPark() (bool, error)      { return false, NotImplemented("AtPark") }
func (UnimplementedDome) Azimuth() (float64, error)  { return 0, NotImplemented("Azimuth") }
func (UnimplementedDome) CanFindHome() (bool, error) { return false, nil }
func (UnimplementedDome) CanPark() (bool, error)     { return false, nil }
func (UnimplementedDome) CanSetAltitude() (bool, error) {
	return false, nil
}
func (UnimplementedDome) CanSetAzimuth() (bool, error)  { return false, nil }
func (UnimplementedDome) CanSetPark() (bool, error)     { return false, nil }
func (UnimplementedDome) CanSetShutter() (bool, error)  { return false, nil }
func (UnimplementedDome) CanSlave() (bool, error)       { return false, nil }
func (UnimplementedDome) CanSyncAzimuth() (bool, error) { return false, nil }
func (UnimplementedDome) ShutterStatus() (ShutterState, error) {
	return ShutterError, NotImplemented("ShutterStatus")
}
func (UnimplementedDome) Slaved() (bool, error)  { return false, nil }
func (UnimplementedDome) SetSlaved(bool) error   { return NotImplemented("Slaved") }
func (UnimplementedDome) Slewing() (bool, error) { return false, nil }
func (UnimplementedDome) AbortSlew() error       { return NotImplemented("AbortSlew") }
func (UnimplementedDome) CloseShutter() error    { return NotImplemented("CloseShutter") }
func (UnimplementedDome) FindHome() error        { return NotImplemented("FindHome") }
func (UnimplementedDome) OpenShutter() error     { return NotImplemented("OpenShutter") }
func (UnimplementedDome) Park() error            { return NotImplemented("Park") }
func (UnimplementedDome) SetPark() error         { return NotImplemented("SetPark") }
func (UnimplementedDome) SlewToAltitude(float64) error {
	return NotImplemented("SlewToAltitude")
}
func (UnimplementedDome) SlewToAzimuth(float64) error { return NotImplemented("SlewToAzimuth") }
func (UnimplementedDome) SyncToAzimuth(float64) error { return NotImplemented("SyncToAzimuth") }
