package device

// CoverStatus is the state of a telescope cover.
type CoverStatus int32

const (
	CoverNotPresent CoverStatus = iota
	CoverClosed
	CoverMoving
	CoverOpen
	CoverUnknown
	CoverError
)

// CalibratorStatus is the state of a flat-field calibrator light.
type CalibratorStatus int32

const (
	CalibratorNotPresent CalibratorStatus = iota
	CalibratorOff
	CalibratorNotReady
	CalibratorReady
	CalibratorUnknown
	CalibratorError
)

// CoverCalibratorDevice is the ICoverCalibratorV2 contract.
type CoverCalibratorDevice interface {
	Device

	Brightness() (int32, error)
	CalibratorState() (CalibratorStatus, error)
	CoverState() (CoverStatus, error)
	MaxBrightness() (int32, error)
	CalibratorChanging() (bool, error)
	CoverMoving() (bool, error)

	CalibratorOff() error
	CalibratorOn(brightness int32) error
	CloseCover() error
	HaltCover() error
	OpenCover() error
}
