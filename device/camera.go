package device

import "time"

// CameraState is the exposure state of a camera.
type CameraState int32

const (
	CameraIdle CameraState = iota
	CameraWaiting
	CameraExposing
	CameraReading
	CameraDownload
	CameraError
)

// SensorType is the colour arrangement of a camera sensor.
type SensorType int32

const (
	SensorMonochrome SensorType = iota
	SensorColor
	SensorRGGB
	SensorCMYG
	SensorCMYG2
	SensorLRGB
)

// CameraDevice is the ICameraV4 contract. ImageArray returns the last image
// as a rectangular [x][y] array.
type CameraDevice interface {
	Device

	BayerOffsetX() (int32, error)
	BayerOffsetY() (int32, error)
	BinX() (int32, error)
	SetBinX(bin int32) error
	BinY() (int32, error)
	SetBinY(bin int32) error
	CameraState() (CameraState, error)
	CameraXSize() (int32, error)
	CameraYSize() (int32, error)
	CanAbortExposure() (bool, error)
	CanAsymmetricBin() (bool, error)
	CanFastReadout() (bool, error)
	CanGetCoolerPower() (bool, error)
	CanPulseGuide() (bool, error)
	CanSetCCDTemperature() (bool, error)
	CanStopExposure() (bool, error)
	CCDTemperature() (float64, error)
	CoolerOn() (bool, error)
	SetCoolerOn(on bool) error
	CoolerPower() (float64, error)
	ElectronsPerADU() (float64, error)
	ExposureMax() (float64, error)
	ExposureMin() (float64, error)
	ExposureResolution() (float64, error)
	FastReadout() (bool, error)
	SetFastReadout(fast bool) error
	FullWellCapacity() (float64, error)
	Gain() (int32, error)
	SetGain(gain int32) error
	GainMax() (int32, error)
	GainMin() (int32, error)
	Gains() ([]string, error)
	HasShutter() (bool, error)
	HeatSinkTemperature() (float64, error)
	ImageArray() ([][]int32, error)
	ImageReady() (bool, error)
	IsPulseGuiding() (bool, error)
	LastExposureDuration() (float64, error)
	LastExposureStartTime() (time.Time, error)
	MaxADU() (int32, error)
	MaxBinX() (int32, error)
	MaxBinY() (int32, error)
	NumX() (int32, error)
	SetNumX(n int32) error
	NumY() (int32, error)
	SetNumY(n int32) error
	Offset() (int32, error)
	SetOffset(offset int32) error
	OffsetMax() (int32, error)
	OffsetMin() (int32, error)
	Offsets() ([]string, error)
	PercentCompleted() (int32, error)
	PixelSizeX() (float64, error)
	PixelSizeY() (float64, error)
	ReadoutMode() (int32, error)
	SetReadoutMode(mode int32) error
	ReadoutModes() ([]string, error)
	SensorName() (string, error)
	SensorType() (SensorType, error)
	SetCCDTemperature() (float64, error)
	SetSetCCDTemperature(celsius float64) error
	StartX() (int32, error)
	SetStartX(x int32) error
	StartY() (int32, error)
	SetStartY(y int32) error
	SubExposureDuration() (float64, error)
	SetSubExposureDuration(seconds float64) error

	AbortExposure() error
	PulseGuide(direction GuideDirection, duration time.Duration) error
	StartExposure(duration float64, light bool) error
	StopExposure() error
}
