package simulator

import (
	"sync"
	"time"

	"alpaca-gateway/device"

	"go.uber.org/zap"
)

const (
	cameraDefaultWidth  = 64
	cameraDefaultHeight = 48
	cameraMaxBin        = 4
	cameraMaxADU        = 65535
	cameraReadoutTime   = 0.5 // seconds
	cameraPixelSize     = 3.76
	cameraCoolRate      = 0.5 // degrees per second
	cameraAmbient       = 15.0
)

var (
	cameraGains        = []string{"Low", "Medium", "High"}
	cameraOffsets      = []string{"Zero", "Low", "High"}
	cameraReadoutModes = []string{"Normal", "Fast"}
)

// Camera simulates a small monochrome cooled camera. Images are a
// deterministic gradient so clients can check the array geometry.
type Camera struct {
	base

	mu          sync.Mutex
	width       int32
	height      int32
	binX, binY  int32
	startX      int32
	startY      int32
	numX, numY  int32
	gain        int32
	offset      int32
	readoutMode int32
	coolerOn    bool
	setpoint    float64
	ccdTemp     motion
	subExposure float64

	exposing      bool
	light         bool
	exposureStart time.Time
	exposureEnd   time.Time
	lastDuration  *float64
	lastStart     *time.Time
	image         [][]int32
	guide         timer
}

// NewCamera returns an idle camera with the full frame selected.
func NewCamera(opts Options) *Camera {
	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		w, h = cameraDefaultWidth, cameraDefaultHeight
	}
	return &Camera{
		base:     newBase(device.Camera, 4, opts),
		width:    w,
		height:   h,
		binX:     1,
		binY:     1,
		numX:     w,
		numY:     h,
		setpoint: -10,
		ccdTemp:  rest(cameraAmbient, 0),
	}
}

// stateLocked advances an exposure that has finished and returns the
// current state.
func (c *Camera) stateLocked(now time.Time) device.CameraState {
	if !c.exposing {
		return device.CameraIdle
	}
	if now.Before(c.exposureEnd) {
		return device.CameraExposing
	}
	if now.Before(c.exposureEnd.Add(seconds(cameraReadoutTime, c.speed))) {
		return device.CameraReading
	}
	c.finishLocked(c.exposureEnd)
	return device.CameraIdle
}

func (c *Camera) finishLocked(end time.Time) {
	d := end.Sub(c.exposureStart).Seconds()
	start := c.exposureStart
	c.lastDuration = &d
	c.lastStart = &start
	c.image = c.renderLocked(d)
	c.exposing = false
	c.logger.Debug("exposure complete", zap.Float64("duration", d))
}

// renderLocked builds a [x][y] image for the current subframe.
func (c *Camera) renderLocked(duration float64) [][]int32 {
	level := 100.0
	if c.light {
		level += duration * 1000
	}
	img := make([][]int32, c.numX)
	for x := range img {
		img[x] = make([]int32, c.numY)
		for y := range img[x] {
			v := level + float64((int32(x)+c.startX)*c.binX+(int32(y)+c.startY)*c.binY) + float64(c.offset*10)
			if v > cameraMaxADU {
				v = cameraMaxADU
			}
			img[x][y] = int32(v)
		}
	}
	return img
}

func (c *Camera) BayerOffsetX() (int32, error) { return 0, device.NotImplemented("BayerOffsetX") }
func (c *Camera) BayerOffsetY() (int32, error) { return 0, device.NotImplemented("BayerOffsetY") }

func (c *Camera) BinX() (int32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.binX, nil
}

func (c *Camera) SetBinX(bin int32) error { return c.setBin("BinX", bin) }
func (c *Camera) SetBinY(bin int32) error { return c.setBin("BinY", bin) }

func (c *Camera) BinY() (int32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.binY, nil
}

// setBin sets both axes, the camera does not bin asymmetrically.
func (c *Camera) setBin(member string, bin int32) error {
	if bin < 1 || bin > cameraMaxBin {
		return device.InvalidValue("%s %d is outside 1 to %d", member, bin, cameraMaxBin)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.binX, c.binY = bin, bin
	return nil
}

func (c *Camera) CameraState() (device.CameraState, error) {
	if err := c.require("CameraState"); err != nil {
		return device.CameraError, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked(c.now()), nil
}

func (c *Camera) CameraXSize() (int32, error)          { return c.width, nil }
func (c *Camera) CameraYSize() (int32, error)          { return c.height, nil }
func (c *Camera) CanAbortExposure() (bool, error)      { return true, nil }
func (c *Camera) CanAsymmetricBin() (bool, error)      { return false, nil }
func (c *Camera) CanFastReadout() (bool, error)        { return false, nil }
func (c *Camera) CanGetCoolerPower() (bool, error)     { return true, nil }
func (c *Camera) CanPulseGuide() (bool, error)         { return true, nil }
func (c *Camera) CanSetCCDTemperature() (bool, error)  { return true, nil }
func (c *Camera) CanStopExposure() (bool, error)       { return true, nil }
func (c *Camera) ElectronsPerADU() (float64, error)    { return 0.8, nil }
func (c *Camera) ExposureMax() (float64, error)        { return 3600, nil }
func (c *Camera) ExposureMin() (float64, error)        { return 0.001, nil }
func (c *Camera) ExposureResolution() (float64, error) { return 0.001, nil }
func (c *Camera) FullWellCapacity() (float64, error)   { return 50000, nil }
func (c *Camera) GainMax() (int32, error)              { return 0, device.NotImplemented("GainMax") }
func (c *Camera) GainMin() (int32, error)              { return 0, device.NotImplemented("GainMin") }
func (c *Camera) Gains() ([]string, error)             { return append([]string(nil), cameraGains...), nil }
func (c *Camera) HasShutter() (bool, error)            { return true, nil }
func (c *Camera) MaxADU() (int32, error)               { return cameraMaxADU, nil }
func (c *Camera) MaxBinX() (int32, error)              { return cameraMaxBin, nil }
func (c *Camera) MaxBinY() (int32, error)              { return cameraMaxBin, nil }
func (c *Camera) OffsetMax() (int32, error)            { return 0, device.NotImplemented("OffsetMax") }
func (c *Camera) OffsetMin() (int32, error)            { return 0, device.NotImplemented("OffsetMin") }
func (c *Camera) Offsets() ([]string, error)           { return append([]string(nil), cameraOffsets...), nil }
func (c *Camera) PixelSizeX() (float64, error)         { return cameraPixelSize, nil }
func (c *Camera) PixelSizeY() (float64, error)         { return cameraPixelSize, nil }
func (c *Camera) ReadoutModes() ([]string, error)      { return append([]string(nil), cameraReadoutModes...), nil }
func (c *Camera) SensorName() (string, error)          { return "SIM-MONO", nil }
func (c *Camera) SensorType() (device.SensorType, error) {
	return device.SensorMonochrome, nil
}

func (c *Camera) CCDTemperature() (float64, error) {
	if err := c.require("CCDTemperature"); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	t, _ := c.ccdTemp.at(c.now())
	return t, nil
}

func (c *Camera) HeatSinkTemperature() (float64, error) {
	if err := c.require("HeatSinkTemperature"); err != nil {
		return 0, err
	}
	return cameraAmbient, nil
}

func (c *Camera) CoolerOn() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.coolerOn, nil
}

func (c *Camera) SetCoolerOn(on bool) error {
	if err := c.require("CoolerOn"); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.coolerOn = on
	c.retargetCoolerLocked()
	return nil
}

func (c *Camera) retargetCoolerLocked() {
	target := cameraAmbient
	if c.coolerOn {
		target = c.setpoint
	}
	c.ccdTemp = c.ccdTemp.moveTo(c.now(), target, cameraCoolRate*c.speed)
}

// CoolerPower is proportional to the distance below ambient.
func (c *Camera) CoolerPower() (float64, error) {
	if err := c.require("CoolerPower"); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.coolerOn {
		return 0, nil
	}
	t, _ := c.ccdTemp.at(c.now())
	return clamp((cameraAmbient-t)*2.5, 0, 100), nil
}

func (c *Camera) SetCCDTemperature() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setpoint, nil
}

func (c *Camera) SetSetCCDTemperature(celsius float64) error {
	if celsius < -40 || celsius > cameraAmbient {
		return device.InvalidValue("set point %v is outside -40 to %v", celsius, cameraAmbient)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setpoint = celsius
	c.retargetCoolerLocked()
	return nil
}

func (c *Camera) FastReadout() (bool, error) { return false, device.NotImplemented("FastReadout") }
func (c *Camera) SetFastReadout(bool) error  { return device.NotImplemented("FastReadout") }

func (c *Camera) Gain() (int32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gain, nil
}

func (c *Camera) SetGain(gain int32) error {
	if gain < 0 || int(gain) >= len(cameraGains) {
		return device.InvalidValue("gain index %d is outside 0 to %d", gain, len(cameraGains)-1)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gain = gain
	return nil
}

func (c *Camera) Offset() (int32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset, nil
}

func (c *Camera) SetOffset(offset int32) error {
	if offset < 0 || int(offset) >= len(cameraOffsets) {
		return device.InvalidValue("offset index %d is outside 0 to %d", offset, len(cameraOffsets)-1)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset = offset
	return nil
}

func (c *Camera) ReadoutMode() (int32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readoutMode, nil
}

func (c *Camera) SetReadoutMode(mode int32) error {
	if mode < 0 || int(mode) >= len(cameraReadoutModes) {
		return device.InvalidValue("readout mode %d is outside 0 to %d", mode, len(cameraReadoutModes)-1)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readoutMode = mode
	return nil
}

func (c *Camera) ImageArray() ([][]int32, error) {
	if err := c.require("ImageArray"); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stateLocked(c.now())
	if c.image == nil {
		return nil, device.InvalidOperation("there is no image available")
	}
	return c.image, nil
}

func (c *Camera) ImageReady() (bool, error) {
	if err := c.require("ImageReady"); err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stateLocked(c.now())
	return c.image != nil && !c.exposing, nil
}

func (c *Camera) IsPulseGuiding() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.guide.running(c.now()), nil
}

func (c *Camera) PulseGuide(direction device.GuideDirection, duration time.Duration) error {
	if err := c.require("PulseGuide"); err != nil {
		return err
	}
	if !direction.Valid() {
		return device.InvalidValue("guide direction %d is not valid", direction)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.guide = after(c.now(), duration)
	return nil
}

func (c *Camera) LastExposureDuration() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stateLocked(c.now())
	if c.lastDuration == nil {
		return 0, device.ValueNotSet("LastExposureDuration")
	}
	return *c.lastDuration, nil
}

func (c *Camera) LastExposureStartTime() (time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stateLocked(c.now())
	if c.lastStart == nil {
		return time.Time{}, device.ValueNotSet("LastExposureStartTime")
	}
	return *c.lastStart, nil
}

func (c *Camera) NumX() (int32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.numX, nil
}

func (c *Camera) SetNumX(n int32) error {
	if n < 1 {
		return device.InvalidValue("NumX %d must be at least 1", n)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.numX = n
	return nil
}

func (c *Camera) NumY() (int32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.numY, nil
}

func (c *Camera) SetNumY(n int32) error {
	if n < 1 {
		return device.InvalidValue("NumY %d must be at least 1", n)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.numY = n
	return nil
}

func (c *Camera) StartX() (int32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startX, nil
}

func (c *Camera) SetStartX(x int32) error {
	if x < 0 {
		return device.InvalidValue("StartX %d is negative", x)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startX = x
	return nil
}

func (c *Camera) StartY() (int32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startY, nil
}

func (c *Camera) SetStartY(y int32) error {
	if y < 0 {
		return device.InvalidValue("StartY %d is negative", y)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startY = y
	return nil
}

func (c *Camera) PercentCompleted() (int32, error) {
	if err := c.require("PercentCompleted"); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	switch c.stateLocked(now) {
	case device.CameraExposing:
		total := c.exposureEnd.Sub(c.exposureStart)
		if total <= 0 {
			return 100, nil
		}
		return int32(100 * now.Sub(c.exposureStart) / total), nil
	case device.CameraReading:
		return 100, nil
	default:
		if c.image == nil {
			return 0, device.InvalidOperation("no exposure has been started")
		}
		return 100, nil
	}
}

func (c *Camera) SubExposureDuration() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subExposure, nil
}

func (c *Camera) SetSubExposureDuration(seconds float64) error {
	if seconds < 0 {
		return device.InvalidValue("SubExposureDuration %v is negative", seconds)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subExposure = seconds
	return nil
}

func (c *Camera) StartExposure(duration float64, light bool) error {
	if err := c.require("StartExposure"); err != nil {
		return err
	}
	if duration < 0 || duration > 3600 {
		return device.InvalidValue("duration %v is outside 0 to 3600", duration)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if c.stateLocked(now) != device.CameraIdle {
		return device.InvalidOperation("an exposure is already in progress")
	}
	if c.startX+c.numX > c.width/c.binX || c.startY+c.numY > c.height/c.binY {
		return device.InvalidValue("subframe %dx%d at %d,%d exceeds the %dx%d binned sensor",
			c.numX, c.numY, c.startX, c.startY, c.width/c.binX, c.height/c.binY)
	}
	c.exposing = true
	c.light = light
	c.image = nil
	c.exposureStart = now
	c.exposureEnd = now.Add(seconds(duration, c.speed))
	return nil
}

// StopExposure ends the exposure early and keeps the partial image.
func (c *Camera) StopExposure() error {
	if err := c.require("StopExposure"); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if c.stateLocked(now) == device.CameraExposing {
		c.finishLocked(now)
	}
	return nil
}

// AbortExposure ends the exposure and discards the image.
func (c *Camera) AbortExposure() error {
	if err := c.require("AbortExposure"); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exposing = false
	c.image = nil
	return nil
}

func (c *Camera) DeviceState() ([]device.StateValue, error) {
	if err := c.require("DeviceState"); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	state := c.stateLocked(now)
	temp, _ := c.ccdTemp.at(now)
	power := 0.0
	if c.coolerOn {
		power = clamp((cameraAmbient-temp)*2.5, 0, 100)
	}
	return []device.StateValue{
		{Name: "CameraState", Value: int32(state)},
		{Name: "CCDTemperature", Value: temp},
		{Name: "CoolerPower", Value: power},
		{Name: "HeatSinkTemperature", Value: cameraAmbient},
		{Name: "ImageReady", Value: c.image != nil && !c.exposing},
		{Name: "IsPulseGuiding", Value: c.guide.running(now)},
		device.TimeStamp(now),
	}, nil
}
