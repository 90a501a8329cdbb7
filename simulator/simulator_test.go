package simulator

import (
	"sync"
	"testing"
	"time"

	"alpaca-gateway/device"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 20, 22, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func requireErrNum(t *testing.T, err error, num int32) {
	t.Helper()
	require.Error(t, err)
	de, ok := device.AsError(err)
	require.True(t, ok, "expected a device error, got %v", err)
	assert.Equal(t, num, de.Number, de.Message)
}

func TestNewBuildsEveryType(t *testing.T) {
	for _, typ := range device.Types() {
		t.Run(typ.String(), func(t *testing.T) {
			d, err := New(typ, Options{})
			require.NoError(t, err)
			assert.True(t, typ.Implements(d))

			name, err := d.Name()
			require.NoError(t, err)
			assert.Equal(t, "Simulated "+typ.String(), name)

			actions, err := d.SupportedActions()
			require.NoError(t, err)
			assert.NotNil(t, actions)
		})
	}

	_, err := New(device.Type(42), Options{})
	assert.Error(t, err)
}

func TestConnectionLifecycle(t *testing.T) {
	f := NewFocuser(Options{})

	_, err := f.Position()
	requireErrNum(t, err, device.ErrNumNotConnected)

	require.NoError(t, f.Connect())
	connected, err := f.Connected()
	require.NoError(t, err)
	assert.True(t, connected)

	pos, err := f.Position()
	require.NoError(t, err)
	assert.Equal(t, int32(25000), pos)

	require.NoError(t, f.Disconnect())
	_, err = f.Position()
	requireErrNum(t, err, device.ErrNumNotConnected)
}

func TestMotionWrapsShortestWay(t *testing.T) {
	start := time.Unix(0, 0)
	m := rest(350, 360).moveTo(start, 10, 10)

	pos, moving := m.at(start.Add(time.Second))
	assert.True(t, moving)
	assert.InDelta(t, 0, pos, 1e-9)

	pos, moving = m.at(start.Add(3 * time.Second))
	assert.False(t, moving)
	assert.InDelta(t, 10, pos, 1e-9)
}

func TestSwitchAsyncChange(t *testing.T) {
	clock := newFakeClock()
	s := NewSwitch(Options{Clock: clock.Now})
	require.NoError(t, s.Connect())

	canAsync, err := s.CanAsync(3)
	require.NoError(t, err)
	assert.True(t, canAsync)

	require.NoError(t, s.SetAsync(3, true))
	done, err := s.StateChangeComplete(3)
	require.NoError(t, err)
	assert.False(t, done)
	on, err := s.GetSwitch(3)
	require.NoError(t, err)
	assert.False(t, on)

	clock.Advance(3 * time.Second)
	done, err = s.StateChangeComplete(3)
	require.NoError(t, err)
	assert.True(t, done)
	on, err = s.GetSwitch(3)
	require.NoError(t, err)
	assert.True(t, on)
}

func TestSwitchCancelAsync(t *testing.T) {
	clock := newFakeClock()
	s := NewSwitch(Options{Clock: clock.Now})
	require.NoError(t, s.Connect())

	require.NoError(t, s.SetAsyncValue(3, 1))
	require.NoError(t, s.CancelAsync(3))

	_, err := s.StateChangeComplete(3)
	requireErrNum(t, err, device.ErrNumOperationCancelled)

	clock.Advance(10 * time.Second)
	v, err := s.GetSwitchValue(3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	// A new change clears the cancellation.
	require.NoError(t, s.SetSwitch(3, true))
	done, err := s.StateChangeComplete(3)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestSwitchRejectsBadWrites(t *testing.T) {
	s := NewSwitch(Options{})
	require.NoError(t, s.Connect())

	tests := []struct {
		name string
		err  error
		num  int32
	}{
		{"read only", s.SetSwitch(4, true), device.ErrNumNotImplemented},
		{"no async", s.SetAsync(0, true), device.ErrNumNotImplemented},
		{"above max", s.SetSwitchValue(2, 101), device.ErrNumInvalidValue},
		{"off step", s.SetSwitchValue(2, 2.5), device.ErrNumInvalidValue},
		{"bad id", s.SetSwitch(9, true), device.ErrNumInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireErrNum(t, tt.err, tt.num)
		})
	}

	require.NoError(t, s.SetSwitchValue(2, 40))
	v, err := s.GetSwitchValue(2)
	require.NoError(t, err)
	assert.Equal(t, 40.0, v)
}

func TestDomeSlewAndShutter(t *testing.T) {
	clock := newFakeClock()
	d := NewDome(Options{Clock: clock.Now})
	require.NoError(t, d.Connect())

	parked, err := d.AtPark()
	require.NoError(t, err)
	assert.True(t, parked)

	require.NoError(t, d.SlewToAzimuth(90))
	clock.Advance(4500 * time.Millisecond)
	az, err := d.Azimuth()
	require.NoError(t, err)
	assert.InDelta(t, 135, az, 1e-6)
	slewing, err := d.Slewing()
	require.NoError(t, err)
	assert.True(t, slewing)

	clock.Advance(5 * time.Second)
	az, err = d.Azimuth()
	require.NoError(t, err)
	assert.InDelta(t, 90, az, 1e-6)
	parked, err = d.AtPark()
	require.NoError(t, err)
	assert.False(t, parked)

	err = d.SlewToAltitude(30)
	requireErrNum(t, err, device.ErrNumInvalidOperation)

	require.NoError(t, d.OpenShutter())
	status, err := d.ShutterStatus()
	require.NoError(t, err)
	assert.Equal(t, device.ShutterOpening, status)
	clock.Advance(5 * time.Second)
	status, err = d.ShutterStatus()
	require.NoError(t, err)
	assert.Equal(t, device.ShutterOpen, status)
	require.NoError(t, d.SlewToAltitude(30))

	requireErrNum(t, d.SlewToAzimuth(360), device.ErrNumInvalidValue)
}

func TestDomeSlavedRefusesSlew(t *testing.T) {
	d := NewDome(Options{})
	require.NoError(t, d.Connect())
	require.NoError(t, d.SetSlaved(true))

	requireErrNum(t, d.SlewToAzimuth(10), device.ErrNumInvalidWhileSlaved)
	requireErrNum(t, d.Park(), device.ErrNumInvalidWhileSlaved)
}

func TestFocuserMove(t *testing.T) {
	clock := newFakeClock()
	f := NewFocuser(Options{Clock: clock.Now, MaxStep: 10000})
	require.NoError(t, f.Connect())

	require.NoError(t, f.Move(6000))
	clock.Advance(500 * time.Millisecond)
	pos, err := f.Position()
	require.NoError(t, err)
	assert.Equal(t, int32(5500), pos)

	require.NoError(t, f.Halt())
	clock.Advance(time.Second)
	pos, err = f.Position()
	require.NoError(t, err)
	assert.Equal(t, int32(5500), pos)

	requireErrNum(t, f.Move(10001), device.ErrNumInvalidValue)

	require.NoError(t, f.SetTempComp(true))
	requireErrNum(t, f.Move(100), device.ErrNumInvalidOperation)
}

func TestFilterWheelPosition(t *testing.T) {
	clock := newFakeClock()
	w := NewFilterWheel(Options{Clock: clock.Now, Filters: []string{"L", "R", "G", "B"}, FocusOffsets: []int32{0, 10}})
	require.NoError(t, w.Connect())

	offsets, err := w.FocusOffsets()
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 10, 0, 0}, offsets)

	require.NoError(t, w.SetPosition(3))
	pos, err := w.Position()
	require.NoError(t, err)
	assert.Equal(t, int32(-1), pos)
	requireErrNum(t, w.SetPosition(1), device.ErrNumInvalidOperation)

	// 0 to 3 is one slot backwards.
	clock.Advance(time.Second)
	pos, err = w.Position()
	require.NoError(t, err)
	assert.Equal(t, int32(3), pos)

	requireErrNum(t, w.SetPosition(4), device.ErrNumInvalidValue)
}

func TestSafetyMonitorAction(t *testing.T) {
	m := NewSafetyMonitor(Options{})

	safe, err := m.IsSafe()
	require.NoError(t, err)
	assert.False(t, safe, "disconnected monitor is unsafe")

	require.NoError(t, m.Connect())
	safe, err = m.IsSafe()
	require.NoError(t, err)
	assert.True(t, safe)

	out, err := m.Action("setsafe", "false")
	require.NoError(t, err)
	assert.Equal(t, "false", out)
	safe, err = m.IsSafe()
	require.NoError(t, err)
	assert.False(t, safe)

	_, err = m.Action("SetSafe", "maybe")
	requireErrNum(t, err, device.ErrNumInvalidValue)
	_, err = m.Action("Explode", "")
	requireErrNum(t, err, device.ErrNumActionNotImplemented)
}

func TestCameraExposure(t *testing.T) {
	clock := newFakeClock()
	c := NewCamera(Options{Clock: clock.Now})
	require.NoError(t, c.Connect())

	_, err := c.LastExposureDuration()
	requireErrNum(t, err, device.ErrNumValueNotSet)
	_, err = c.ImageArray()
	requireErrNum(t, err, device.ErrNumInvalidOperation)

	require.NoError(t, c.StartExposure(1, true))
	state, err := c.CameraState()
	require.NoError(t, err)
	assert.Equal(t, device.CameraExposing, state)
	requireErrNum(t, c.StartExposure(1, true), device.ErrNumInvalidOperation)

	clock.Advance(time.Second)
	state, err = c.CameraState()
	require.NoError(t, err)
	assert.Equal(t, device.CameraReading, state)

	clock.Advance(time.Second)
	ready, err := c.ImageReady()
	require.NoError(t, err)
	assert.True(t, ready)

	img, err := c.ImageArray()
	require.NoError(t, err)
	require.Len(t, img, 64)
	assert.Len(t, img[0], 48)

	d, err := c.LastExposureDuration()
	require.NoError(t, err)
	assert.InDelta(t, 1, d, 1e-9)
}

func TestCameraSubframeMustFitBinnedSensor(t *testing.T) {
	c := NewCamera(Options{})
	require.NoError(t, c.Connect())

	require.NoError(t, c.SetBinX(2))
	requireErrNum(t, c.StartExposure(0.1, true), device.ErrNumInvalidValue)

	require.NoError(t, c.SetNumX(32))
	require.NoError(t, c.SetNumY(24))
	require.NoError(t, c.StartExposure(0.1, true))

	requireErrNum(t, c.SetBinY(5), device.ErrNumInvalidValue)
}

func TestTelescopeParkedAndTargets(t *testing.T) {
	clock := newFakeClock()
	tel := NewTelescope(Options{Clock: clock.Now})
	require.NoError(t, tel.Connect())

	parked, err := tel.AtPark()
	require.NoError(t, err)
	assert.True(t, parked)
	requireErrNum(t, tel.SlewToCoordinatesAsync(5, 20), device.ErrNumInvalidWhileParked)
	requireErrNum(t, tel.SetTracking(true), device.ErrNumInvalidWhileParked)

	_, err = tel.TargetRightAscension()
	requireErrNum(t, err, device.ErrNumValueNotSet)
	requireErrNum(t, tel.SetTargetDeclination(91), device.ErrNumInvalidValue)
}

func TestTelescopeSlewAndPark(t *testing.T) {
	clock := newFakeClock()
	tel := NewTelescope(Options{Clock: clock.Now})
	require.NoError(t, tel.Connect())
	require.NoError(t, tel.Unpark())

	requireErrNum(t, tel.SlewToCoordinatesAsync(5, 20), device.ErrNumInvalidOperation)

	require.NoError(t, tel.SetTracking(true))
	require.NoError(t, tel.SlewToCoordinatesAsync(5, 20))
	slewing, err := tel.Slewing()
	require.NoError(t, err)
	assert.True(t, slewing)

	clock.Advance(2 * time.Minute)
	slewing, err = tel.Slewing()
	require.NoError(t, err)
	assert.False(t, slewing)
	ra, err := tel.RightAscension()
	require.NoError(t, err)
	assert.InDelta(t, 5, ra, 1e-6)
	dec, err := tel.Declination()
	require.NoError(t, err)
	assert.InDelta(t, 20, dec, 1e-6)

	target, err := tel.TargetRightAscension()
	require.NoError(t, err)
	assert.Equal(t, 5.0, target)

	require.NoError(t, tel.Park())
	tracking, err := tel.Tracking()
	require.NoError(t, err)
	assert.False(t, tracking)

	clock.Advance(2 * time.Minute)
	parked, err := tel.AtPark()
	require.NoError(t, err)
	assert.True(t, parked)
	dec, err = tel.Declination()
	require.NoError(t, err)
	assert.InDelta(t, 90, dec, 1e-6)
}

func TestTelescopeMoveAxis(t *testing.T) {
	clock := newFakeClock()
	tel := NewTelescope(Options{Clock: clock.Now})
	require.NoError(t, tel.Connect())
	require.NoError(t, tel.Unpark())
	require.NoError(t, tel.SyncToCoordinates(10, 0))

	require.NoError(t, tel.MoveAxis(device.AxisSecondary, 2))
	clock.Advance(5 * time.Second)
	dec, err := tel.Declination()
	require.NoError(t, err)
	assert.InDelta(t, 10, dec, 1e-6)

	require.NoError(t, tel.MoveAxis(device.AxisSecondary, 0))
	clock.Advance(5 * time.Second)
	dec, err = tel.Declination()
	require.NoError(t, err)
	assert.InDelta(t, 10, dec, 1e-6)

	requireErrNum(t, tel.MoveAxis(device.AxisSecondary, 5), device.ErrNumInvalidValue)
	requireErrNum(t, tel.MoveAxis(device.AxisTertiary, 1), device.ErrNumNotImplemented)

	rates, err := tel.AxisRates(device.AxisTertiary)
	require.NoError(t, err)
	assert.Empty(t, rates)
}
