package backend

import (
	"errors"
	"testing"

	"alpaca-gateway/device"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeBackend is an in-memory SwitchBackend.
type fakeBackend struct {
	names      []string
	values     []float64
	readOnly   map[int32]bool
	connectErr error
	ioErr      error
	connected  bool
}

func newFake(names ...string) *fakeBackend {
	return &fakeBackend{names: names, values: make([]float64, len(names)), readOnly: map[int32]bool{}}
}

func (f *fakeBackend) NumSwitches() int32                       { return int32(len(f.names)) }
func (f *fakeBackend) GetName(id int32) string                  { return f.names[id] }
func (f *fakeBackend) SetName(id int32, name string) error      { f.names[id] = name; return nil }
func (f *fakeBackend) GetDescription(id int32) string           { return f.names[id] + " channel" }
func (f *fakeBackend) GetCanWrite(id int32) bool                { return !f.readOnly[id] }
func (f *fakeBackend) GetMin(int32) float64                     { return 0 }
func (f *fakeBackend) GetMax(int32) float64                     { return 1 }
func (f *fakeBackend) GetStep(int32) float64                    { return 1 }
func (f *fakeBackend) GetSwitch(id int32) (bool, error)         { return f.values[id] != 0, f.ioErr }
func (f *fakeBackend) GetSwitchValue(id int32) (float64, error) { return f.values[id], f.ioErr }
func (f *fakeBackend) Disconnect()                              { f.connected = false }
func (f *fakeBackend) IsConnected() bool                        { return f.connected }

func (f *fakeBackend) SetSwitch(id int32, state bool) error {
	if state {
		return f.SetSwitchValue(id, 1)
	}
	return f.SetSwitchValue(id, 0)
}

func (f *fakeBackend) SetSwitchValue(id int32, value float64) error {
	if f.ioErr != nil {
		return f.ioErr
	}
	f.values[id] = value
	return nil
}

func (f *fakeBackend) Connect() error {
	if f.connectErr != nil {
		return f.connectErr
	}
	f.connected = true
	return nil
}

func TestRouterImplementsSwitch(t *testing.T) {
	r := NewRouter("", nil, nil)
	assert.True(t, device.Switch.Implements(r))
	name, err := r.Name()
	require.NoError(t, err)
	assert.Equal(t, "Alpaca Switch", name)
}

func TestRouterMapsGlobalIDs(t *testing.T) {
	relays := newFake("Lamp", "Fan")
	hik := newFake("North IR", "South IR", "East IR")
	r := NewRouter("Observatory", []SwitchBackend{relays, hik}, zaptest.NewLogger(t))
	require.NoError(t, r.Connect())

	n, err := r.MaxSwitch()
	require.NoError(t, err)
	assert.Equal(t, int32(5), n)

	names := make([]string, n)
	for id := int32(0); id < n; id++ {
		names[id], err = r.GetSwitchName(id)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"Lamp", "Fan", "North IR", "South IR", "East IR"}, names)

	require.NoError(t, r.SetSwitch(3, true))
	assert.Equal(t, []float64{0, 1, 0}, hik.values)
	on, err := r.GetSwitch(3)
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, r.SetSwitchName(1, "Dew fan"))
	assert.Equal(t, "Dew fan", relays.names[1])
}

func TestRouterErrors(t *testing.T) {
	b := newFake("Lamp", "Sensor")
	b.readOnly[1] = true
	r := NewRouter("Observatory", []SwitchBackend{b}, zaptest.NewLogger(t))

	requireNum := func(t *testing.T, err error, num int32) {
		t.Helper()
		de, ok := device.AsError(err)
		require.True(t, ok, "%v is not a device error", err)
		assert.Equal(t, num, de.Number)
	}

	_, err := r.GetSwitch(0)
	requireNum(t, err, device.ErrNumNotConnected)

	require.NoError(t, r.Connect())
	_, err = r.GetSwitchName(2)
	requireNum(t, err, device.ErrNumInvalidValue)
	requireNum(t, r.SetSwitch(1, true), device.ErrNumNotImplemented)
	requireNum(t, r.SetSwitchValue(0, 2), device.ErrNumInvalidValue)
	requireNum(t, r.SetAsync(0, true), device.ErrNumNotImplemented)

	b.ioErr = errors.New("connection refused")
	err = r.SetSwitch(0, true)
	requireNum(t, err, device.ErrNumDriverBase+1)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRouterConnectFailureRollsBack(t *testing.T) {
	first := newFake("A")
	second := newFake("B")
	second.connectErr = errors.New("no route to host")
	r := NewRouter("Observatory", []SwitchBackend{first, second}, zaptest.NewLogger(t))

	err := r.Connect()
	require.Error(t, err)
	assert.False(t, first.connected)
	connected, _ := r.Connected()
	assert.False(t, connected)
}

func TestRouterDeviceState(t *testing.T) {
	relays := newFake("Lamp")
	cams := newFake("North IR")
	r := NewRouter("Observatory", []SwitchBackend{relays, cams}, zaptest.NewLogger(t))

	_, err := r.DeviceState()
	de, ok := device.AsError(err)
	require.True(t, ok)
	assert.Equal(t, device.ErrNumNotConnected, de.Number)

	require.NoError(t, r.Connect())
	require.NoError(t, r.SetSwitch(1, true))

	state, err := r.DeviceState()
	require.NoError(t, err)
	require.Len(t, state, 5)
	assert.Equal(t, device.StateValue{Name: "GetSwitch0", Value: false}, state[0])
	assert.Equal(t, device.StateValue{Name: "GetSwitchValue0", Value: 0.0}, state[1])
	assert.Equal(t, device.StateValue{Name: "GetSwitch1", Value: true}, state[2])
	assert.Equal(t, device.StateValue{Name: "GetSwitchValue1", Value: 1.0}, state[3])
	assert.Equal(t, "TimeStamp", state[4].Name)

	relays.ioErr = errors.New("timeout")
	state, err = r.DeviceState()
	require.NoError(t, err)
	require.Len(t, state, 3)
	assert.Equal(t, "GetSwitch1", state[0].Name)
}
