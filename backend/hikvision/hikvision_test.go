package hikvision

import (
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"alpaca-gateway/device"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeCamera serves /ISAPI/System/Hardware like a Hikvision camera.
type fakeCamera struct {
	mu   sync.Mutex
	mode string
	puts int
	fail bool
}

func (f *fakeCamera) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.URL.Path != "/ISAPI/System/Hardware" {
		http.NotFound(w, r)
		return
	}
	if f.fail {
		http.Error(w, "Device Busy", http.StatusServiceUnavailable)
		return
	}
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/xml")
		_ = xml.NewEncoder(w).Encode(hardwareService{IrLightSwitch: irLightSwitch{Mode: f.mode}})
	case http.MethodPut:
		var body hardwareService
		if err := xml.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mode = body.IrLightSwitch.Mode
		f.puts++
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeCamera) state() (string, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode, f.puts
}

func newTestBackend(t *testing.T, cams ...*fakeCamera) *Backend {
	t.Helper()
	var cfgs []CameraConfig
	for i, cam := range cams {
		srv := httptest.NewServer(cam)
		t.Cleanup(srv.Close)
		cfgs = append(cfgs, CameraConfig{
			Host:     strings.TrimPrefix(srv.URL, "http://"),
			Username: "admin",
			Password: "secret",
			Name:     []string{"North", "South", "East"}[i],
		})
	}
	return New(cfgs, zaptest.NewLogger(t))
}

func TestConnectReadsCurrentState(t *testing.T) {
	north := &fakeCamera{mode: "open"}
	south := &fakeCamera{mode: "close"}
	b := newTestBackend(t, north, south)

	require.NoError(t, b.Connect())
	assert.True(t, b.IsConnected())
	assert.Equal(t, int32(2), b.NumSwitches())

	v, err := b.GetSwitchValue(0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	v, err = b.GetSwitchValue(1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	b.Disconnect()
	assert.False(t, b.IsConnected())
}

func TestConnectToleratesUnreachableCamera(t *testing.T) {
	cam := &fakeCamera{mode: "open", fail: true}
	b := newTestBackend(t, cam)

	require.NoError(t, b.Connect())
	v, err := b.GetSwitchValue(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestSetSwitch(t *testing.T) {
	cam := &fakeCamera{mode: "close"}
	b := newTestBackend(t, cam)
	require.NoError(t, b.Connect())

	require.NoError(t, b.SetSwitch(0, true))
	mode, _ := cam.state()
	assert.Equal(t, "open", mode)
	on, err := b.GetSwitch(0)
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, b.SetSwitchValue(0, 0))
	mode, puts := cam.state()
	assert.Equal(t, "close", mode)
	assert.Equal(t, 2, puts)
	v, err := b.GetSwitchValue(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestCameraErrors(t *testing.T) {
	cam := &fakeCamera{mode: "close", fail: true}
	b := newTestBackend(t, cam)

	err := b.SetSwitch(0, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camera returned 503: Device Busy")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)

	_, err = b.GetSwitch(0)
	require.Error(t, err)

	_, err = b.GetSwitch(5)
	de, ok := device.AsError(err)
	require.True(t, ok)
	assert.Equal(t, device.ErrNumInvalidValue, de.Number)
}

func TestNamesAndDescriptions(t *testing.T) {
	b := newTestBackend(t, &fakeCamera{mode: "close"})

	assert.Equal(t, "North", b.GetName(0))
	assert.Equal(t, "North IR illuminator", b.GetDescription(0))
	require.NoError(t, b.SetName(0, "Roof"))
	assert.Equal(t, "Roof", b.GetName(0))
	assert.Equal(t, "", b.GetName(3))
	assert.Error(t, b.SetName(3, "x"))
}
