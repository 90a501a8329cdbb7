package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"alpaca-gateway/device"
	"alpaca-gateway/simulator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type staticIDs map[string]string

func (s staticIDs) UniqueID(t device.Type, n uint32) (string, error) {
	id, ok := s[fmt.Sprintf("%s/%d", t, n)]
	if !ok {
		return "", errors.New("no id")
	}
	return id, nil
}

func TestLoadAndResolve(t *testing.T) {
	r := New(staticIDs{"Dome/0": "dome-0"}, zaptest.NewLogger(t))

	inst, err := r.Load(device.Dome, 0, simulator.NewDome(simulator.Options{Name: "Roll-off"}))
	require.NoError(t, err)
	assert.Equal(t, "Roll-off", inst.Name)
	assert.Equal(t, "dome-0", inst.UniqueID)

	got, err := r.Resolve(device.Dome, 0)
	require.NoError(t, err)
	assert.Same(t, inst.Device, got.Device)

	_, err = r.Resolve(device.Dome, 1)
	assert.ErrorIs(t, err, ErrDeviceNotFound)
	_, err = r.Resolve(device.Telescope, 0)
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestLoadRejectsWrongType(t *testing.T) {
	r := New(nil, zaptest.NewLogger(t))
	_, err := r.Load(device.Telescope, 0, simulator.NewDome(simulator.Options{}))
	assert.ErrorIs(t, err, ErrWrongType)
	_, err = r.Load(device.Dome, 0, nil)
	assert.ErrorIs(t, err, ErrWrongType)
	assert.Zero(t, r.Count())
}

func TestLoadFailsWithoutUniqueID(t *testing.T) {
	r := New(staticIDs{}, zaptest.NewLogger(t))
	_, err := r.Load(device.Dome, 0, simulator.NewDome(simulator.Options{}))
	require.Error(t, err)
	_, err = r.Resolve(device.Dome, 0)
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestLoadReplacesAndUnload(t *testing.T) {
	r := New(nil, zaptest.NewLogger(t))
	_, err := r.Load(device.Focuser, 2, simulator.NewFocuser(simulator.Options{Name: "Old"}))
	require.NoError(t, err)
	_, err = r.Load(device.Focuser, 2, simulator.NewFocuser(simulator.Options{Name: "New"}))
	require.NoError(t, err)
	assert.Equal(t, 1, r.Count())

	inst, err := r.Resolve(device.Focuser, 2)
	require.NoError(t, err)
	assert.Equal(t, "New", inst.Name)

	assert.True(t, r.Unload(device.Focuser, 2))
	assert.False(t, r.Unload(device.Focuser, 2))
	assert.Zero(t, r.Count())
}

func TestListOrder(t *testing.T) {
	r := New(nil, zaptest.NewLogger(t))
	load := func(typ device.Type, n uint32) {
		d, err := simulator.New(typ, simulator.Options{})
		require.NoError(t, err)
		_, err = r.Load(typ, n, d)
		require.NoError(t, err)
	}
	load(device.Telescope, 1)
	load(device.Switch, 0)
	load(device.Telescope, 0)
	load(device.Camera, 3)
	load(device.Camera, 1)

	var got []string
	for _, inst := range r.List() {
		got = append(got, fmt.Sprintf("%s/%d", inst.Type, inst.Number))
	}
	assert.Equal(t, []string{"Camera/1", "Camera/3", "Switch/0", "Telescope/0", "Telescope/1"}, got)
	assert.Empty(t, New(nil, nil).List())
}

func TestConcurrentResolveAndLoad(t *testing.T) {
	r := New(nil, zaptest.NewLogger(t))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n uint32) {
			defer wg.Done()
			_, err := r.Load(device.SafetyMonitor, n, simulator.NewSafetyMonitor(simulator.Options{}))
			assert.NoError(t, err)
		}(uint32(i))
		go func(n uint32) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = r.Resolve(device.SafetyMonitor, n)
				_ = r.List()
			}
		}(uint32(i))
	}
	wg.Wait()
	assert.Equal(t, 8, r.Count())
}

func TestIDStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "ids.yaml")

	s, err := OpenIDStore(path)
	require.NoError(t, err)
	first, err := s.UniqueID(device.Camera, 0)
	require.NoError(t, err)
	_, err = uuid.Parse(first)
	assert.NoError(t, err)

	again, err := s.UniqueID(device.Camera, 0)
	require.NoError(t, err)
	assert.Equal(t, first, again)
	other, err := s.UniqueID(device.Camera, 1)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)

	reopened, err := OpenIDStore(path)
	require.NoError(t, err)
	got, err := reopened.UniqueID(device.Camera, 0)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "camera/0: "+first)
}

func TestIDStoreWithoutPath(t *testing.T) {
	s, err := OpenIDStore("")
	require.NoError(t, err)
	id, err := s.UniqueID(device.Dome, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestIDStoreRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.yaml")
	require.NoError(t, os.WriteFile(path, []byte("unique_ids: [not, a, map]\n"), 0o600))
	_, err := OpenIDStore(path)
	assert.Error(t, err)
}
