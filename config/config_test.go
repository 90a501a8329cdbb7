package config

import (
	"os"
	"path/filepath"
	"testing"

	"alpaca-gateway/device"
	"alpaca-gateway/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testHash = "$argon2id$v=19$m=65536,t=3,p=1$c2FsdHNhbHRzYWx0c2FsdA$0W+y6a2b1L0z7ZbF3n0vY5Q3nI2b1tX4s8mK1f0gD7E"

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alpaca.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadRequiresExplicitStrict(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	_, err := Load(writeConfig(t, "port: 11111\n"))
	assert.ErrorIs(t, err, ErrStrictUnset)

	cfg, err := Load(writeConfig(t, "server:\n  strict: false\n"))
	require.NoError(t, err)
	assert.False(t, cfg.Server.Strict)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ALPACA_SERVER_STRICT", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Server.Strict)
	assert.Equal(t, uint(11111), cfg.Port)
	assert.True(t, cfg.Server.Discovery)
	assert.Equal(t, uint(server.DiscoveryPort), cfg.Server.DiscoveryPort)
	assert.Equal(t, "alpaca-ids.yaml", cfg.UniqueIDFile)
	assert.Equal(t, zap.InfoLevel, cfg.LogLevel)
	assert.Empty(t, cfg.Devices)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ALPACA_PORT", "8080")
	path := writeConfig(t, `
log_level: debug
port: 11111
server:
  strict: true
  discovery: false
  name: Backyard Observatory
auth:
  enabled: true
  username: observer
  password_hash: "$argon2id$v=19$m=65536,t=3,p=1$c2FsdHNhbHRzYWx0c2FsdA$0W+y6a2b1L0z7ZbF3n0vY5Q3nI2b1tX4s8mK1f0gD7E"
devices:
  - type: telescope
    number: 0
    name: Mount
    latitude: 51.5
  - type: FilterWheel
    number: 0
    filters: [L, R, G, B]
    focus_offsets: [0, 10, 12, 8]
  - type: switch
    number: 1
    channels:
      - name: Heater
        max: 100
        step: 5
hikvision:
  number: 0
  cameras:
    - host: 192.168.1.3:65005
      username: admin
      password: secret
      name: North
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, zap.DebugLevel, cfg.LogLevel)
	assert.Equal(t, uint(8080), cfg.Port)
	assert.False(t, cfg.Server.Discovery)
	assert.Equal(t, "Backyard Observatory", cfg.Server.Name)
	assert.Equal(t, "observer", cfg.Auth.Username)

	require.Len(t, cfg.Devices, 3)
	assert.Equal(t, device.Telescope, cfg.Devices[0].Kind)
	assert.Equal(t, 51.5, cfg.Devices[0].Latitude)
	assert.Equal(t, device.FilterWheel, cfg.Devices[1].Kind)
	assert.Equal(t, []int32{0, 10, 12, 8}, cfg.Devices[1].FocusOffsets)
	require.Len(t, cfg.Devices[2].Channels, 1)
	assert.Equal(t, 5.0, cfg.Devices[2].Channels[0].Step)

	require.Len(t, cfg.Hikvision.Cameras, 1)
	assert.Equal(t, "192.168.1.3:65005", cfg.Hikvision.Cameras[0].Host)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown type", "server: {strict: true}\ndevices: [{type: toaster}]\n", "devices[0].type"},
		{"duplicate number", "server: {strict: true}\ndevices: [{type: dome}, {type: Dome}]\n", "Dome 0 is already used by devices[0]"},
		{"hikvision slot taken", "server: {strict: true}\nhikvision: {cameras: [{host: cam}]}\ndevices: [{type: switch}]\n", "already used by hikvision"},
		{"camera without host", "server: {strict: true}\nhikvision: {cameras: [{name: x}]}\n", "host is required"},
		{"auth without hash", "server: {strict: true}\nauth: {enabled: true, username: a}\n", "auth.password_hash"},
		{"auth with plain password", "server: {strict: true}\nauth: {enabled: true, username: a, password_hash: hunter2}\n", "must be an argon2id hash"},
		{"port out of range", "server: {strict: true}\nport: 70000\n", "port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, ParseLevel("trace"))
	assert.Equal(t, zap.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, zap.InfoLevel, ParseLevel("verbose"))
}

func TestRedacted(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := Load(writeConfig(t, `
server: {strict: true}
auth: {enabled: true, username: observer, password_hash: "$argon2id$v=19$m=65536,t=3,p=1$c2FsdHNhbHRzYWx0c2FsdA$0W+y6a2b1L0z7ZbF3n0vY5Q3nI2b1tX4s8mK1f0gD7E"}
hikvision:
  cameras: [{host: cam, username: admin, password: secret}]
`))
	require.NoError(t, err)

	safe := cfg.Redacted()
	assert.Equal(t, "*redacted*", safe.Auth.PasswordHash)
	assert.Equal(t, "*redacted*", safe.Hikvision.Cameras[0].Password)
	assert.Equal(t, testHash, cfg.Auth.PasswordHash)
	assert.Equal(t, "secret", cfg.Hikvision.Cameras[0].Password)
}
