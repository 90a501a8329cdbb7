// Package config loads the gateway configuration from defaults, an optional
// YAML file and ALPACA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"alpaca-gateway/backend/hikvision"
	"alpaca-gateway/device"
	"alpaca-gateway/server"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrStrictUnset is returned when server.strict is left to a default.
var ErrStrictUnset = errors.New("config: server.strict must be set explicitly to true or false")

type Config struct {
	LogLevel     zapcore.Level   `mapstructure:"-"`
	Port         uint            `mapstructure:"port"`
	HttpLog      bool            `mapstructure:"http_log"`
	UniqueIDFile string          `mapstructure:"unique_id_file"`
	Server       ServerConfig    `mapstructure:"server"`
	Auth         AuthConfig      `mapstructure:"auth"`
	Devices      []DeviceConfig  `mapstructure:"devices"`
	Hikvision    HikvisionConfig `mapstructure:"hikvision"`
}

type ServerConfig struct {
	// Strict rejects requests that break Alpaca's casing and encoding rules.
	Strict        bool
	Discovery     bool
	DiscoveryPort uint `mapstructure:"discovery_port"`
	Name          string
	Manufacturer  string
	Location      string
}

type AuthConfig struct {
	Enabled  bool
	Username string
	// PasswordHash is an Argon2id PHC string, see alpaca-gateway -hash-password.
	PasswordHash string `mapstructure:"password_hash"`
}

// DeviceConfig describes one simulated device. Fields that do not apply to
// Type are ignored.
type DeviceConfig struct {
	Type         string
	Number       uint32
	Name         string
	Description  string
	Speed        float64
	MaxStep      int32   `mapstructure:"max_step"`
	Width        int32
	Height       int32
	Filters      []string
	FocusOffsets []int32 `mapstructure:"focus_offsets"`
	Latitude     float64
	Longitude    float64
	Elevation    float64
	Unsafe       bool
	Channels     []ChannelConfig

	// Kind is Type resolved by Load.
	Kind device.Type `mapstructure:"-"`
}

type ChannelConfig struct {
	Name         string
	Description  string
	Min          float64
	Max          float64
	Step         float64
	Value        float64
	ReadOnly     bool    `mapstructure:"read_only"`
	AsyncSeconds float64 `mapstructure:"async_seconds"`
}

// HikvisionConfig serves IR illuminators as channels of one Switch device.
type HikvisionConfig struct {
	Number  uint32
	Name    string
	Cameras []hikvision.CameraConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("port", 11111)
	v.SetDefault("http_log", false)
	v.SetDefault("unique_id_file", "alpaca-ids.yaml")
	v.SetDefault("server.discovery", true)
	v.SetDefault("server.discovery_port", server.DiscoveryPort)
	v.SetDefault("server.name", "Alpaca Gateway")
	v.SetDefault("server.manufacturer", "Alpaca Gateway")
	v.SetDefault("server.location", "")
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.username", "")
	v.SetDefault("auth.password_hash", "")
	v.SetDefault("hikvision.number", 0)
	v.SetDefault("hikvision.name", "Hikvision IR")
}

// Load reads the configuration. path names a YAML file; when empty, the
// CONFIG_FILE environment variable is used, and without either only
// defaults and the environment apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("alpaca")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// no default, so bind explicitly for IsSet and Unmarshal to see it
	if err := v.BindEnv("server.strict"); err != nil {
		return nil, err
	}

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if !v.IsSet("server.strict") {
		return nil, ErrStrictUnset
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.LogLevel = ParseLevel(v.GetString("log_level"))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseLevel maps a log_level name to a zap level. Unknown names are Info.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "trace", "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	case "fatal":
		return zap.FatalLevel
	default:
		return zap.InfoLevel
	}
}

func (c *Config) validate() error {
	if c.Port == 0 || c.Port > 65535 {
		return fmt.Errorf("config param port should be between 1 and 65535, got %d", c.Port)
	}
	if c.Server.Discovery && (c.Server.DiscoveryPort == 0 || c.Server.DiscoveryPort > 65535) {
		return fmt.Errorf("config param server.discovery_port should be between 1 and 65535, got %d", c.Server.DiscoveryPort)
	}
	if c.Auth.Enabled {
		if c.Auth.Username == "" || c.Auth.PasswordHash == "" {
			return errors.New("config params auth.username and auth.password_hash are required when auth.enabled is set")
		}
		if !strings.HasPrefix(c.Auth.PasswordHash, "$argon2id$") {
			return errors.New("config param auth.password_hash must be an argon2id hash")
		}
	}

	type slot struct {
		t device.Type
		n uint32
	}
	taken := make(map[slot]string)
	if len(c.Hikvision.Cameras) > 0 {
		taken[slot{device.Switch, c.Hikvision.Number}] = "hikvision"
		for i, cam := range c.Hikvision.Cameras {
			if cam.Host == "" {
				return fmt.Errorf("config param hikvision.cameras[%d].host is required", i)
			}
		}
	}
	for i := range c.Devices {
		d := &c.Devices[i]
		t, err := device.ParseType(d.Type)
		if err != nil {
			return fmt.Errorf("config param devices[%d].type: %w", i, err)
		}
		d.Kind = t
		s := slot{t, d.Number}
		if owner, ok := taken[s]; ok {
			return fmt.Errorf("config param devices[%d]: %s %d is already used by %s", i, t, d.Number, owner)
		}
		taken[s] = fmt.Sprintf("devices[%d]", i)
	}
	return nil
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	if c.Auth.PasswordHash != "" {
		c.Auth.PasswordHash = "*redacted*"
	}
	cams := make([]hikvision.CameraConfig, len(c.Hikvision.Cameras))
	for i, cam := range c.Hikvision.Cameras {
		cam.Username = "*redacted*"
		cam.Password = "*redacted*"
		cams[i] = cam
	}
	c.Hikvision.Cameras = cams
	return c
}
