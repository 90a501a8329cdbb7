// Package hikvision switches the IR illuminators of Hikvision IP cameras
// through ISAPI (/ISAPI/System/Hardware) with HTTP digest authentication.
// Every configured camera is one on/off switch channel.
//
// The camera's hardware service must be enabled under
// Configuration > System > Maintenance > System Service. Known to work with
// DS-2CD2343G0-I and DS-2CD2335-I. Host may carry a port, e.g.
// "192.168.1.3:65005".
package hikvision

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"alpaca-gateway/device"

	"github.com/icholy/digest"
	"go.uber.org/zap"
)

const (
	requestTimeout = 5 * time.Second

	irOpen  = "open"
	irClose = "close"
)

// CameraConfig holds connection details for one Hikvision camera.
type CameraConfig struct {
	Host        string `mapstructure:"host" yaml:"host"`
	Username    string `mapstructure:"username" yaml:"username"`
	Password    string `mapstructure:"password" yaml:"password"`
	Name        string `mapstructure:"name" yaml:"name"`
	Description string `mapstructure:"description" yaml:"description"`
}

// StatusError is a non-200 answer from a camera.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("camera returned %d: %s", e.Code, e.Body)
}

// hardwareService is the XML document behind /ISAPI/System/Hardware.
type hardwareService struct {
	XMLName       xml.Name      `xml:"HardwareService"`
	IrLightSwitch irLightSwitch `xml:"IrLightSwitch"`
}

type irLightSwitch struct {
	Mode string `xml:"mode"`
}

// isapi talks to one camera.
type isapi struct {
	url  string
	http *http.Client
}

func newISAPI(cfg CameraConfig) *isapi {
	return &isapi{
		url: "http://" + cfg.Host + "/ISAPI/System/Hardware",
		http: &http.Client{
			Timeout:   requestTimeout,
			Transport: &digest.Transport{Username: cfg.Username, Password: cfg.Password},
		},
	}
}

// do sends req and decodes an XML answer into out when out is non-nil.
func (c *isapi) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, c.url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := xml.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", c.url, err)
	}
	return nil
}

func (c *isapi) irLight(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return false, err
	}
	var hw hardwareService
	if err := c.do(req, &hw); err != nil {
		return false, err
	}
	return hw.IrLightSwitch.Mode == irOpen, nil
}

func (c *isapi) setIRLight(ctx context.Context, on bool) error {
	mode := irClose
	if on {
		mode = irOpen
	}
	payload, err := xml.Marshal(hardwareService{IrLightSwitch: irLightSwitch{Mode: mode}})
	if err != nil {
		return err
	}
	body := append([]byte(xml.Header), payload...)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/xml")
	return c.do(req, nil)
}

type irSwitch struct {
	cfg CameraConfig
	api *isapi
	on  bool
}

// Backend implements backend.SwitchBackend, one channel per camera.
type Backend struct {
	mu        sync.RWMutex
	switches  []*irSwitch
	connected bool
	logger    *zap.Logger
}

// New creates a Hikvision backend from a list of camera configs.
func New(cfgs []CameraConfig, logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Backend{logger: logger.Named("hikvision")}
	for _, cfg := range cfgs {
		b.switches = append(b.switches, &irSwitch{cfg: cfg, api: newISAPI(cfg)})
	}
	return b
}

// Connect reads the IR state of every camera. A camera that does not answer
// is logged and keeps its last-known state.
func (b *Backend) Connect() error {
	b.mu.Lock()
	b.connected = true
	b.mu.Unlock()

	for id, sw := range b.switches {
		on, err := sw.api.irLight(context.Background())
		if err != nil {
			b.logger.Warn("camera not reachable", zap.Int("id", id), zap.String("host", sw.cfg.Host), zap.Error(err))
			continue
		}
		b.remember(sw, on)
		b.logger.Info("camera IR state", zap.Int("id", id), zap.String("name", sw.cfg.Name), zap.Bool("on", on))
	}
	return nil
}

func (b *Backend) Disconnect() {
	b.mu.Lock()
	b.connected = false
	b.mu.Unlock()
}

func (b *Backend) IsConnected() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.connected
}

func (b *Backend) NumSwitches() int32 { return int32(len(b.switches)) }

func (b *Backend) lookup(id int32) (*irSwitch, error) {
	if id < 0 || int(id) >= len(b.switches) {
		return nil, device.InvalidValue("invalid camera id %d", id)
	}
	return b.switches[id], nil
}

func (b *Backend) remember(sw *irSwitch, on bool) {
	b.mu.Lock()
	sw.on = on
	b.mu.Unlock()
}

func (b *Backend) GetName(id int32) string {
	sw, err := b.lookup(id)
	if err != nil {
		return ""
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return sw.cfg.Name
}

// SetName renames a channel until the next restart.
func (b *Backend) SetName(id int32, name string) error {
	sw, err := b.lookup(id)
	if err != nil {
		return err
	}
	b.mu.Lock()
	sw.cfg.Name = name
	b.mu.Unlock()
	return nil
}

// GetDescription falls back to "<name> IR illuminator".
func (b *Backend) GetDescription(id int32) string {
	sw, err := b.lookup(id)
	if err != nil {
		return ""
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if sw.cfg.Description != "" {
		return sw.cfg.Description
	}
	return sw.cfg.Name + " IR illuminator"
}

func (b *Backend) GetCanWrite(int32) bool { return true }
func (b *Backend) GetMin(int32) float64   { return 0 }
func (b *Backend) GetMax(int32) float64   { return 1 }
func (b *Backend) GetStep(int32) float64  { return 1 }

// GetSwitch asks the camera and refreshes the cached state.
func (b *Backend) GetSwitch(id int32) (bool, error) {
	sw, err := b.lookup(id)
	if err != nil {
		return false, err
	}
	on, err := sw.api.irLight(context.Background())
	if err != nil {
		return false, err
	}
	b.remember(sw, on)
	return on, nil
}

// GetSwitchValue answers from the cached state.
func (b *Backend) GetSwitchValue(id int32) (float64, error) {
	sw, err := b.lookup(id)
	if err != nil {
		return 0, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if sw.on {
		return 1, nil
	}
	return 0, nil
}

func (b *Backend) SetSwitch(id int32, state bool) error {
	sw, err := b.lookup(id)
	if err != nil {
		return err
	}
	if err := sw.api.setIRLight(context.Background(), state); err != nil {
		return err
	}
	b.remember(sw, state)
	b.logger.Info("camera IR set", zap.Int32("id", id), zap.String("name", sw.cfg.Name), zap.Bool("on", state))
	return nil
}

// SetSwitchValue treats any non-zero value as on.
func (b *Backend) SetSwitchValue(id int32, value float64) error {
	return b.SetSwitch(id, value != 0)
}
