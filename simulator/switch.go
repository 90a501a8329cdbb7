package simulator

import (
	"fmt"
	"math"
	"sync"
	"time"

	"alpaca-gateway/device"

	"go.uber.org/zap"
)

// Channel configures one simulated switch channel. A channel with Max 1
// and Step 1 is a plain on/off switch.
type Channel struct {
	Name        string
	Description string
	Min         float64
	Max         float64
	Step        float64
	Value       float64
	ReadOnly    bool
	// AsyncSeconds is how long an asynchronous change takes to settle.
	// Zero disables the asynchronous members for the channel.
	AsyncSeconds float64
}

type channel struct {
	Channel
	pending   bool
	target    float64
	settle    timer
	cancelled bool
}

// Switch simulates a bank of boolean and ranged switch channels.
type Switch struct {
	base

	mu       sync.Mutex
	channels []*channel
}

// DefaultChannels is the channel set used when none are configured.
func DefaultChannels() []Channel {
	return []Channel{
		{Name: "Power 1", Description: "Mount power", Max: 1, Step: 1},
		{Name: "Power 2", Description: "Camera power", Max: 1, Step: 1},
		{Name: "Dew heater", Description: "Dew heater duty cycle", Max: 100, Step: 1},
		{Name: "Roof relay", Description: "Roof motor relay", Max: 1, Step: 1, AsyncSeconds: 3},
		{Name: "Rain sensor", Description: "Rain detected", Max: 1, Step: 1, ReadOnly: true},
	}
}

// NewSwitch returns a switch with opts.Channels, or DefaultChannels.
func NewSwitch(opts Options) *Switch {
	cfgs := opts.Channels
	if len(cfgs) == 0 {
		cfgs = DefaultChannels()
	}
	s := &Switch{base: newBase(device.Switch, 3, opts)}
	for i, c := range cfgs {
		if c.Max <= c.Min {
			c.Min, c.Max = 0, 1
		}
		if c.Step <= 0 {
			c.Step = 1
		}
		if c.Name == "" {
			c.Name = fmt.Sprintf("Switch %d", i)
		}
		c.Value = math.Max(c.Min, math.Min(c.Max, c.Value))
		s.channels = append(s.channels, &channel{Channel: c})
	}
	return s
}

// channel settles any finished asynchronous change and returns channel id.
// The caller holds s.mu.
func (s *Switch) channel(id int32) (*channel, error) {
	if id < 0 || int(id) >= len(s.channels) {
		return nil, device.InvalidValue("switch id %d is outside 0 to %d", id, len(s.channels)-1)
	}
	c := s.channels[id]
	s.settleLocked(c, s.now())
	return c, nil
}

func (s *Switch) settleLocked(c *channel, now time.Time) {
	if c.pending && !c.settle.running(now) {
		c.Value = c.target
		c.pending = false
	}
}

func (s *Switch) MaxSwitch() (int32, error) {
	if err := s.require("MaxSwitch"); err != nil {
		return 0, err
	}
	return int32(len(s.channels)), nil
}

func (s *Switch) CanWrite(id int32) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.channel(id)
	if err != nil {
		return false, err
	}
	return !c.ReadOnly, nil
}

func (s *Switch) GetSwitch(id int32) (bool, error) {
	if err := s.require("GetSwitch"); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.channel(id)
	if err != nil {
		return false, err
	}
	return c.Value > c.Min, nil
}

func (s *Switch) GetSwitchDescription(id int32) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.channel(id)
	if err != nil {
		return "", err
	}
	return c.Description, nil
}

func (s *Switch) GetSwitchName(id int32) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.channel(id)
	if err != nil {
		return "", err
	}
	return c.Name, nil
}

func (s *Switch) GetSwitchValue(id int32) (float64, error) {
	if err := s.require("GetSwitchValue"); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.channel(id)
	if err != nil {
		return 0, err
	}
	return c.Value, nil
}

func (s *Switch) MinSwitchValue(id int32) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.channel(id)
	if err != nil {
		return 0, err
	}
	return c.Min, nil
}

func (s *Switch) MaxSwitchValue(id int32) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.channel(id)
	if err != nil {
		return 0, err
	}
	return c.Max, nil
}

func (s *Switch) SwitchStep(id int32) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.channel(id)
	if err != nil {
		return 0, err
	}
	return c.Step, nil
}

func (s *Switch) SetSwitch(id int32, state bool) error {
	return s.set("SetSwitch", id, func(c *channel) float64 {
		if state {
			return c.Max
		}
		return c.Min
	}, false)
}

func (s *Switch) SetSwitchValue(id int32, value float64) error {
	return s.set("SetSwitchValue", id, func(*channel) float64 { return value }, false)
}

func (s *Switch) SetAsync(id int32, state bool) error {
	return s.set("SetAsync", id, func(c *channel) float64 {
		if state {
			return c.Max
		}
		return c.Min
	}, true)
}

func (s *Switch) SetAsyncValue(id int32, value float64) error {
	return s.set("SetAsyncValue", id, func(*channel) float64 { return value }, true)
}

func (s *Switch) set(member string, id int32, value func(*channel) float64, async bool) error {
	if err := s.require(member); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.channel(id)
	if err != nil {
		return err
	}
	if c.ReadOnly {
		return device.NotImplemented(fmt.Sprintf("%s on read-only switch %d", member, id))
	}
	if async && c.AsyncSeconds <= 0 {
		return device.NotImplemented(fmt.Sprintf("%s on switch %d", member, id))
	}
	v := value(c)
	if v < c.Min || v > c.Max {
		return device.InvalidValue("value %v for switch %d is outside %v to %v", v, id, c.Min, c.Max)
	}
	if steps := (v - c.Min) / c.Step; math.Abs(steps-math.Round(steps)) > 1e-6 {
		return device.InvalidValue("value %v for switch %d is not a multiple of step %v", v, id, c.Step)
	}

	c.cancelled = false
	if async {
		c.pending = true
		c.target = v
		c.settle = after(s.now(), seconds(c.AsyncSeconds, s.speed))
	} else {
		c.pending = false
		c.Value = v
	}
	s.logger.Debug("switch set",
		zap.String("member", member),
		zap.Int32("id", id),
		zap.Float64("value", v),
	)
	return nil
}

func (s *Switch) SetSwitchName(id int32, name string) error {
	if err := s.require("SetSwitchName"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.channel(id)
	if err != nil {
		return err
	}
	c.Name = name
	return nil
}

func (s *Switch) CanAsync(id int32) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.channel(id)
	if err != nil {
		return false, err
	}
	return c.AsyncSeconds > 0 && !c.ReadOnly, nil
}

// StateChangeComplete reports whether the last asynchronous change of
// channel id has settled. It returns OperationCancelled after CancelAsync
// until the next change is started.
func (s *Switch) StateChangeComplete(id int32) (bool, error) {
	if err := s.require("StateChangeComplete"); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.channel(id)
	if err != nil {
		return false, err
	}
	if c.cancelled {
		return false, device.OperationCancelled(fmt.Sprintf("asynchronous change of switch %d", id))
	}
	return !c.pending, nil
}

// CancelAsync abandons a pending change of channel id, leaving its value
// unchanged.
func (s *Switch) CancelAsync(id int32) error {
	if err := s.require("CancelAsync"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.channel(id)
	if err != nil {
		return err
	}
	if c.AsyncSeconds <= 0 {
		return device.NotImplemented(fmt.Sprintf("CancelAsync on switch %d", id))
	}
	if c.pending {
		c.pending = false
		c.cancelled = true
	}
	return nil
}

func (s *Switch) DeviceState() ([]device.StateValue, error) {
	if err := s.require("DeviceState"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	var out []device.StateValue
	for i, c := range s.channels {
		s.settleLocked(c, now)
		out = append(out,
			device.StateValue{Name: fmt.Sprintf("GetSwitch%d", i), Value: c.Value > c.Min},
			device.StateValue{Name: fmt.Sprintf("GetSwitchValue%d", i), Value: c.Value},
		)
		if c.AsyncSeconds > 0 {
			out = append(out, device.StateValue{Name: fmt.Sprintf("StateChangeComplete%d", i), Value: !c.pending})
		}
	}
	return append(out, device.TimeStamp(now)), nil
}
