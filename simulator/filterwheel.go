package simulator

import (
	"sync"

	"alpaca-gateway/device"
)

const filterwheelSlotTime = 1.0 // seconds per slot

// FilterWheel simulates a filter wheel that takes a second per slot to move.
type FilterWheel struct {
	base

	mu       sync.Mutex
	names    []string
	offsets  []int32
	position int32
	move     timer
}

// NewFilterWheel returns a wheel at slot 0 with opts.Filters, or an LRGB set.
func NewFilterWheel(opts Options) *FilterWheel {
	names := opts.Filters
	if len(names) == 0 {
		names = []string{"Luminance", "Red", "Green", "Blue", "Ha", "OIII", "SII", "Dark"}
	}
	offsets := make([]int32, len(names))
	copy(offsets, opts.FocusOffsets)
	return &FilterWheel{
		base:    newBase(device.FilterWheel, 3, opts),
		names:   append([]string(nil), names...),
		offsets: offsets,
	}
}

func (w *FilterWheel) FocusOffsets() ([]int32, error) {
	if err := w.require("FocusOffsets"); err != nil {
		return nil, err
	}
	return append([]int32(nil), w.offsets...), nil
}

func (w *FilterWheel) Names() ([]string, error) {
	if err := w.require("Names"); err != nil {
		return nil, err
	}
	return append([]string(nil), w.names...), nil
}

// Position is -1 while the wheel is moving.
func (w *FilterWheel) Position() (int32, error) {
	if err := w.require("Position"); err != nil {
		return 0, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.move.running(w.now()) {
		return -1, nil
	}
	return w.position, nil
}

func (w *FilterWheel) SetPosition(position int32) error {
	if err := w.require("Position"); err != nil {
		return err
	}
	n := int32(len(w.names))
	if position < 0 || position >= n {
		return device.InvalidValue("position %d is outside 0 to %d", position, n-1)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	now := w.now()
	if w.move.running(now) {
		return device.InvalidOperation("filter wheel is already moving")
	}
	slots := position - w.position
	if slots < 0 {
		slots = -slots
	}
	if other := n - slots; other < slots {
		slots = other
	}
	w.position = position
	w.move = after(now, seconds(float64(slots)*filterwheelSlotTime, w.speed))
	return nil
}

func (w *FilterWheel) DeviceState() ([]device.StateValue, error) {
	pos, err := w.Position()
	if err != nil {
		return nil, err
	}
	return []device.StateValue{
		{Name: "Position", Value: pos},
		device.TimeStamp(w.now()),
	}, nil
}
