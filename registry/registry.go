// Package registry holds the live device instances served by the gateway,
// keyed by device type and device number.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"alpaca-gateway/device"

	"go.uber.org/zap"
)

// Instance is a loaded driver.
type Instance struct {
	Name     string
	Type     device.Type
	Number   uint32
	UniqueID string
	Device   device.Device
}

// IDSource hands out the persistent unique ID of a device slot.
type IDSource interface {
	UniqueID(t device.Type, number uint32) (string, error)
}

// Registry maps (type, number) to a loaded Instance. Resolve is safe to call
// concurrently with Load and Unload.
type Registry struct {
	mu        sync.RWMutex
	instances map[device.Type]map[uint32]*Instance
	ids       IDSource
	logger    *zap.Logger
}

// New creates an empty Registry. ids may be nil, in which case instances
// get no unique ID.
func New(ids IDSource, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		instances: make(map[device.Type]map[uint32]*Instance),
		ids:       ids,
		logger:    logger,
	}
}

// Load installs d as device number of type t, replacing whatever was loaded
// there before.
func (r *Registry) Load(t device.Type, number uint32, d device.Device) (Instance, error) {
	if d == nil || !t.Implements(d) {
		return Instance{}, fmt.Errorf("%w: %T as %s", ErrWrongType, d, t)
	}

	var uid string
	if r.ids != nil {
		var err error
		uid, err = r.ids.UniqueID(t, number)
		if err != nil {
			return Instance{}, fmt.Errorf("unique id for %s %d: %w", t, number, err)
		}
	}

	name, err := d.Name()
	if err != nil || name == "" {
		name = fmt.Sprintf("%s %d", t, number)
	}

	inst := &Instance{Name: name, Type: t, Number: number, UniqueID: uid, Device: d}

	r.mu.Lock()
	table, ok := r.instances[t]
	if !ok {
		table = make(map[uint32]*Instance)
		r.instances[t] = table
	}
	_, replaced := table[number]
	delete(table, number)
	table[number] = inst
	r.mu.Unlock()

	r.logger.Info("device loaded",
		zap.Stringer("type", t),
		zap.Uint32("number", number),
		zap.String("name", name),
		zap.String("unique_id", uid),
		zap.Bool("replaced", replaced),
	)
	return *inst, nil
}

// Unload removes device number of type t. It reports whether an instance was
// loaded.
func (r *Registry) Unload(t device.Type, number uint32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	table := r.instances[t]
	if _, ok := table[number]; !ok {
		return false
	}
	delete(table, number)
	r.logger.Info("device unloaded", zap.Stringer("type", t), zap.Uint32("number", number))
	return true
}

// Resolve returns the instance loaded as device number of type t, or
// ErrDeviceNotFound.
func (r *Registry) Resolve(t device.Type, number uint32) (Instance, error) {
	r.mu.RLock()
	inst, ok := r.instances[t][number]
	r.mu.RUnlock()
	if !ok {
		return Instance{}, fmt.Errorf("%w: %s %d", ErrDeviceNotFound, t, number)
	}
	return *inst, nil
}

// List returns every loaded instance, grouped by type in device.Types order
// and sorted by number within a type.
func (r *Registry) List() []Instance {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Instance
	for _, t := range device.Types() {
		table := r.instances[t]
		start := len(out)
		for _, inst := range table {
			out = append(out, *inst)
		}
		group := out[start:]
		sort.Slice(group, func(i, j int) bool { return group[i].Number < group[j].Number })
	}
	return out
}

// Count returns the number of loaded instances.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, table := range r.instances {
		n += len(table)
	}
	return n
}
