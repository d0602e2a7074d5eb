package device

import (
	"context"
	"fmt"
	"sort"
	"sync"

	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// Logger defines the logging interface used by the Registry.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry wraps a Repository with an in-memory cache.
//
// The cache is populated on startup via RefreshCache and kept in sync by
// the write methods. Devices handed out are copies, so callers may mutate
// them freely and persist the result with UpdateDevice.
//
// All public methods are safe for concurrent use.
type Registry struct {
	repo    Repository
	cache   map[vo.DeviceID]*Device
	cacheMu sync.RWMutex
	writeMu sync.Mutex // serialises read-modify-write of device state
	loaded  bool
	logger  Logger
}

// NewRegistry creates a registry over repo.
func NewRegistry(repo Repository) *Registry {
	return &Registry{
		repo:   repo,
		cache:  make(map[vo.DeviceID]*Device),
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// RefreshCache reloads all devices from the repository.
func (r *Registry) RefreshCache(ctx context.Context) error {
	devices, err := r.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("loading devices: %w", err)
	}

	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()

	r.cache = make(map[vo.DeviceID]*Device, len(devices))
	for _, d := range devices {
		r.cache[d.id] = d.clone()
	}
	r.loaded = true

	r.logger.Info("device cache refreshed", "count", len(devices))
	return nil
}

// GetDevice retrieves a device by id, falling back to the repository on a
// cache miss. Returns ErrDeviceNotFound if it does not exist.
func (r *Registry) GetDevice(ctx context.Context, id vo.DeviceID) (*Device, error) {
	r.cacheMu.RLock()
	cached, ok := r.cache[id]
	r.cacheMu.RUnlock()
	if ok {
		return cached.clone(), nil
	}

	d, err := r.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	r.cacheMu.Lock()
	r.cache[id] = d.clone()
	r.cacheMu.Unlock()

	return d, nil
}

// ListDevices retrieves all devices ordered by id.
func (r *Registry) ListDevices(ctx context.Context) ([]*Device, error) {
	return r.filter(ctx, func(*Device) bool { return true }, r.repo.List)
}

// GetDevicesByRoom retrieves the devices installed in roomID.
func (r *Registry) GetDevicesByRoom(ctx context.Context, roomID vo.RoomID) ([]*Device, error) {
	return r.filter(ctx,
		func(d *Device) bool { return d.roomID == roomID },
		func(ctx context.Context) ([]*Device, error) { return r.repo.ListByRoom(ctx, roomID) })
}

// filter answers from the cache once it has been loaded and from the
// repository before that.
func (r *Registry) filter(ctx context.Context, keep func(*Device) bool, fallback func(context.Context) ([]*Device, error)) ([]*Device, error) {
	r.cacheMu.RLock()
	if !r.loaded {
		r.cacheMu.RUnlock()
		return fallback(ctx)
	}
	var devices []*Device
	for _, d := range r.cache {
		if keep(d) {
			devices = append(devices, d.clone())
		}
	}
	r.cacheMu.RUnlock()

	sort.Slice(devices, func(i, j int) bool { return devices[i].id.String() < devices[j].id.String() })
	return devices, nil
}

// CreateDevice persists a new device.
func (r *Registry) CreateDevice(ctx context.Context, d *Device) error {
	if err := r.repo.Create(ctx, d); err != nil {
		return err
	}

	r.cacheMu.Lock()
	r.cache[d.id] = d.clone()
	r.cacheMu.Unlock()

	r.logger.Info("device created", "id", d.id.String(), "model", d.model.String(), "room", d.roomID.String())
	return nil
}

// UpdateDevice persists changes to an existing device.
func (r *Registry) UpdateDevice(ctx context.Context, d *Device) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	return r.update(ctx, d)
}

func (r *Registry) update(ctx context.Context, d *Device) error {
	if err := r.repo.Update(ctx, d); err != nil {
		return err
	}

	r.cacheMu.Lock()
	r.cache[d.id] = d.clone()
	r.cacheMu.Unlock()

	r.logger.Info("device updated", "id", d.id.String(), "status", string(d.status))
	return nil
}

// DeactivateDevice deactivates and persists the device. It reports false
// without writing anything when the device was already deactivated.
func (r *Registry) DeactivateDevice(ctx context.Context, id vo.DeviceID) (bool, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	d, err := r.GetDevice(ctx, id)
	if err != nil {
		return false, err
	}
	if !d.Deactivate() {
		return false, nil
	}
	if err := r.update(ctx, d); err != nil {
		return false, err
	}
	return true, nil
}

// GetDeviceCount returns the number of cached devices.
func (r *Registry) GetDeviceCount() int {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()
	return len(r.cache)
}

// Stats returns registry statistics for monitoring.
type Stats struct {
	TotalDevices int
	ByStatus     map[vo.DeviceStatus]int
	ByRoom       map[vo.RoomID]int
}

// GetStats returns current registry statistics.
func (r *Registry) GetStats() Stats {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()

	stats := Stats{
		TotalDevices: len(r.cache),
		ByStatus:     make(map[vo.DeviceStatus]int),
		ByRoom:       make(map[vo.RoomID]int),
	}
	for _, d := range r.cache {
		stats.ByStatus[d.status]++
		stats.ByRoom[d.roomID]++
	}
	return stats
}
