package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/nerrad567/smarthome-core/internal/actuator"
	"github.com/nerrad567/smarthome-core/internal/device"
	"github.com/nerrad567/smarthome-core/internal/room"
	"github.com/nerrad567/smarthome-core/internal/sensor"
	"github.com/nerrad567/smarthome-core/internal/telemetry/metrics"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// DeviceService manages devices through the cached device registry.
type DeviceService struct {
	registry  *device.Registry
	rooms     room.Repository
	sensors   sensor.Repository
	actuators actuator.Repository
	logger    Logger
}

// NewDeviceService creates a device service.
func NewDeviceService(registry *device.Registry, rooms room.Repository, sensors sensor.Repository, actuators actuator.Repository) *DeviceService {
	return &DeviceService{
		registry:  registry,
		rooms:     rooms,
		sensors:   sensors,
		actuators: actuators,
		logger:    noopLogger{},
	}
}

// SetLogger sets the logger for the service.
func (s *DeviceService) SetLogger(logger Logger) {
	s.logger = logger
}

// Add installs a new active device in an existing room.
func (s *DeviceService) Add(ctx context.Context, roomID vo.RoomID, model string) (*device.Device, error) {
	m, err := vo.NewDeviceModel(model)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.requireRoom(ctx, roomID); err != nil {
		return nil, err
	}

	d, err := device.New(vo.GenerateDeviceID(), m, roomID, vo.StatusActive)
	if err != nil {
		return nil, err
	}
	if err := s.registry.CreateDevice(ctx, d); err != nil {
		return nil, err
	}
	s.updateGauge()
	return d, nil
}

// Get returns one device.
func (s *DeviceService) Get(ctx context.Context, id vo.DeviceID) (*device.Device, error) {
	return s.registry.GetDevice(ctx, id)
}

// ListByRoom returns the devices of an existing room.
func (s *DeviceService) ListByRoom(ctx context.Context, roomID vo.RoomID) ([]*device.Device, error) {
	if err := s.requireRoom(ctx, roomID); err != nil {
		return nil, err
	}
	return s.registry.GetDevicesByRoom(ctx, roomID)
}

// ListInHouse returns every device of the house.
func (s *DeviceService) ListInHouse(ctx context.Context) ([]*device.Device, error) {
	return s.registry.ListDevices(ctx)
}

// Deactivate switches a device off for good. It reports false when the
// device was already deactivated.
func (s *DeviceService) Deactivate(ctx context.Context, id vo.DeviceID) (bool, error) {
	changed, err := s.registry.DeactivateDevice(ctx, id)
	if err != nil {
		return false, err
	}
	if changed {
		s.logger.Info("device deactivated", "id", id.String())
		s.updateGauge()
	}
	return changed, nil
}

// GroupedByFunctionality maps every sensor and actuator functionality in
// use to the rooms and devices providing it. Device lists are sorted.
func (s *DeviceService) GroupedByFunctionality(ctx context.Context) (map[string]map[vo.RoomID][]vo.DeviceID, error) {
	grouped := make(map[string]map[vo.RoomID][]vo.DeviceID)
	seen := make(map[string]map[vo.DeviceID]bool)

	add := func(functionality string, deviceID vo.DeviceID) error {
		if seen[functionality][deviceID] {
			return nil
		}
		d, err := s.registry.GetDevice(ctx, deviceID)
		if err != nil {
			return err
		}
		if grouped[functionality] == nil {
			grouped[functionality] = make(map[vo.RoomID][]vo.DeviceID)
			seen[functionality] = make(map[vo.DeviceID]bool)
		}
		seen[functionality][deviceID] = true
		grouped[functionality][d.RoomID()] = append(grouped[functionality][d.RoomID()], deviceID)
		return nil
	}

	sensors, err := s.sensors.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, sn := range sensors {
		if err := add(sn.FunctionalityID().String(), sn.DeviceID()); err != nil {
			return nil, err
		}
	}

	actuators, err := s.actuators.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range actuators {
		if err := add(a.FunctionalityID().String(), a.DeviceID()); err != nil {
			return nil, err
		}
	}

	for _, rooms := range grouped {
		for _, ids := range rooms {
			sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
		}
	}
	return grouped, nil
}

func (s *DeviceService) requireRoom(ctx context.Context, roomID vo.RoomID) error {
	ok, err := s.rooms.Exists(ctx, roomID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", room.ErrRoomNotFound, roomID)
	}
	return nil
}

func (s *DeviceService) updateGauge() {
	metrics.SetDevicesActive(s.registry.GetStats().ByStatus[vo.StatusActive])
}
