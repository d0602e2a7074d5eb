package service

import (
	"context"

	"github.com/nerrad567/smarthome-core/internal/device"
	"github.com/nerrad567/smarthome-core/internal/functionality"
	"github.com/nerrad567/smarthome-core/internal/sensor"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// SensorService attaches sensors to devices.
type SensorService struct {
	repo      sensor.Repository
	devices   *device.Registry
	catalogue functionality.Repository
	logger    Logger
}

// NewSensorService creates a sensor service.
func NewSensorService(repo sensor.Repository, devices *device.Registry, catalogue functionality.Repository) *SensorService {
	return &SensorService{repo: repo, devices: devices, catalogue: catalogue, logger: noopLogger{}}
}

// SetLogger sets the logger for the service.
func (s *SensorService) SetLogger(logger Logger) {
	s.logger = logger
}

// Add attaches a sensor of a catalogued functionality to an active device.
func (s *SensorService) Add(ctx context.Context, deviceID vo.DeviceID, functionalityID vo.SensorFunctionalityID) (*sensor.Sensor, error) {
	if err := requireActive(ctx, s.devices, deviceID); err != nil {
		return nil, err
	}
	if _, err := s.catalogue.GetSensor(ctx, functionalityID); err != nil {
		return nil, err
	}

	sn, err := sensor.New(vo.GenerateSensorID(), deviceID, functionalityID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, sn); err != nil {
		return nil, err
	}

	s.logger.Info("sensor added", "id", sn.ID().String(), "device", deviceID.String(), "functionality", functionalityID.String())
	return sn, nil
}

// Get returns one sensor.
func (s *SensorService) Get(ctx context.Context, id vo.SensorID) (*sensor.Sensor, error) {
	return s.repo.Get(ctx, id)
}

// ListByDevice returns the sensors of an existing device.
func (s *SensorService) ListByDevice(ctx context.Context, deviceID vo.DeviceID) ([]*sensor.Sensor, error) {
	if _, err := s.devices.GetDevice(ctx, deviceID); err != nil {
		return nil, err
	}
	return s.repo.ListByDevice(ctx, deviceID)
}

// ListByDeviceAndFunctionality returns the sensors of one catalogued
// functionality on an existing device, for example its temperature
// sensors.
func (s *SensorService) ListByDeviceAndFunctionality(ctx context.Context, deviceID vo.DeviceID, functionalityID vo.SensorFunctionalityID) ([]*sensor.Sensor, error) {
	if _, err := s.devices.GetDevice(ctx, deviceID); err != nil {
		return nil, err
	}
	if _, err := s.catalogue.GetSensor(ctx, functionalityID); err != nil {
		return nil, err
	}
	return s.repo.ListByDeviceAndFunctionality(ctx, deviceID, functionalityID)
}

// requireActive loads a device and fails with ErrDeviceInactive when it
// has been deactivated.
func requireActive(ctx context.Context, devices *device.Registry, id vo.DeviceID) error {
	d, err := devices.GetDevice(ctx, id)
	if err != nil {
		return err
	}
	if !d.IsActive() {
		return ErrDeviceInactive
	}
	return nil
}
