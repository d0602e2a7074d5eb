package service

import (
	"context"

	"github.com/nerrad567/smarthome-core/internal/actuator"
	"github.com/nerrad567/smarthome-core/internal/device"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// BlindSetterFunctionality is the catalogue entry of blind roller actuators.
const BlindSetterFunctionality = "BlindSetter"

// BlindRollerService positions blind rollers.
type BlindRollerService struct {
	actuators *ActuatorService
	repo      actuator.Repository
	devices   *device.Registry
}

// NewBlindRollerService creates a blind roller service driving targets
// through actuators.
func NewBlindRollerService(actuators *ActuatorService, repo actuator.Repository, devices *device.Registry) *BlindRollerService {
	return &BlindRollerService{actuators: actuators, repo: repo, devices: devices}
}

// DevicesWithFunctionality maps each active device carrying an actuator of
// functionalityID to its room.
func (s *BlindRollerService) DevicesWithFunctionality(ctx context.Context, functionalityID vo.ActuatorFunctionalityID) (map[vo.DeviceID]vo.RoomID, error) {
	list, err := s.repo.ListByFunctionality(ctx, functionalityID)
	if err != nil {
		return nil, err
	}

	out := make(map[vo.DeviceID]vo.RoomID)
	for _, a := range list {
		if _, ok := out[a.DeviceID()]; ok {
			continue
		}
		d, err := s.devices.GetDevice(ctx, a.DeviceID())
		if err != nil {
			return nil, err
		}
		if d.IsActive() {
			out[d.ID()] = d.RoomID()
		}
	}
	return out, nil
}

// SetBlindRoller moves the blind actuator of functionalityID on deviceID
// to percentage. It returns device.ErrDeviceNotFound for an unknown
// device and false when the device is deactivated, has no blind actuator
// of that functionality, or the percentage is outside [0, 100].
func (s *BlindRollerService) SetBlindRoller(ctx context.Context, deviceID vo.DeviceID, functionalityID vo.ActuatorFunctionalityID, percentage int) (bool, error) {
	d, err := s.devices.GetDevice(ctx, deviceID)
	if err != nil {
		return false, err
	}
	if !d.IsActive() {
		return false, nil
	}

	list, err := s.repo.ListByDeviceAndFunctionality(ctx, deviceID, functionalityID)
	if err != nil {
		return false, err
	}
	for _, a := range list {
		if blind, ok := a.(*actuator.BlindSetter); ok {
			return s.actuators.SetTarget(ctx, blind.ID(), float64(percentage))
		}
	}
	return false, nil
}
