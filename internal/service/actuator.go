package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/nerrad567/smarthome-core/internal/actuator"
	"github.com/nerrad567/smarthome-core/internal/device"
	"github.com/nerrad567/smarthome-core/internal/functionality"
	"github.com/nerrad567/smarthome-core/internal/telemetry/metrics"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// ActuatorService attaches actuators to devices and drives their targets.
//
// Target commands are serialised so that the load, command and store of
// one actuator never interleave with another command.
type ActuatorService struct {
	repo      actuator.Repository
	devices   *device.Registry
	catalogue functionality.Repository

	publishers []TargetPublisher
	commandMu  sync.Mutex
	logger     Logger
}

// NewActuatorService creates an actuator service.
func NewActuatorService(repo actuator.Repository, devices *device.Registry, catalogue functionality.Repository) *ActuatorService {
	return &ActuatorService{repo: repo, devices: devices, catalogue: catalogue, logger: noopLogger{}}
}

// SetLogger sets the logger for the service.
func (s *ActuatorService) SetLogger(logger Logger) {
	s.logger = logger
}

// AddPublisher registers a hook for accepted targets. Not safe to call
// once commands are flowing.
func (s *ActuatorService) AddPublisher(p TargetPublisher) {
	s.publishers = append(s.publishers, p)
}

// Add attaches an actuator to an active device. The variant is chosen
// from the kind the catalogue lists for functionalityID.
func (s *ActuatorService) Add(ctx context.Context, deviceID vo.DeviceID, functionalityID vo.ActuatorFunctionalityID, props *vo.ActuatorProperties) (actuator.Actuator, error) {
	if err := requireActive(ctx, s.devices, deviceID); err != nil {
		return nil, err
	}
	fn, err := s.catalogue.GetActuator(ctx, functionalityID)
	if err != nil {
		return nil, err
	}

	a, err := actuator.New(fn.ActuatorKind(), vo.GenerateActuatorID(), functionalityID, props, deviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("actuator added", "id", a.ID().String(), "device", deviceID.String(), "kind", string(a.Kind()))
	return a, nil
}

// Get returns one actuator with its current target.
func (s *ActuatorService) Get(ctx context.Context, id vo.ActuatorID) (actuator.Actuator, error) {
	return s.repo.Get(ctx, id)
}

// ListByDevice returns the actuators of an existing device.
func (s *ActuatorService) ListByDevice(ctx context.Context, deviceID vo.DeviceID) ([]actuator.Actuator, error) {
	if _, err := s.devices.GetDevice(ctx, deviceID); err != nil {
		return nil, err
	}
	return s.repo.ListByDevice(ctx, deviceID)
}

// SetTarget commands an actuator. A rejected command reports false and
// leaves the stored target untouched. An accepted target is persisted and
// handed to every publisher; publisher failures are logged, not returned.
func (s *ActuatorService) SetTarget(ctx context.Context, id vo.ActuatorID, v float64) (bool, error) {
	s.commandMu.Lock()
	defer s.commandMu.Unlock()

	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return s.apply(ctx, a, v)
}

// apply runs the command on a loaded actuator. Callers hold commandMu.
func (s *ActuatorService) apply(ctx context.Context, a actuator.Actuator, v float64) (bool, error) {
	kind := string(a.Kind())

	if err := requireActive(ctx, s.devices, a.DeviceID()); err != nil {
		metrics.IncActuatorCommand(kind, metrics.ResultError)
		return false, err
	}
	if !actuator.Command(a, v) {
		metrics.IncActuatorCommand(kind, metrics.ResultRejected)
		s.logger.Debug("actuator command rejected", "id", a.ID().String(), "value", v)
		return false, nil
	}
	if err := s.repo.UpdateTarget(ctx, a); err != nil {
		metrics.IncActuatorCommand(kind, metrics.ResultError)
		return false, err
	}
	metrics.IncActuatorCommand(kind, metrics.ResultAccepted)

	for _, p := range s.publishers {
		if err := p.PublishTarget(ctx, a); err != nil {
			s.logger.Warn("publishing actuator target failed", "id", a.ID().String(), "error", err)
		}
	}
	return true, nil
}
