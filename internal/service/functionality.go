package service

import (
	"context"

	"github.com/nerrad567/smarthome-core/internal/functionality"
)

// FunctionalityService exposes the functionality catalogue.
type FunctionalityService struct {
	repo functionality.Repository
}

// NewFunctionalityService creates a catalogue service.
func NewFunctionalityService(repo functionality.Repository) *FunctionalityService {
	return &FunctionalityService{repo: repo}
}

// ListSensor returns every sensor functionality.
func (s *FunctionalityService) ListSensor(ctx context.Context) ([]*functionality.SensorFunctionality, error) {
	return s.repo.ListSensor(ctx)
}

// ListActuator returns every actuator functionality.
func (s *FunctionalityService) ListActuator(ctx context.Context) ([]*functionality.ActuatorFunctionality, error) {
	return s.repo.ListActuator(ctx)
}
