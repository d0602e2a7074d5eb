package functionality

import (
	"fmt"

	"github.com/nerrad567/smarthome-core/internal/actuator"
	"github.com/nerrad567/smarthome-core/internal/value"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// SensorFunctionality is a catalogued sensor capability.
type SensorFunctionality struct {
	id          vo.SensorFunctionalityID
	valueKind   value.Kind
	description string
}

// NewSensorFunctionality builds a sensor functionality producing values of
// the given shape.
func NewSensorFunctionality(id vo.SensorFunctionalityID, kind value.Kind, description string) (*SensorFunctionality, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidFunctionality)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown value kind %q", ErrInvalidFunctionality, kind)
	}
	return &SensorFunctionality{id: id, valueKind: kind, description: description}, nil
}

// CreateSensorFunctionality returns a sensor functionality or nil.
func CreateSensorFunctionality(id vo.SensorFunctionalityID, kind value.Kind, description string) *SensorFunctionality {
	f, err := NewSensorFunctionality(id, kind, description)
	if err != nil {
		return nil
	}
	return f
}

// ID returns the functionality identifier.
func (f *SensorFunctionality) ID() vo.SensorFunctionalityID { return f.id }

// ValueKind returns the shape of the values it produces.
func (f *SensorFunctionality) ValueKind() value.Kind { return f.valueKind }

// Description returns a human description.
func (f *SensorFunctionality) Description() string { return f.description }

// IsSameAs compares every field.
func (f *SensorFunctionality) IsSameAs(other any) bool {
	o, ok := other.(*SensorFunctionality)
	if !ok || o == nil || f == nil {
		return false
	}
	return *f == *o
}

// ActuatorFunctionality is a catalogued actuator capability.
type ActuatorFunctionality struct {
	id           vo.ActuatorFunctionalityID
	actuatorKind actuator.Kind
	description  string
}

// NewActuatorFunctionality builds an actuator functionality served by the
// given actuator kind.
func NewActuatorFunctionality(id vo.ActuatorFunctionalityID, kind actuator.Kind, description string) (*ActuatorFunctionality, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidFunctionality)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown actuator kind %q", ErrInvalidFunctionality, kind)
	}
	return &ActuatorFunctionality{id: id, actuatorKind: kind, description: description}, nil
}

// CreateActuatorFunctionality returns an actuator functionality or nil.
func CreateActuatorFunctionality(id vo.ActuatorFunctionalityID, kind actuator.Kind, description string) *ActuatorFunctionality {
	f, err := NewActuatorFunctionality(id, kind, description)
	if err != nil {
		return nil
	}
	return f
}

// ID returns the functionality identifier.
func (f *ActuatorFunctionality) ID() vo.ActuatorFunctionalityID { return f.id }

// ActuatorKind returns the actuator variant that implements it.
func (f *ActuatorFunctionality) ActuatorKind() actuator.Kind { return f.actuatorKind }

// Description returns a human description.
func (f *ActuatorFunctionality) Description() string { return f.description }

// IsSameAs compares every field.
func (f *ActuatorFunctionality) IsSameAs(other any) bool {
	o, ok := other.(*ActuatorFunctionality)
	if !ok || o == nil || f == nil {
		return false
	}
	return *f == *o
}
