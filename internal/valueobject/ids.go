package valueobject

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// identifier is the shared representation behind every ID type.
type identifier struct {
	value string
}

// String returns the raw identifier.
func (i identifier) String() string {
	return i.value
}

// IsZero reports whether the identifier is absent.
func (i identifier) IsZero() bool {
	return i.value == ""
}

func newIdentifier(kind, s string) (identifier, error) {
	if strings.TrimSpace(s) == "" {
		return identifier{}, fmt.Errorf("%w: %s id must not be blank", ErrInvalidID, kind)
	}
	return identifier{value: s}, nil
}

func generated() identifier {
	return identifier{value: uuid.New().String()}
}

// HouseID identifies a House.
type HouseID struct{ identifier }

// NewHouseID validates s as a house identifier.
func NewHouseID(s string) (HouseID, error) {
	id, err := newIdentifier("house", s)
	return HouseID{id}, err
}

// GenerateHouseID returns a fresh UUID-based HouseID.
func GenerateHouseID() HouseID { return HouseID{generated()} }

// RoomID identifies a Room.
type RoomID struct{ identifier }

// NewRoomID validates s as a room identifier.
func NewRoomID(s string) (RoomID, error) {
	id, err := newIdentifier("room", s)
	return RoomID{id}, err
}

// GenerateRoomID returns a fresh UUID-based RoomID.
func GenerateRoomID() RoomID { return RoomID{generated()} }

// DeviceID identifies a Device.
type DeviceID struct{ identifier }

// NewDeviceID validates s as a device identifier.
func NewDeviceID(s string) (DeviceID, error) {
	id, err := newIdentifier("device", s)
	return DeviceID{id}, err
}

// GenerateDeviceID returns a fresh UUID-based DeviceID.
func GenerateDeviceID() DeviceID { return DeviceID{generated()} }

// SensorID identifies a Sensor.
type SensorID struct{ identifier }

// NewSensorID validates s as a sensor identifier.
func NewSensorID(s string) (SensorID, error) {
	id, err := newIdentifier("sensor", s)
	return SensorID{id}, err
}

// GenerateSensorID returns a fresh UUID-based SensorID.
func GenerateSensorID() SensorID { return SensorID{generated()} }

// ActuatorID identifies an Actuator.
type ActuatorID struct{ identifier }

// NewActuatorID validates s as an actuator identifier.
func NewActuatorID(s string) (ActuatorID, error) {
	id, err := newIdentifier("actuator", s)
	return ActuatorID{id}, err
}

// GenerateActuatorID returns a fresh UUID-based ActuatorID.
func GenerateActuatorID() ActuatorID { return ActuatorID{generated()} }

// ValueID identifies a recorded Value. Surrounding whitespace is dropped.
type ValueID struct{ identifier }

// NewValueID validates s as a value identifier.
func NewValueID(s string) (ValueID, error) {
	id, err := newIdentifier("value", strings.TrimSpace(s))
	return ValueID{id}, err
}

// GenerateValueID returns a fresh UUID-based ValueID.
func GenerateValueID() ValueID { return ValueID{generated()} }

// SensorFunctionalityID names a sensing capability, e.g. "TemperatureCelsius".
type SensorFunctionalityID struct{ identifier }

// NewSensorFunctionalityID validates s as a sensor functionality identifier.
func NewSensorFunctionalityID(s string) (SensorFunctionalityID, error) {
	id, err := newIdentifier("sensor functionality", s)
	return SensorFunctionalityID{id}, err
}

// ActuatorFunctionalityID names an actuating capability, e.g. "Switch".
type ActuatorFunctionalityID struct{ identifier }

// NewActuatorFunctionalityID validates s as an actuator functionality identifier.
func NewActuatorFunctionalityID(s string) (ActuatorFunctionalityID, error) {
	id, err := newIdentifier("actuator functionality", s)
	return ActuatorFunctionalityID{id}, err
}
