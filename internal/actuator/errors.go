package actuator

import "errors"

var (
	// ErrInvalidActuator is returned when an actuator is built without an
	// id, device, functionality or the range its kind needs.
	ErrInvalidActuator = errors.New("actuator: invalid construction")

	// ErrUnknownKind is returned for a kind outside the supported set.
	ErrUnknownKind = errors.New("actuator: unknown kind")

	// ErrActuatorNotFound is returned when an actuator ID does not exist.
	ErrActuatorNotFound = errors.New("actuator: not found")

	// ErrActuatorExists is returned when creating an actuator whose id is taken.
	ErrActuatorExists = errors.New("actuator: already exists")

	// ErrDeviceNotFound is returned when an actuator references an unknown
	// device or functionality.
	ErrDeviceNotFound = errors.New("actuator: device or functionality not found")
)
