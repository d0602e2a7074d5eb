package sensor

import "errors"

var (
	// ErrInvalidSensor is returned when a required sensor field is missing.
	ErrInvalidSensor = errors.New("sensor: invalid construction")

	// ErrSensorNotFound is returned when a sensor ID does not exist.
	ErrSensorNotFound = errors.New("sensor: not found")

	// ErrSensorExists is returned when creating a sensor whose id is taken.
	ErrSensorExists = errors.New("sensor: already exists")

	// ErrDeviceNotFound is returned when a sensor references an unknown
	// device or functionality.
	ErrDeviceNotFound = errors.New("sensor: device or functionality not found")
)
