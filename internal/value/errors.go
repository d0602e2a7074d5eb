package value

import "errors"

var (
	// ErrInvalidValue is returned when a required value field is missing.
	ErrInvalidValue = errors.New("value: invalid construction")

	// ErrInvalidPeriod is returned when a period ends before it starts.
	ErrInvalidPeriod = errors.New("value: period ends before it starts")

	// ErrValueNotFound is returned when no value matches a lookup.
	ErrValueNotFound = errors.New("value: not found")

	// ErrValueExists is returned when storing a value whose id is taken.
	ErrValueExists = errors.New("value: already exists")

	// ErrSensorNotFound is returned when a value references an unknown sensor.
	ErrSensorNotFound = errors.New("value: sensor not found")
)
