package service

import "errors"

var (
	// ErrInvalidInput is returned when raw input cannot form a value object.
	ErrInvalidInput = errors.New("service: invalid input")

	// ErrDeviceInactive is returned when a deactivated device is asked to
	// take a new sensor, actuator or target.
	ErrDeviceInactive = errors.New("service: device is deactivated")

	// ErrInvalidMeasurement is returned when a stored measurement is not numeric
	// where a number is required.
	ErrInvalidMeasurement = errors.New("service: measurement is not numeric")

	// ErrNotConfigured is returned when a use case needs configuration that
	// is missing, such as the grid power meter.
	ErrNotConfigured = errors.New("service: not configured")
)
