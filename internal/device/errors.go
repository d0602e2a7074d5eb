package device

import "errors"

var (
	// ErrInvalidDevice is returned when a required device field is missing.
	ErrInvalidDevice = errors.New("device: invalid construction")

	// ErrDeviceNotFound is returned when a device ID does not exist.
	ErrDeviceNotFound = errors.New("device: not found")

	// ErrDeviceExists is returned when creating a device whose id is taken.
	ErrDeviceExists = errors.New("device: already exists")

	// ErrRoomNotFound is returned when a device references an unknown room.
	ErrRoomNotFound = errors.New("device: room not found")
)
