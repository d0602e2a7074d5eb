package room

import "errors"

var (
	// ErrInvalidRoom is returned when a required room field is missing.
	ErrInvalidRoom = errors.New("room: invalid construction")

	// ErrRoomNotFound is returned when a room ID does not exist.
	ErrRoomNotFound = errors.New("room: not found")

	// ErrRoomExists is returned when creating a room whose id is taken.
	ErrRoomExists = errors.New("room: already exists")

	// ErrHouseNotFound is returned when a room references an unknown house.
	ErrHouseNotFound = errors.New("room: house not found")
)
