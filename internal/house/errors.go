package house

import "errors"

var (
	// ErrInvalidHouse is returned when a house is built without an id, or
	// without a location where one is required.
	ErrInvalidHouse = errors.New("house: invalid construction")

	// ErrHouseNotFound is returned when no house record exists.
	ErrHouseNotFound = errors.New("house: not found")

	// ErrHouseExists is returned when creating a house whose id is taken.
	ErrHouseExists = errors.New("house: already exists")
)
