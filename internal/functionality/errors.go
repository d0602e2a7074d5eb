package functionality

import "errors"

var (
	// ErrInvalidFunctionality is returned when a functionality lacks an id
	// or a valid kind.
	ErrInvalidFunctionality = errors.New("functionality: invalid construction")

	// ErrFunctionalityNotFound is returned when a functionality is not catalogued.
	ErrFunctionalityNotFound = errors.New("functionality: not found")

	// ErrFunctionalityExists is returned when registering a taken id.
	ErrFunctionalityExists = errors.New("functionality: already exists")
)
