package valueobject

import "errors"

var (
	// ErrInvalidID is returned when an identifier is blank.
	ErrInvalidID = errors.New("valueobject: invalid identifier")

	// ErrInvalidDimensions is returned for non-positive room length or width,
	// or a negative height.
	ErrInvalidDimensions = errors.New("valueobject: invalid room dimensions")

	// ErrInvalidModel is returned for a blank device model.
	ErrInvalidModel = errors.New("valueobject: invalid device model")

	// ErrInvalidStatus is returned for an unknown device status.
	ErrInvalidStatus = errors.New("valueobject: invalid device status")

	// ErrInvalidGPS is returned when latitude or longitude is out of bounds.
	ErrInvalidGPS = errors.New("valueobject: invalid gps code")

	// ErrInvalidAddress is returned when an address field is blank or the
	// zip code does not validate for the country.
	ErrInvalidAddress = errors.New("valueobject: invalid address")

	// ErrInvalidLocation is returned when a location lacks an address or gps code.
	ErrInvalidLocation = errors.New("valueobject: invalid location")

	// ErrInvalidReading is returned for a blank measurement or unit.
	ErrInvalidReading = errors.New("valueobject: invalid reading")

	// ErrInvalidRange is returned for inverted, NaN or negative-precision ranges.
	ErrInvalidRange = errors.New("valueobject: invalid range")

	// ErrInvalidProperties is returned when actuator properties carry no range.
	ErrInvalidProperties = errors.New("valueobject: invalid actuator properties")
)
