package zipcode

import "errors"

var (
	// ErrUnsupportedCountry is returned when no validator is registered for a country.
	ErrUnsupportedCountry = errors.New("zipcode: unsupported country")

	// ErrInvalidZipCode is returned when a code does not match its country's format.
	ErrInvalidZipCode = errors.New("zipcode: invalid postal code")
)
