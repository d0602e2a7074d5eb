package valueobject

import (
	"fmt"
	"strings"
)

const (
	// ReadingSeparator splits co-occurring measurements and units.
	ReadingSeparator = ";"

	// NoUnit marks a measurement that is printed without a unit.
	NoUnit = "*"
)

// Reading is a raw measurement and its unit. Either field may hold several
// ";" separated entries, e.g. "North;30" with "*;km/h".
type Reading struct {
	measurement string
	unit        string
}

// NewReading rejects blank measurements or units.
func NewReading(measurement, unit string) (*Reading, error) {
	if strings.TrimSpace(measurement) == "" {
		return nil, fmt.Errorf("%w: measurement must not be blank", ErrInvalidReading)
	}
	if strings.TrimSpace(unit) == "" {
		return nil, fmt.Errorf("%w: unit must not be blank", ErrInvalidReading)
	}
	return &Reading{measurement: measurement, unit: unit}, nil
}

// Measurement returns the raw measurement field.
func (r *Reading) Measurement() string { return r.measurement }

// Unit returns the raw unit field.
func (r *Reading) Unit() string { return r.unit }

// String renders the reading with FormatReading.
func (r *Reading) String() string {
	return FormatReading(r.measurement, r.unit)
}

// Equal compares measurement and unit.
func (r *Reading) Equal(other *Reading) bool {
	if r == nil || other == nil {
		return r == other
	}
	return *r == *other
}

// FormatReading renders a measurement/unit pair as one human readable
// string. Multiple measurements are paired with units by position and
// joined with " and ". A single unit applies to every measurement and the
// NoUnit token prints the measurement bare.
//
//	FormatReading("10;OFF", "C;*") == "10 C and OFF"
//	FormatReading("4;20", "W")     == "4 W and 20 W"
func FormatReading(measurement, unit string) string {
	if !strings.Contains(measurement, ReadingSeparator) && !strings.Contains(unit, ReadingSeparator) {
		return withUnit(measurement, unit)
	}

	values := strings.Split(measurement, ReadingSeparator)
	units := strings.Split(unit, ReadingSeparator)

	parts := make([]string, 0, len(values))
	for i, v := range values {
		u := units[0]
		if len(units) > 1 {
			if i >= len(units) {
				parts = append(parts, v)
				continue
			}
			u = units[i]
		}
		parts = append(parts, withUnit(v, u))
	}
	return strings.Join(parts, " and ")
}

func withUnit(value, unit string) string {
	if unit == NoUnit {
		return value
	}
	return value + " " + unit
}
