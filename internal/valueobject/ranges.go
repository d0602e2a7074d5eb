package valueobject

import (
	"fmt"
	"math"
)

// RangeInt is an inclusive integer interval.
type RangeInt struct {
	lower int
	upper int
}

// NewRangeInt requires lower <= upper.
func NewRangeInt(lower, upper int) (*RangeInt, error) {
	if lower > upper {
		return nil, fmt.Errorf("%w: lower %d is above upper %d", ErrInvalidRange, lower, upper)
	}
	return &RangeInt{lower: lower, upper: upper}, nil
}

// Lower returns the inclusive lower bound.
func (r *RangeInt) Lower() int { return r.lower }

// Upper returns the inclusive upper bound.
func (r *RangeInt) Upper() int { return r.upper }

// Contains reports whether v lies within the bounds.
func (r *RangeInt) Contains(v int) bool {
	return v >= r.lower && v <= r.upper
}

// RangeDecimal is an inclusive decimal interval with a quantisation
// precision expressed as a number of fractional digits.
type RangeDecimal struct {
	lower     float64
	upper     float64
	precision int
}

// NewRangeDecimal rejects NaN bounds, lower > upper and negative precision.
func NewRangeDecimal(lower, upper float64, precision int) (*RangeDecimal, error) {
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return nil, fmt.Errorf("%w: NaN bound", ErrInvalidRange)
	}
	if lower > upper {
		return nil, fmt.Errorf("%w: lower %v is above upper %v", ErrInvalidRange, lower, upper)
	}
	if precision < 0 {
		return nil, fmt.Errorf("%w: negative precision %d", ErrInvalidRange, precision)
	}
	return &RangeDecimal{lower: lower, upper: upper, precision: precision}, nil
}

// Lower returns the inclusive lower bound.
func (r *RangeDecimal) Lower() float64 { return r.lower }

// Upper returns the inclusive upper bound.
func (r *RangeDecimal) Upper() float64 { return r.upper }

// Precision returns the number of fractional digits kept.
func (r *RangeDecimal) Precision() int { return r.precision }

// Contains reports whether v lies within the bounds. NaN is never contained.
func (r *RangeDecimal) Contains(v float64) bool {
	return v >= r.lower && v <= r.upper
}

// Quantize rounds v half-up to the range precision.
func (r *RangeDecimal) Quantize(v float64) float64 {
	return RoundHalfUp(v, r.precision)
}

// ActuatorProperties is the configuration bag of an actuator: an optional
// integer range and an optional decimal range.
type ActuatorProperties struct {
	intRange     *RangeInt
	decimalRange *RangeDecimal
}

// NewActuatorProperties builds properties from the given ranges. At least
// one range must be present.
func NewActuatorProperties(intRange *RangeInt, decimalRange *RangeDecimal) (*ActuatorProperties, error) {
	if intRange == nil && decimalRange == nil {
		return nil, fmt.Errorf("%w: no range given", ErrInvalidProperties)
	}
	return &ActuatorProperties{intRange: intRange, decimalRange: decimalRange}, nil
}

// NewIntProperties is shorthand for properties carrying only an integer range.
func NewIntProperties(lower, upper int) (*ActuatorProperties, error) {
	r, err := NewRangeInt(lower, upper)
	if err != nil {
		return nil, err
	}
	return &ActuatorProperties{intRange: r}, nil
}

// NewDecimalProperties is shorthand for properties carrying only a decimal range.
func NewDecimalProperties(lower, upper float64, precision int) (*ActuatorProperties, error) {
	r, err := NewRangeDecimal(lower, upper, precision)
	if err != nil {
		return nil, err
	}
	return &ActuatorProperties{decimalRange: r}, nil
}

// IntRange returns the integer range, if any.
func (p *ActuatorProperties) IntRange() (*RangeInt, bool) {
	if p == nil || p.intRange == nil {
		return nil, false
	}
	return p.intRange, true
}

// DecimalRange returns the decimal range, if any.
func (p *ActuatorProperties) DecimalRange() (*RangeDecimal, bool) {
	if p == nil || p.decimalRange == nil {
		return nil, false
	}
	return p.decimalRange, true
}
