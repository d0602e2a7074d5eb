package actuator

import (
	"fmt"
	"math"

	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// IntegerSetter accepts integers inside its configured range.
type IntegerSetter struct {
	base
	limits *vo.RangeInt
	value  int
	set    bool
}

// NewIntegerSetter builds an integer setter. props must carry a RangeInt.
func NewIntegerSetter(id vo.ActuatorID, functionalityID vo.ActuatorFunctionalityID, props *vo.ActuatorProperties, deviceID vo.DeviceID) (*IntegerSetter, error) {
	b, err := newBase(id, functionalityID, props, deviceID)
	if err != nil {
		return nil, err
	}
	limits, ok := props.IntRange()
	if !ok {
		return nil, fmt.Errorf("%w: integer setter needs an integer range", ErrInvalidActuator)
	}
	return &IntegerSetter{base: b, limits: limits}, nil
}

// Kind returns KindIntegerSetter.
func (s *IntegerSetter) Kind() Kind { return KindIntegerSetter }

// Range returns the accepted interval.
func (s *IntegerSetter) Range() *vo.RangeInt { return s.limits }

// SetValue stores v if it lies inside the range, bounds included.
func (s *IntegerSetter) SetValue(v int) bool {
	if !s.limits.Contains(v) {
		return false
	}
	s.value, s.set = v, true
	return true
}

// Value returns the last accepted value.
func (s *IntegerSetter) Value() (int, bool) { return s.value, s.set }

// Target implements Actuator.
func (s *IntegerSetter) Target() (float64, bool) { return float64(s.value), s.set }

// DecimalSetter accepts numbers inside its configured range and stores
// them rounded to the range precision.
type DecimalSetter struct {
	base
	limits *vo.RangeDecimal
	value  float64
	set    bool
}

// NewDecimalSetter builds a decimal setter. props must carry a
// RangeDecimal with finite bounds.
func NewDecimalSetter(id vo.ActuatorID, functionalityID vo.ActuatorFunctionalityID, props *vo.ActuatorProperties, deviceID vo.DeviceID) (*DecimalSetter, error) {
	b, err := newBase(id, functionalityID, props, deviceID)
	if err != nil {
		return nil, err
	}
	limits, ok := props.DecimalRange()
	if !ok {
		return nil, fmt.Errorf("%w: decimal setter needs a decimal range", ErrInvalidActuator)
	}
	if math.IsNaN(limits.Lower()) || math.IsNaN(limits.Upper()) {
		return nil, fmt.Errorf("%w: NaN range bound", ErrInvalidActuator)
	}
	return &DecimalSetter{base: b, limits: limits}, nil
}

// Kind returns KindDecimalSetter.
func (s *DecimalSetter) Kind() Kind { return KindDecimalSetter }

// Range returns the accepted interval.
func (s *DecimalSetter) Range() *vo.RangeDecimal { return s.limits }

// SetDecimalValue stores v rounded half-up to the range precision. NaN
// is rejected, as is any value that lies outside the range before or
// after rounding.
func (s *DecimalSetter) SetDecimalValue(v float64) bool {
	if math.IsNaN(v) || !s.limits.Contains(v) {
		return false
	}
	q := s.limits.Quantize(v)
	if !s.limits.Contains(q) {
		return false
	}
	s.value, s.set = q, true
	return true
}

// Value returns the last accepted, rounded value.
func (s *DecimalSetter) Value() (float64, bool) { return s.value, s.set }

// Target implements Actuator.
func (s *DecimalSetter) Target() (float64, bool) { return s.value, s.set }

// BlindMin and BlindMax bound a blind roller position.
const (
	BlindMin = 0
	BlindMax = 100
)

var blindProperties, _ = vo.NewIntProperties(BlindMin, BlindMax) //nolint:errcheck // constant range

// BlindSetter positions a blind roller as a percentage.
type BlindSetter struct {
	base
	value int
	set   bool
}

// NewBlindSetter builds a blind setter. Its range is fixed, so props is
// ignored and Properties always reports [0, 100].
func NewBlindSetter(id vo.ActuatorID, functionalityID vo.ActuatorFunctionalityID, _ *vo.ActuatorProperties, deviceID vo.DeviceID) (*BlindSetter, error) {
	b, err := newBase(id, functionalityID, blindProperties, deviceID)
	if err != nil {
		return nil, err
	}
	return &BlindSetter{base: b}, nil
}

// Kind returns KindBlindSetter.
func (s *BlindSetter) Kind() Kind { return KindBlindSetter }

// SetValue stores a position between 0 and 100 inclusive.
func (s *BlindSetter) SetValue(v int) bool {
	if v < BlindMin || v > BlindMax {
		return false
	}
	s.value, s.set = v, true
	return true
}

// Value returns the last accepted position.
func (s *BlindSetter) Value() (int, bool) { return s.value, s.set }

// Target implements Actuator.
func (s *BlindSetter) Target() (float64, bool) { return float64(s.value), s.set }
