package actuator

import (
	"fmt"
	"math"

	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// New builds an actuator of the given kind.
func New(kind Kind, id vo.ActuatorID, functionalityID vo.ActuatorFunctionalityID, props *vo.ActuatorProperties, deviceID vo.DeviceID) (Actuator, error) {
	var (
		a   Actuator
		err error
	)
	switch kind {
	case KindSwitch:
		a, err = NewSwitch(id, functionalityID, props, deviceID)
	case KindIntegerSetter:
		a, err = NewIntegerSetter(id, functionalityID, props, deviceID)
	case KindDecimalSetter:
		a, err = NewDecimalSetter(id, functionalityID, props, deviceID)
	case KindBlindSetter:
		a, err = NewBlindSetter(id, functionalityID, props, deviceID)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create returns a new actuator with a generated id, or nil when the
// kind is unknown or any part is invalid.
func Create(kind Kind, functionalityID vo.ActuatorFunctionalityID, props *vo.ActuatorProperties, deviceID vo.DeviceID) Actuator {
	return CreateWithID(kind, vo.GenerateActuatorID(), functionalityID, props, deviceID)
}

// CreateWithID rebuilds a stored actuator, or returns nil on invalid input.
func CreateWithID(kind Kind, id vo.ActuatorID, functionalityID vo.ActuatorFunctionalityID, props *vo.ActuatorProperties, deviceID vo.DeviceID) Actuator {
	a, err := New(kind, id, functionalityID, props, deviceID)
	if err != nil {
		return nil
	}
	return a
}

// maxExactInt is the largest integer a float64 holds without loss.
const maxExactInt = 1 << 53

// Command sends a numeric target to a. Integer variants reject values
// with a fractional part. It reports whether the target was accepted.
func Command(a Actuator, v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	switch s := a.(type) {
	case *DecimalSetter:
		return s.SetDecimalValue(v)
	case *Switch:
		n, ok := integral(v)
		return ok && s.SetValue(n)
	case *IntegerSetter:
		n, ok := integral(v)
		return ok && s.SetValue(n)
	case *BlindSetter:
		n, ok := integral(v)
		return ok && s.SetValue(n)
	}
	return false
}

// restoreTarget puts a persisted target back without range checks.
func restoreTarget(a Actuator, v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	switch s := a.(type) {
	case *DecimalSetter:
		s.value, s.set = v, true
		return true
	case *Switch:
		n, ok := integral(v)
		return ok && s.SetValue(n)
	case *IntegerSetter:
		n, ok := integral(v)
		if ok {
			s.value, s.set = n, true
		}
		return ok
	case *BlindSetter:
		n, ok := integral(v)
		if ok {
			s.value, s.set = n, true
		}
		return ok
	}
	return false
}

func integral(v float64) (int, bool) {
	if v != math.Trunc(v) || math.Abs(v) > maxExactInt {
		return 0, false
	}
	return int(v), true
}
