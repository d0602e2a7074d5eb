package actuator

import (
	"fmt"
	"strings"

	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// Kind tags the actuator variant.
type Kind string

// Supported actuator kinds.
const (
	KindSwitch        Kind = "switch"
	KindIntegerSetter Kind = "integer_setter"
	KindDecimalSetter Kind = "decimal_setter"
	KindBlindSetter   Kind = "blind_setter"
)

// ParseKind converts a stored kind string.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	switch k {
	case KindSwitch, KindIntegerSetter, KindDecimalSetter, KindBlindSetter:
		return true
	}
	return false
}

// Actuator is the capability shared by every variant.
type Actuator interface {
	ID() vo.ActuatorID
	// Name is the actuator id as a string.
	Name() string
	DeviceID() vo.DeviceID
	// DeviceName is the owning device id as a string.
	DeviceName() string
	FunctionalityID() vo.ActuatorFunctionalityID
	Properties() *vo.ActuatorProperties
	Kind() Kind
	// Target returns the stored target as a number. ok is false until the
	// first accepted command for variants without an initial state.
	Target() (target float64, ok bool)
	// IsSameAs compares actuator ids across all variants.
	IsSameAs(other any) bool
}

// base carries the fields common to all variants.
type base struct {
	id              vo.ActuatorID
	functionalityID vo.ActuatorFunctionalityID
	properties      *vo.ActuatorProperties
	deviceID        vo.DeviceID
}

func newBase(id vo.ActuatorID, functionalityID vo.ActuatorFunctionalityID, props *vo.ActuatorProperties, deviceID vo.DeviceID) (base, error) {
	switch {
	case id.IsZero():
		return base{}, fmt.Errorf("%w: id is required", ErrInvalidActuator)
	case functionalityID.IsZero():
		return base{}, fmt.Errorf("%w: functionality id is required", ErrInvalidActuator)
	case deviceID.IsZero():
		return base{}, fmt.Errorf("%w: device id is required", ErrInvalidActuator)
	}
	return base{id: id, functionalityID: functionalityID, properties: props, deviceID: deviceID}, nil
}

func (b *base) ID() vo.ActuatorID                           { return b.id }
func (b *base) Name() string                                { return b.id.String() }
func (b *base) DeviceID() vo.DeviceID                       { return b.deviceID }
func (b *base) DeviceName() string                          { return b.deviceID.String() }
func (b *base) FunctionalityID() vo.ActuatorFunctionalityID { return b.functionalityID }
func (b *base) Properties() *vo.ActuatorProperties          { return b.properties }

// IsSameAs reports whether other is an actuator of any kind with the same id.
func (b *base) IsSameAs(other any) bool {
	if b == nil {
		return false
	}
	switch o := other.(type) {
	case *Switch:
		return o != nil && o.id == b.id
	case *IntegerSetter:
		return o != nil && o.id == b.id
	case *DecimalSetter:
		return o != nil && o.id == b.id
	case *BlindSetter:
		return o != nil && o.id == b.id
	}
	return false
}
