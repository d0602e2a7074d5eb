package actuator

import vo "github.com/nerrad567/smarthome-core/internal/valueobject"

// SwitchState is the position of a Switch.
type SwitchState string

// Switch positions.
const (
	SwitchOn  SwitchState = "ON"
	SwitchOff SwitchState = "OFF"
)

// Switch is an on/off actuator. It starts ON.
type Switch struct {
	base
	state SwitchState
}

// NewSwitch builds a switch. Properties are optional and unused.
func NewSwitch(id vo.ActuatorID, functionalityID vo.ActuatorFunctionalityID, props *vo.ActuatorProperties, deviceID vo.DeviceID) (*Switch, error) {
	b, err := newBase(id, functionalityID, props, deviceID)
	if err != nil {
		return nil, err
	}
	return &Switch{base: b, state: SwitchOn}, nil
}

// Kind returns KindSwitch.
func (s *Switch) Kind() Kind { return KindSwitch }

// SetValue turns the switch on for 1 and off for 0. Any other value is
// rejected.
func (s *Switch) SetValue(v int) bool {
	switch v {
	case 1:
		s.state = SwitchOn
	case 0:
		s.state = SwitchOff
	default:
		return false
	}
	return true
}

// State returns the current position.
func (s *Switch) State() SwitchState { return s.state }

// IsOn reports whether the switch is ON.
func (s *Switch) IsOn() bool { return s.state == SwitchOn }

// Target returns 1 when ON and 0 when OFF. A switch always has a target.
func (s *Switch) Target() (float64, bool) {
	if s.IsOn() {
		return 1, true
	}
	return 0, true
}
