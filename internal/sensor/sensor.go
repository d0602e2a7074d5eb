package sensor

import (
	"fmt"

	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// Sensor measures one functionality on a device.
type Sensor struct {
	id              vo.SensorID
	deviceID        vo.DeviceID
	functionalityID vo.SensorFunctionalityID
}

// New builds a sensor. Every argument is required.
func New(id vo.SensorID, deviceID vo.DeviceID, functionalityID vo.SensorFunctionalityID) (*Sensor, error) {
	switch {
	case id.IsZero():
		return nil, fmt.Errorf("%w: id is required", ErrInvalidSensor)
	case deviceID.IsZero():
		return nil, fmt.Errorf("%w: device id is required", ErrInvalidSensor)
	case functionalityID.IsZero():
		return nil, fmt.Errorf("%w: functionality id is required", ErrInvalidSensor)
	}
	return &Sensor{id: id, deviceID: deviceID, functionalityID: functionalityID}, nil
}

// Create returns a sensor with a generated id, or nil on invalid input.
func Create(deviceID vo.DeviceID, functionalityID vo.SensorFunctionalityID) *Sensor {
	return CreateWithID(vo.GenerateSensorID(), deviceID, functionalityID)
}

// CreateWithID rebuilds a stored sensor, or returns nil on invalid input.
func CreateWithID(id vo.SensorID, deviceID vo.DeviceID, functionalityID vo.SensorFunctionalityID) *Sensor {
	s, err := New(id, deviceID, functionalityID)
	if err != nil {
		return nil
	}
	return s
}

// ID returns the sensor identifier.
func (s *Sensor) ID() vo.SensorID { return s.id }

// DeviceID returns the device the sensor is attached to.
func (s *Sensor) DeviceID() vo.DeviceID { return s.deviceID }

// FunctionalityID returns what the sensor measures.
func (s *Sensor) FunctionalityID() vo.SensorFunctionalityID { return s.functionalityID }

// IsSameAs reports whether other is a sensor with the same id.
func (s *Sensor) IsSameAs(other any) bool {
	o, ok := other.(*Sensor)
	return ok && o != nil && s != nil && o.id == s.id
}
