package value

import (
	"time"

	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// The Create functions return nil instead of an error on invalid input.

// CreateInstantTime returns a new instant value or nil.
func CreateInstantTime(sensorID vo.SensorID, reading *vo.Reading, at time.Time) *InstantTime {
	v, err := NewInstantTime(sensorID, reading, at)
	if err != nil {
		return nil
	}
	return v
}

// CreateInstantTimeWithID rebuilds an instant value or returns nil.
func CreateInstantTimeWithID(id vo.ValueID, sensorID vo.SensorID, reading *vo.Reading, at time.Time) *InstantTime {
	v, err := NewInstantTimeWithID(id, sensorID, reading, at)
	if err != nil {
		return nil
	}
	return v
}

// CreatePeriodTime returns a new period value or nil.
func CreatePeriodTime(sensorID vo.SensorID, reading *vo.Reading, start, end time.Time) *PeriodTime {
	v, err := NewPeriodTime(sensorID, reading, start, end)
	if err != nil {
		return nil
	}
	return v
}

// CreatePeriodTimeWithID rebuilds a period value or returns nil.
func CreatePeriodTimeWithID(id vo.ValueID, sensorID vo.SensorID, reading *vo.Reading, start, end time.Time) *PeriodTime {
	v, err := NewPeriodTimeWithID(id, sensorID, reading, start, end)
	if err != nil {
		return nil
	}
	return v
}

// CreateInstantTimeLocation returns a new located value or nil.
func CreateInstantTimeLocation(sensorID vo.SensorID, reading *vo.Reading, at time.Time, gps *vo.GPSCode) *InstantTimeLocation {
	v, err := NewInstantTimeLocation(sensorID, reading, at, gps)
	if err != nil {
		return nil
	}
	return v
}

// CreateInstantTimeLocationWithID rebuilds a located value or returns nil.
func CreateInstantTimeLocationWithID(id vo.ValueID, sensorID vo.SensorID, reading *vo.Reading, at time.Time, gps *vo.GPSCode) *InstantTimeLocation {
	v, err := NewInstantTimeLocationWithID(id, sensorID, reading, at, gps)
	if err != nil {
		return nil
	}
	return v
}
