package value

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// Kind tags the shape of a value.
type Kind string

// Value shapes.
const (
	KindInstant         Kind = "instant"
	KindPeriod          Kind = "period"
	KindInstantLocation Kind = "instant_location"
)

// ParseKind converts a stored kind string.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidValue, s)
	}
	return k, nil
}

// Valid reports whether k is a known shape.
func (k Kind) Valid() bool {
	return k == KindInstant || k == KindPeriod || k == KindInstantLocation
}

// Value is the capability shared by every shape.
type Value interface {
	ID() vo.ValueID
	SensorID() vo.SensorID
	Reading() *vo.Reading
	Kind() Kind
	// Span returns the observed interval. Both ends are equal for
	// instant shapes.
	Span() (start, end time.Time)
	IsSameAs(other any) bool
}

type fields struct {
	id       vo.ValueID
	sensorID vo.SensorID
	reading  *vo.Reading
}

func newFields(id vo.ValueID, sensorID vo.SensorID, reading *vo.Reading) (fields, error) {
	switch {
	case id.IsZero():
		return fields{}, fmt.Errorf("%w: id is required", ErrInvalidValue)
	case sensorID.IsZero():
		return fields{}, fmt.Errorf("%w: sensor id is required", ErrInvalidValue)
	case reading == nil:
		return fields{}, fmt.Errorf("%w: reading is required", ErrInvalidValue)
	}
	return fields{id: id, sensorID: sensorID, reading: reading}, nil
}

func (f *fields) ID() vo.ValueID        { return f.id }
func (f *fields) SensorID() vo.SensorID { return f.sensorID }
func (f *fields) Reading() *vo.Reading  { return f.reading }

// InstantTime is a reading taken at one moment.
type InstantTime struct {
	fields
	at time.Time
}

// NewInstantTime builds an instant value with a generated id.
func NewInstantTime(sensorID vo.SensorID, reading *vo.Reading, at time.Time) (*InstantTime, error) {
	return NewInstantTimeWithID(vo.GenerateValueID(), sensorID, reading, at)
}

// NewInstantTimeWithID rebuilds a stored instant value.
func NewInstantTimeWithID(id vo.ValueID, sensorID vo.SensorID, reading *vo.Reading, at time.Time) (*InstantTime, error) {
	f, err := newFields(id, sensorID, reading)
	if err != nil {
		return nil, err
	}
	if at.IsZero() {
		return nil, fmt.Errorf("%w: timestamp is required", ErrInvalidValue)
	}
	return &InstantTime{fields: f, at: at}, nil
}

// Kind returns KindInstant.
func (v *InstantTime) Kind() Kind { return KindInstant }

// At returns the observation time.
func (v *InstantTime) At() time.Time { return v.at }

// Span implements Value.
func (v *InstantTime) Span() (time.Time, time.Time) { return v.at, v.at }

// IsSameAs reports whether other is an instant value with the same id.
func (v *InstantTime) IsSameAs(other any) bool {
	o, ok := other.(*InstantTime)
	return ok && o != nil && v != nil && o.id == v.id
}

// PeriodTime is a reading aggregated over an interval.
type PeriodTime struct {
	fields
	start time.Time
	end   time.Time
}

// NewPeriodTime builds a period value with a generated id.
func NewPeriodTime(sensorID vo.SensorID, reading *vo.Reading, start, end time.Time) (*PeriodTime, error) {
	return NewPeriodTimeWithID(vo.GenerateValueID(), sensorID, reading, start, end)
}

// NewPeriodTimeWithID rebuilds a stored period value. end may equal start
// but not precede it.
func NewPeriodTimeWithID(id vo.ValueID, sensorID vo.SensorID, reading *vo.Reading, start, end time.Time) (*PeriodTime, error) {
	f, err := newFields(id, sensorID, reading)
	if err != nil {
		return nil, err
	}
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end are required", ErrInvalidValue)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %s before %s", ErrInvalidPeriod, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return &PeriodTime{fields: f, start: start, end: end}, nil
}

// Kind returns KindPeriod.
func (v *PeriodTime) Kind() Kind { return KindPeriod }

// Start returns the beginning of the period.
func (v *PeriodTime) Start() time.Time { return v.start }

// End returns the end of the period.
func (v *PeriodTime) End() time.Time { return v.end }

// Span implements Value.
func (v *PeriodTime) Span() (time.Time, time.Time) { return v.start, v.end }

// IsSameAs reports whether other is a period value with the same id.
func (v *PeriodTime) IsSameAs(other any) bool {
	o, ok := other.(*PeriodTime)
	return ok && o != nil && v != nil && o.id == v.id
}

// InstantTimeLocation is a reading taken at one moment for a place, such
// as sunrise at given coordinates.
type InstantTimeLocation struct {
	fields
	at  time.Time
	gps *vo.GPSCode
}

// NewInstantTimeLocation builds a located value with a generated id.
func NewInstantTimeLocation(sensorID vo.SensorID, reading *vo.Reading, at time.Time, gps *vo.GPSCode) (*InstantTimeLocation, error) {
	return NewInstantTimeLocationWithID(vo.GenerateValueID(), sensorID, reading, at, gps)
}

// NewInstantTimeLocationWithID rebuilds a stored located value.
func NewInstantTimeLocationWithID(id vo.ValueID, sensorID vo.SensorID, reading *vo.Reading, at time.Time, gps *vo.GPSCode) (*InstantTimeLocation, error) {
	f, err := newFields(id, sensorID, reading)
	if err != nil {
		return nil, err
	}
	if at.IsZero() {
		return nil, fmt.Errorf("%w: timestamp is required", ErrInvalidValue)
	}
	if gps == nil {
		return nil, fmt.Errorf("%w: gps code is required", ErrInvalidValue)
	}
	return &InstantTimeLocation{fields: f, at: at, gps: gps}, nil
}

// Kind returns KindInstantLocation.
func (v *InstantTimeLocation) Kind() Kind { return KindInstantLocation }

// At returns the observation time.
func (v *InstantTimeLocation) At() time.Time { return v.at }

// GPSCode returns the coordinates the reading refers to.
func (v *InstantTimeLocation) GPSCode() *vo.GPSCode { return v.gps }

// Span implements Value.
func (v *InstantTimeLocation) Span() (time.Time, time.Time) { return v.at, v.at }

// IsSameAs reports whether other is a located value with the same id.
func (v *InstantTimeLocation) IsSameAs(other any) bool {
	o, ok := other.(*InstantTimeLocation)
	return ok && o != nil && v != nil && o.id == v.id
}
