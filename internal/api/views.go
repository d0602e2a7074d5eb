package api

import (
	"time"

	"github.com/nerrad567/smarthome-core/internal/actuator"
	"github.com/nerrad567/smarthome-core/internal/device"
	"github.com/nerrad567/smarthome-core/internal/functionality"
	"github.com/nerrad567/smarthome-core/internal/house"
	"github.com/nerrad567/smarthome-core/internal/room"
	"github.com/nerrad567/smarthome-core/internal/sensor"
	"github.com/nerrad567/smarthome-core/internal/value"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// JSON representations of the domain aggregates. Aggregates keep their
// fields private, so responses are built from these views.

type locationView struct {
	Street     string  `json:"street"`
	DoorNumber string  `json:"door_number"`
	ZipCode    string  `json:"zip_code"`
	City       string  `json:"city"`
	Country    string  `json:"country"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

type houseView struct {
	ID       string        `json:"id"`
	Location *locationView `json:"location"`
}

type roomView struct {
	ID      string  `json:"id"`
	HouseID string  `json:"house_id"`
	Floor   int     `json:"floor"`
	Length  float64 `json:"length"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Area    float64 `json:"area"`
	Inside  bool    `json:"inside"`
}

type deviceView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Model  string `json:"model"`
	RoomID string `json:"room_id"`
	Status string `json:"status"`
	Active bool   `json:"active"`
}

type sensorView struct {
	ID              string `json:"id"`
	DeviceID        string `json:"device_id"`
	FunctionalityID string `json:"functionality_id"`
}

type intRangeView struct {
	Lower int `json:"lower"`
	Upper int `json:"upper"`
}

type decimalRangeView struct {
	Lower     float64 `json:"lower"`
	Upper     float64 `json:"upper"`
	Precision int     `json:"precision"`
}

type actuatorView struct {
	ID              string            `json:"id"`
	DeviceID        string            `json:"device_id"`
	FunctionalityID string            `json:"functionality_id"`
	Kind            string            `json:"kind"`
	Target          *float64          `json:"target"`
	IntRange        *intRangeView     `json:"int_range,omitempty"`
	DecimalRange    *decimalRangeView `json:"decimal_range,omitempty"`
}

type valueView struct {
	ID          string     `json:"id"`
	SensorID    string     `json:"sensor_id"`
	Kind        string     `json:"kind"`
	Measurement string     `json:"measurement"`
	Unit        string     `json:"unit"`
	Display     string     `json:"display"`
	At          *time.Time `json:"at,omitempty"`
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
}

type readingView struct {
	Measurement string `json:"measurement"`
	Unit        string `json:"unit"`
	Display     string `json:"display"`
}

type sensorFunctionalityView struct {
	ID          string `json:"id"`
	ValueKind   string `json:"value_kind"`
	Description string `json:"description"`
}

type actuatorFunctionalityView struct {
	ID           string `json:"id"`
	ActuatorKind string `json:"actuator_kind"`
	Description  string `json:"description"`
}

func newLocationView(loc *vo.Location) *locationView {
	if loc == nil {
		return nil
	}
	addr, gps := loc.Address(), loc.GPSCode()
	return &locationView{
		Street:     addr.Street(),
		DoorNumber: addr.DoorNumber(),
		ZipCode:    addr.ZipCode(),
		City:       addr.City(),
		Country:    addr.Country(),
		Latitude:   gps.Latitude(),
		Longitude:  gps.Longitude(),
	}
}

func newHouseView(h *house.House) houseView {
	return houseView{ID: h.ID().String(), Location: newLocationView(h.Location())}
}

func newRoomView(r *room.Room) roomView {
	v := roomView{ID: r.ID().String(), HouseID: r.HouseID().String()}
	if f := r.Floor(); f != nil {
		v.Floor = f.Floor()
	}
	if d := r.Dimensions(); d != nil {
		v.Length, v.Width, v.Height, v.Area = d.Length(), d.Width(), d.Height(), d.Area()
		v.Inside = r.IsInside()
	}
	return v
}

func newRoomViews(rooms []*room.Room) []roomView {
	out := make([]roomView, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, newRoomView(r))
	}
	return out
}

func newDeviceView(d *device.Device) deviceView {
	return deviceView{
		ID:     d.ID().String(),
		Name:   d.Name(),
		Model:  d.Model().String(),
		RoomID: d.RoomID().String(),
		Status: string(d.Status()),
		Active: d.IsActive(),
	}
}

func newDeviceViews(devices []*device.Device) []deviceView {
	out := make([]deviceView, 0, len(devices))
	for _, d := range devices {
		out = append(out, newDeviceView(d))
	}
	return out
}

func newSensorView(s *sensor.Sensor) sensorView {
	return sensorView{
		ID:              s.ID().String(),
		DeviceID:        s.DeviceID().String(),
		FunctionalityID: s.FunctionalityID().String(),
	}
}

func newSensorViews(sensors []*sensor.Sensor) []sensorView {
	out := make([]sensorView, 0, len(sensors))
	for _, s := range sensors {
		out = append(out, newSensorView(s))
	}
	return out
}

func newActuatorView(a actuator.Actuator) actuatorView {
	v := actuatorView{
		ID:              a.ID().String(),
		DeviceID:        a.DeviceID().String(),
		FunctionalityID: a.FunctionalityID().String(),
		Kind:            string(a.Kind()),
	}
	if target, ok := a.Target(); ok {
		v.Target = &target
	}
	if props := a.Properties(); props != nil {
		if r, ok := props.IntRange(); ok {
			v.IntRange = &intRangeView{Lower: r.Lower(), Upper: r.Upper()}
		}
		if r, ok := props.DecimalRange(); ok {
			v.DecimalRange = &decimalRangeView{Lower: r.Lower(), Upper: r.Upper(), Precision: r.Precision()}
		}
	}
	return v
}

func newActuatorViews(actuators []actuator.Actuator) []actuatorView {
	out := make([]actuatorView, 0, len(actuators))
	for _, a := range actuators {
		out = append(out, newActuatorView(a))
	}
	return out
}

func newReadingView(r *vo.Reading) readingView {
	return readingView{Measurement: r.Measurement(), Unit: r.Unit(), Display: r.String()}
}

func newValueView(v value.Value) valueView {
	r := v.Reading()
	out := valueView{
		ID:          v.ID().String(),
		SensorID:    v.SensorID().String(),
		Kind:        string(v.Kind()),
		Measurement: r.Measurement(),
		Unit:        r.Unit(),
		Display:     r.String(),
	}

	start, end := v.Span()
	switch tv := v.(type) {
	case *value.PeriodTime:
		out.Start, out.End = &start, &end
	case *value.InstantTimeLocation:
		lat, lon := tv.GPSCode().Latitude(), tv.GPSCode().Longitude()
		out.At, out.Latitude, out.Longitude = &end, &lat, &lon
	default:
		out.At = &end
	}
	return out
}

func newValueViews(values []value.Value) []valueView {
	out := make([]valueView, 0, len(values))
	for _, v := range values {
		out = append(out, newValueView(v))
	}
	return out
}

func newSensorFunctionalityViews(fs []*functionality.SensorFunctionality) []sensorFunctionalityView {
	out := make([]sensorFunctionalityView, 0, len(fs))
	for _, f := range fs {
		out = append(out, sensorFunctionalityView{ID: f.ID().String(), ValueKind: string(f.ValueKind()), Description: f.Description()})
	}
	return out
}

func newActuatorFunctionalityViews(fs []*functionality.ActuatorFunctionality) []actuatorFunctionalityView {
	out := make([]actuatorFunctionalityView, 0, len(fs))
	for _, f := range fs {
		out = append(out, actuatorFunctionalityView{ID: f.ID().String(), ActuatorKind: string(f.ActuatorKind()), Description: f.Description()})
	}
	return out
}
