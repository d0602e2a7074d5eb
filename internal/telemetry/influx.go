package telemetry

import (
	"context"
	"time"

	"github.com/nerrad567/smarthome-core/internal/actuator"
	"github.com/nerrad567/smarthome-core/internal/infrastructure/influxdb"
	"github.com/nerrad567/smarthome-core/internal/sensor"
	"github.com/nerrad567/smarthome-core/internal/value"
)

// PointWriter is the part of *influxdb.Client the sink uses.
type PointWriter interface {
	WriteReading(r influxdb.Reading)
	WriteActuatorTarget(actuatorID, deviceID, kind string, target float64, at time.Time)
}

// InfluxSink exports recorded values and accepted targets to InfluxDB.
// Writes are queued; the sink never fails the caller.
type InfluxSink struct {
	writer PointWriter
	now    func() time.Time
}

// NewInfluxSink creates a sink writing through w.
func NewInfluxSink(w PointWriter) *InfluxSink {
	return &InfluxSink{writer: w, now: time.Now}
}

// ValueRecorded queues v tagged with its sensor's device and functionality.
func (s *InfluxSink) ValueRecorded(_ context.Context, sn *sensor.Sensor, v value.Value) error {
	start, end := v.Span()
	r := influxdb.Reading{
		SensorID:        v.SensorID().String(),
		DeviceID:        sn.DeviceID().String(),
		FunctionalityID: sn.FunctionalityID().String(),
		Kind:            string(v.Kind()),
		Unit:            v.Reading().Unit(),
		Measurement:     v.Reading().Measurement(),
		At:              end,
	}
	switch tv := v.(type) {
	case *value.PeriodTime:
		r.Start = start
	case *value.InstantTimeLocation:
		r.Latitude = tv.GPSCode().Latitude()
		r.Longitude = tv.GPSCode().Longitude()
		r.HasLocation = true
	}

	s.writer.WriteReading(r)
	return nil
}

// PublishTarget queues the accepted target of a.
func (s *InfluxSink) PublishTarget(_ context.Context, a actuator.Actuator) error {
	target, ok := a.Target()
	if !ok {
		return nil
	}
	s.writer.WriteActuatorTarget(a.ID().String(), a.DeviceID().String(), string(a.Kind()), target, s.now())
	return nil
}
