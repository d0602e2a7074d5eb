package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nerrad567/smarthome-core/internal/device"
	"github.com/nerrad567/smarthome-core/internal/functionality"
	"github.com/nerrad567/smarthome-core/internal/sensor"
	"github.com/nerrad567/smarthome-core/internal/telemetry/metrics"
	"github.com/nerrad567/smarthome-core/internal/value"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// ReadingInput is a raw sensor reading as received over the API or MQTT.
//
// Instant readings use At, period readings Start and End, and located
// readings At plus Latitude and Longitude. A zero At means now.
type ReadingInput struct {
	Measurement string
	Unit        string
	At          time.Time
	Start       time.Time
	End         time.Time
	Latitude    *float64
	Longitude   *float64
	Source      string
}

// ValueService records and queries sensor values.
type ValueService struct {
	values    value.Repository
	sensors   sensor.Repository
	devices   *device.Registry
	catalogue functionality.Repository
	energy    EnergySettings

	sinks  []ValueSink
	now    func() time.Time
	logger Logger
}

// EnergySettings identifies the grid power meter for peak calculations.
type EnergySettings struct {
	GridMeter vo.DeviceID
	Cadence   time.Duration
}

// NewValueService creates a value service.
func NewValueService(values value.Repository, sensors sensor.Repository, devices *device.Registry, catalogue functionality.Repository, energy EnergySettings) *ValueService {
	return &ValueService{
		values:    values,
		sensors:   sensors,
		devices:   devices,
		catalogue: catalogue,
		energy:    energy,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    noopLogger{},
	}
}

// SetLogger sets the logger for the service.
func (s *ValueService) SetLogger(logger Logger) {
	s.logger = logger
}

// AddSink registers a hook for recorded values. Not safe to call once
// values are flowing.
func (s *ValueService) AddSink(sink ValueSink) {
	s.sinks = append(s.sinks, sink)
}

// Record stores a reading for a sensor. The value shape (instant, period
// or located instant) follows the sensor's functionality.
func (s *ValueService) Record(ctx context.Context, sensorID vo.SensorID, in ReadingInput) (value.Value, error) {
	start := time.Now()
	v, sn, err := s.record(ctx, sensorID, in)

	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	}
	metrics.ObserveValueRecord(in.Source, result, time.Since(start))
	if err != nil {
		return nil, err
	}

	for _, sink := range s.sinks {
		if err := sink.ValueRecorded(ctx, sn, v); err != nil {
			s.logger.Warn("value sink failed", "value", v.ID().String(), "error", err)
		}
	}
	return v, nil
}

func (s *ValueService) record(ctx context.Context, sensorID vo.SensorID, in ReadingInput) (value.Value, *sensor.Sensor, error) {
	sn, err := s.sensors.Get(ctx, sensorID)
	if err != nil {
		return nil, nil, err
	}
	fn, err := s.catalogue.GetSensor(ctx, sn.FunctionalityID())
	if err != nil {
		return nil, nil, err
	}
	reading, err := vo.NewReading(in.Measurement, in.Unit)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	v, err := s.build(fn.ValueKind(), sensorID, reading, in)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.values.Create(ctx, v); err != nil {
		return nil, nil, err
	}

	s.logger.Debug("value recorded", "sensor", sensorID.String(), "kind", string(v.Kind()), "reading", reading.String())
	return v, sn, nil
}

func (s *ValueService) build(kind value.Kind, sensorID vo.SensorID, reading *vo.Reading, in ReadingInput) (value.Value, error) {
	at := in.At
	if at.IsZero() {
		at = s.now()
	}

	switch kind {
	case value.KindInstant:
		return value.NewInstantTime(sensorID, reading, at)
	case value.KindPeriod:
		if in.Start.IsZero() || in.End.IsZero() {
			return nil, fmt.Errorf("period reading needs start and end")
		}
		return value.NewPeriodTime(sensorID, reading, in.Start, in.End)
	case value.KindInstantLocation:
		if in.Latitude == nil || in.Longitude == nil {
			return nil, fmt.Errorf("located reading needs latitude and longitude")
		}
		gps, err := vo.NewGPSCode(*in.Latitude, *in.Longitude)
		if err != nil {
			return nil, err
		}
		return value.NewInstantTimeLocation(sensorID, reading, at, gps)
	default:
		return nil, fmt.Errorf("%w: %q", value.ErrInvalidValue, kind)
	}
}

// ListBySensor returns the values of a sensor. A zero from and to list
// every value; otherwise only values observed entirely inside [from, to].
func (s *ValueService) ListBySensor(ctx context.Context, sensorID vo.SensorID, from, to time.Time) ([]value.Value, error) {
	if _, err := s.sensors.Get(ctx, sensorID); err != nil {
		return nil, err
	}
	if from.IsZero() && to.IsZero() {
		return s.values.ListBySensor(ctx, sensorID)
	}
	if to.IsZero() {
		to = s.now()
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: interval ends before it starts", ErrInvalidInput)
	}
	return s.values.ListBySensorBetween(ctx, sensorID, from, to)
}

// MeasurementsForDevice groups the readings of every sensor of a device
// within [from, to] by sensor functionality.
func (s *ValueService) MeasurementsForDevice(ctx context.Context, deviceID vo.DeviceID, from, to time.Time) (map[vo.SensorFunctionalityID][]*vo.Reading, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: interval ends before it starts", ErrInvalidInput)
	}
	if _, err := s.devices.GetDevice(ctx, deviceID); err != nil {
		return nil, err
	}
	sensors, err := s.sensors.ListByDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	out := make(map[vo.SensorFunctionalityID][]*vo.Reading)
	for _, sn := range sensors {
		values, err := s.values.ListBySensorBetween(ctx, sn.ID(), from, to)
		if err != nil {
			return nil, err
		}
		readings := out[sn.FunctionalityID()]
		for _, v := range values {
			readings = append(readings, v.Reading())
		}
		out[sn.FunctionalityID()] = readings
	}
	return out, nil
}

// LastMeasurement returns the latest value recorded by the first sensor of
// functionalityID on deviceID. It fails with sensor.ErrSensorNotFound when
// the device has no such sensor and value.ErrValueNotFound when nothing
// has been recorded.
func (s *ValueService) LastMeasurement(ctx context.Context, deviceID vo.DeviceID, functionalityID vo.SensorFunctionalityID) (value.Value, error) {
	sensors, err := s.sensors.ListByDeviceAndFunctionality(ctx, deviceID, functionalityID)
	if err != nil {
		return nil, err
	}
	if len(sensors) == 0 {
		return nil, fmt.Errorf("%w: no %s sensor on device %s", sensor.ErrSensorNotFound, functionalityID, deviceID)
	}
	return s.values.Last(ctx, sensors[0].ID())
}
