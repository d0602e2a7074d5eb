package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nerrad567/smarthome-core/internal/sensor"
	"github.com/nerrad567/smarthome-core/internal/value"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// Catalogue entries used by the peak power calculation.
const (
	PowerAverageFunctionality      = "PowerAverage"
	SpecificTimePowerFunctionality = "SpecificTimePowerConsumption"
)

// PeakPowerConsumption returns the highest total consumption in [from, to].
//
// Each PowerAverage period of the grid meter is one sample. Its total adds
// every SpecificTimePowerConsumption instant whose timestamp lies within
// the cadence window ending at the period end. Instants of one device that
// share a timestamp count once.
func (s *ValueService) PeakPowerConsumption(ctx context.Context, from, to time.Time) (float64, error) {
	if s.energy.GridMeter.IsZero() {
		return 0, fmt.Errorf("%w: grid power meter device", ErrNotConfigured)
	}
	if to.Before(from) {
		return 0, fmt.Errorf("%w: interval ends before it starts", ErrInvalidInput)
	}

	gridFn, _ := vo.NewSensorFunctionalityID(PowerAverageFunctionality)        //nolint:errcheck // constant
	sourceFn, _ := vo.NewSensorFunctionalityID(SpecificTimePowerFunctionality) //nolint:errcheck // constant

	meters, err := s.sensors.ListByDeviceAndFunctionality(ctx, s.energy.GridMeter, gridFn)
	if err != nil {
		return 0, err
	}
	if len(meters) == 0 {
		return 0, fmt.Errorf("%w: no %s sensor on grid meter %s", sensor.ErrSensorNotFound, gridFn, s.energy.GridMeter)
	}
	gridValues, err := s.values.ListBySensorBetween(ctx, meters[0].ID(), from, to)
	if err != nil {
		return 0, err
	}

	sources, err := s.powerSources(ctx, sourceFn, from, to)
	if err != nil {
		return 0, err
	}

	var peak float64
	for _, gv := range gridValues {
		period, ok := gv.(*value.PeriodTime)
		if !ok {
			continue
		}
		total, err := measurement(period)
		if err != nil {
			return 0, err
		}

		windowEnd := period.End()
		windowStart := windowEnd.Add(-s.energy.Cadence)
		for _, byTime := range sources {
			for _, src := range byTime {
				if src.at.Before(windowStart) || src.at.After(windowEnd) {
					continue
				}
				total += src.watts
			}
		}
		if total > peak {
			peak = total
		}
	}
	return peak, nil
}

type powerSample struct {
	at    time.Time
	watts float64
}

// powerSources loads the instant power readings in [from, to] keyed by
// device and timestamp.
func (s *ValueService) powerSources(ctx context.Context, fn vo.SensorFunctionalityID, from, to time.Time) (map[vo.DeviceID]map[int64]powerSample, error) {
	sensors, err := s.sensors.ListByFunctionality(ctx, fn)
	if err != nil {
		return nil, err
	}

	out := make(map[vo.DeviceID]map[int64]powerSample)
	for _, sn := range sensors {
		values, err := s.values.ListBySensorBetween(ctx, sn.ID(), from, to)
		if err != nil {
			return nil, err
		}
		byTime := out[sn.DeviceID()]
		if byTime == nil {
			byTime = make(map[int64]powerSample)
			out[sn.DeviceID()] = byTime
		}
		for _, v := range values {
			instant, ok := v.(*value.InstantTime)
			if !ok {
				continue
			}
			watts, err := measurement(instant)
			if err != nil {
				return nil, err
			}
			byTime[instant.At().UnixNano()] = powerSample{at: instant.At(), watts: watts}
		}
	}
	return out, nil
}

func measurement(v value.Value) (float64, error) {
	raw := strings.TrimSpace(v.Reading().Measurement())
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q in value %s", ErrInvalidMeasurement, raw, v.ID())
	}
	return f, nil
}
