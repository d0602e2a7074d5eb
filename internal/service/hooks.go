package service

import (
	"context"

	"github.com/nerrad567/smarthome-core/internal/actuator"
	"github.com/nerrad567/smarthome-core/internal/sensor"
	"github.com/nerrad567/smarthome-core/internal/value"
)

// Logger is satisfied by *logging.Logger and *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// TargetPublisher is told about every accepted actuator target after it
// has been persisted.
type TargetPublisher interface {
	PublishTarget(ctx context.Context, a actuator.Actuator) error
}

// ValueSink is told about every recorded sensor value after it has been
// persisted.
type ValueSink interface {
	ValueRecorded(ctx context.Context, s *sensor.Sensor, v value.Value) error
}
