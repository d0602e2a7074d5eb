package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/nerrad567/smarthome-core/internal/actuator"
	"github.com/nerrad567/smarthome-core/internal/infrastructure/mqtt"
	"github.com/nerrad567/smarthome-core/internal/service"
	"github.com/nerrad567/smarthome-core/internal/telemetry/metrics"
	"github.com/nerrad567/smarthome-core/internal/value"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

const handlerTimeout = 5 * time.Second

// Client is the part of *mqtt.Client the bridge uses.
type Client interface {
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	PublishRetained(topic string, payload []byte) error
}

// Recorder stores an ingested reading; *service.ValueService implements it.
type Recorder interface {
	Record(ctx context.Context, sensorID vo.SensorID, in service.ReadingInput) (value.Value, error)
}

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

// Bridge moves readings from MQTT into the value service and accepted
// actuator targets back out.
type Bridge struct {
	client   Client
	topics   mqtt.Topics
	recorder Recorder
	qos      byte
	logger   Logger
}

// NewBridge creates a bridge over client.
func NewBridge(client Client, topics mqtt.Topics, recorder Recorder, qos byte) *Bridge {
	return &Bridge{client: client, topics: topics, recorder: recorder, qos: qos, logger: noopLogger{}}
}

// SetLogger sets the logger for the bridge.
func (b *Bridge) SetLogger(logger Logger) {
	b.logger = logger
}

// Start subscribes to the readings of every sensor.
func (b *Bridge) Start() error {
	if err := b.client.Subscribe(b.topics.AllSensorReadings(), b.qos, b.HandleReading); err != nil {
		return fmt.Errorf("subscribing to sensor readings: %w", err)
	}
	b.logger.Info("mqtt bridge started", "topic", b.topics.AllSensorReadings())
	return nil
}

// readingMessage is the JSON body of a sensor reading. The measurement may
// be a JSON string or number.
type readingMessage struct {
	Measurement measurement `json:"measurement"`
	Unit        string      `json:"unit"`
	Timestamp   *time.Time  `json:"timestamp,omitempty"`
	Start       *time.Time  `json:"start,omitempty"`
	End         *time.Time  `json:"end,omitempty"`
	Latitude    *float64    `json:"latitude,omitempty"`
	Longitude   *float64    `json:"longitude,omitempty"`
}

type measurement string

func (m *measurement) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = measurement(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("measurement must be a string or number: %w", err)
	}
	*m = measurement(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

func (msg readingMessage) input() service.ReadingInput {
	in := service.ReadingInput{
		Measurement: string(msg.Measurement),
		Unit:        msg.Unit,
		Latitude:    msg.Latitude,
		Longitude:   msg.Longitude,
		Source:      metrics.SourceMQTT,
	}
	if msg.Timestamp != nil {
		in.At = msg.Timestamp.UTC()
	}
	if msg.Start != nil {
		in.Start = msg.Start.UTC()
	}
	if msg.End != nil {
		in.End = msg.End.UTC()
		if in.At.IsZero() {
			in.At = in.End
		}
	}
	return in
}

// HandleReading records one message from a sensor reading topic.
func (b *Bridge) HandleReading(topic string, payload []byte) error {
	rawID, ok := b.topics.ParseSensorReading(topic)
	if !ok {
		metrics.IncMQTTMessage("in", metrics.ResultRejected)
		return fmt.Errorf("unexpected topic %q", topic)
	}
	sensorID, err := vo.NewSensorID(rawID)
	if err != nil {
		metrics.IncMQTTMessage("in", metrics.ResultRejected)
		return err
	}

	var msg readingMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		metrics.IncMQTTMessage("in", metrics.ResultRejected)
		return fmt.Errorf("decoding reading for sensor %s: %w", rawID, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	v, err := b.recorder.Record(ctx, sensorID, msg.input())
	if err != nil {
		metrics.IncMQTTMessage("in", metrics.ResultError)
		return fmt.Errorf("recording reading for sensor %s: %w", rawID, err)
	}

	metrics.IncMQTTMessage("in", metrics.ResultSuccess)
	b.logger.Debug("reading ingested", "sensor", rawID, "value", v.ID().String())
	return nil
}

// targetMessage is the retained JSON body of an actuator target.
type targetMessage struct {
	ActuatorID string   `json:"actuator_id"`
	DeviceID   string   `json:"device_id"`
	Kind       string   `json:"kind"`
	Value      *float64 `json:"value"`
}

// PublishTarget publishes the current target of a, retained so late
// subscribers see the latest position.
func (b *Bridge) PublishTarget(_ context.Context, a actuator.Actuator) error {
	msg := targetMessage{
		ActuatorID: a.ID().String(),
		DeviceID:   a.DeviceID().String(),
		Kind:       string(a.Kind()),
	}
	if target, ok := a.Target(); ok {
		msg.Value = &target
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding target of actuator %s: %w", msg.ActuatorID, err)
	}
	if err := b.client.PublishRetained(b.topics.ActuatorTarget(msg.ActuatorID), payload); err != nil {
		metrics.IncMQTTMessage("out", metrics.ResultError)
		return err
	}
	metrics.IncMQTTMessage("out", metrics.ResultSuccess)
	return nil
}
