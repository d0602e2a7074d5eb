// Package metrics holds the Prometheus collectors of the smart home core.
//
// Collectors register once with the default registry on Init; the helper
// functions are no-ops before that, so packages can record unconditionally.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "smarthome_"

// Result labels.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultError    = "error"
	ResultSuccess  = "success"
)

// Ingest sources.
const (
	SourceAPI  = "api"
	SourceMQTT = "mqtt"
)

var (
	registerOnce sync.Once

	actuatorCommands *prometheus.CounterVec
	valuesRecorded   *prometheus.CounterVec
	recordLatency    *prometheus.HistogramVec
	mqttMessages     *prometheus.CounterVec
	wsClients        prometheus.Gauge
	devicesActive    prometheus.Gauge
)

// Init creates and registers the collectors. Later calls are no-ops.
func Init() {
	registerOnce.Do(func() {
		actuatorCommands = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "actuator_commands_total",
				Help: "Actuator target commands by actuator kind and result",
			},
			[]string{"kind", "result"},
		)
		valuesRecorded = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "values_recorded_total",
				Help: "Sensor values recorded by source and result",
			},
			[]string{"source", "result"},
		)
		recordLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "value_record_latency_seconds",
				Help:    "Sensor value record latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		)
		mqttMessages = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "mqtt_messages_total",
				Help: "MQTT messages handled by direction and result",
			},
			[]string{"direction", "result"},
		)
		wsClients = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "websocket_clients",
				Help: "Connected WebSocket clients",
			},
		)
		devicesActive = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "devices_active",
				Help: "Devices in the active state",
			},
		)

		prometheus.MustRegister(
			actuatorCommands,
			valuesRecorded,
			recordLatency,
			mqttMessages,
			wsClients,
			devicesActive,
		)
	})
}

// IncActuatorCommand counts one target command.
func IncActuatorCommand(kind, result string) {
	if kind == "" {
		kind = "unknown"
	}
	if actuatorCommands != nil {
		actuatorCommands.WithLabelValues(kind, result).Inc()
	}
}

// ObserveValueRecord counts a record attempt and its latency.
func ObserveValueRecord(source, result string, duration time.Duration) {
	if source == "" {
		source = SourceAPI
	}
	if result == "" {
		result = ResultSuccess
	}
	if valuesRecorded != nil {
		valuesRecorded.WithLabelValues(source, result).Inc()
	}
	if recordLatency != nil {
		recordLatency.WithLabelValues(source).Observe(duration.Seconds())
	}
}

// IncMQTTMessage counts an inbound or outbound MQTT message.
func IncMQTTMessage(direction, result string) {
	if mqttMessages != nil {
		mqttMessages.WithLabelValues(direction, result).Inc()
	}
}

// SetWebSocketClients sets the connected client gauge.
func SetWebSocketClients(n int) {
	if wsClients != nil {
		wsClients.Set(float64(n))
	}
}

// SetDevicesActive sets the active device gauge.
func SetDevicesActive(n int) {
	if devicesActive != nil {
		devicesActive.Set(float64(n))
	}
}
