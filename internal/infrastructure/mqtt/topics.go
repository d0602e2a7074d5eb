package mqtt

import (
	"strings"
)

// DefaultTopicPrefix is used when the configuration leaves the prefix empty.
const DefaultTopicPrefix = "smarthome"

// Topics builds the smart home topic tree under a prefix:
//
//	{prefix}/sensor/{sensorID}/reading     readings pushed by devices
//	{prefix}/actuator/{actuatorID}/target  accepted actuator targets (retained)
//	{prefix}/system/status                 online/offline status and LWT
type Topics struct {
	prefix string
}

// NewTopics returns topic builders rooted at prefix.
func NewTopics(prefix string) Topics {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return Topics{prefix: prefix}
}

// Prefix returns the root of the topic tree.
func (t Topics) Prefix() string {
	if t.prefix == "" {
		return DefaultTopicPrefix
	}
	return t.prefix
}

// SensorReading returns the topic a sensor publishes readings on.
//
// Example: smarthome/sensor/temp-kitchen/reading
func (t Topics) SensorReading(sensorID string) string {
	return t.Prefix() + "/sensor/" + sensorID + "/reading"
}

// AllSensorReadings returns the wildcard subscription for every sensor.
//
// Example: smarthome/sensor/+/reading
func (t Topics) AllSensorReadings() string {
	return t.SensorReading("+")
}

// ActuatorTarget returns the topic accepted targets are published on.
//
// Example: smarthome/actuator/blind-lounge/target
func (t Topics) ActuatorTarget(actuatorID string) string {
	return t.Prefix() + "/actuator/" + actuatorID + "/target"
}

// SystemStatus returns the system status topic.
//
// Example: smarthome/system/status
func (t Topics) SystemStatus() string {
	return t.Prefix() + "/system/status"
}

// ParseSensorReading extracts the sensor id from a reading topic.
func (t Topics) ParseSensorReading(topic string) (string, bool) {
	rest, ok := strings.CutPrefix(topic, t.Prefix()+"/sensor/")
	if !ok {
		return "", false
	}
	id, ok := strings.CutSuffix(rest, "/reading")
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}
