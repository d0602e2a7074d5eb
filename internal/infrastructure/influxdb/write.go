package influxdb

import (
	"strconv"
	"strings"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// readingMeasurement is the InfluxDB measurement sensor readings land in.
const readingMeasurement = "sensor_reading"

// Reading is one recorded sensor value in export form.
//
// Numeric measurements land in the "value" field, anything else (such as
// "06:58" or "12;N") in "raw". Instants leave Start zero. Location fields
// are written only when HasLocation is set.
type Reading struct {
	SensorID        string
	DeviceID        string
	FunctionalityID string
	Kind            string
	Unit            string
	Measurement     string
	Start           time.Time
	At              time.Time
	Latitude        float64
	Longitude       float64
	HasLocation     bool
}

// newReadingPoint maps a Reading to a line-protocol point stamped at r.At.
func newReadingPoint(r Reading) *write.Point {
	tags := map[string]string{
		"sensor_id": r.SensorID,
		"kind":      r.Kind,
	}
	if r.DeviceID != "" {
		tags["device_id"] = r.DeviceID
	}
	if r.FunctionalityID != "" {
		tags["functionality"] = r.FunctionalityID
	}
	if r.Unit != "" {
		tags["unit"] = r.Unit
	}

	fields := map[string]interface{}{}
	if f, err := strconv.ParseFloat(strings.TrimSpace(r.Measurement), 64); err == nil {
		fields["value"] = f
	} else {
		fields["raw"] = r.Measurement
	}
	if !r.Start.IsZero() {
		fields["duration_seconds"] = r.At.Sub(r.Start).Seconds()
	}
	if r.HasLocation {
		fields["latitude"] = r.Latitude
		fields["longitude"] = r.Longitude
	}

	return write.NewPoint(readingMeasurement, tags, fields, r.At)
}

// WriteReading queues a sensor reading. Writes are batched and
// non-blocking; failures surface through SetOnError.
func (c *Client) WriteReading(r Reading) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(newReadingPoint(r))
}

// WriteActuatorTarget queues an accepted actuator target.
func (c *Client) WriteActuatorTarget(actuatorID, deviceID, kind string, target float64, at time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"actuator_target",
		map[string]string{
			"actuator_id": actuatorID,
			"device_id":   deviceID,
			"kind":        kind,
		},
		map[string]interface{}{
			"target": target,
		},
		at,
	)
	c.writeAPI.WritePoint(point)
}
