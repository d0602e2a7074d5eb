// Package influxdb exports sensor readings and actuator targets to an
// InfluxDB v2 bucket.
//
// Readings are written to the "sensor_reading" measurement tagged by
// sensor, device, functionality, kind and unit. Period readings carry a
// duration_seconds field; located instants carry latitude and longitude.
// SQLite stays the system of record; InfluxDB is a write-only export.
package influxdb
