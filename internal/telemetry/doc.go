// Package telemetry connects the services to the outside world: the MQTT
// bridge ingests sensor readings and publishes accepted actuator targets,
// and the InfluxDB sink exports both to a time-series bucket.
package telemetry
