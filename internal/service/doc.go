// Package service holds the use cases of the smart home core.
//
// Services orchestrate the aggregates and their repositories: they enforce
// cross-aggregate rules (a sensor needs an active device, an actuator kind
// comes from the functionality catalogue), persist the result, and fan
// accepted actuator targets and recorded values out to the registered
// hooks (MQTT, WebSocket, InfluxDB).
package service
