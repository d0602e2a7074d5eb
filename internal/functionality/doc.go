// Package functionality holds the sensor and actuator functionality
// catalogue.
//
// A functionality names what a sensor measures or what an actuator
// controls, e.g. "TemperatureCelsius" or "BlindSetter". The catalogue also
// records which value shape a sensor functionality produces and which
// actuator kind serves an actuator functionality, so the services can
// pick the right variant when a sensor reading or actuator arrives.
package functionality
