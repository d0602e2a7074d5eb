// Package sensor holds the Sensor aggregate: a measuring element attached
// to a device and tagged with the functionality it measures.
package sensor
