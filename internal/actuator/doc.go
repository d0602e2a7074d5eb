// Package actuator implements the actuator command engine.
//
// An actuator is a settable quantity on a device. Four variants exist,
// each with its own legality check and quantisation policy:
//
//   - Switch: ON or OFF, commanded with 1 or 0; starts ON
//   - IntegerSetter: any integer inside its configured RangeInt
//   - DecimalSetter: any number inside its RangeDecimal, stored rounded
//     half-up to the configured precision
//   - BlindSetter: a position percentage in the fixed range [0, 100]
//
// A rejected command returns false and leaves the previous target in
// place. Construction problems surface as errors from the New functions;
// the Create functions collapse them to nil.
//
// Command dispatches a numeric target to whichever variant it is given,
// which is what the REST API and MQTT bridge use.
package actuator
