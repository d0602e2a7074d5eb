// Package value models sensor observations.
//
// A Value is an immutable reading taken by a sensor. Three shapes exist:
// InstantTime (one timestamp), PeriodTime (a start and an end) and
// InstantTimeLocation (one timestamp plus the GPS code of the place it
// refers to). Values are compared by id only.
package value
