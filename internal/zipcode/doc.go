// Package zipcode validates postal codes per country.
//
// Each supported country is a Validator variant. A Registry maps country
// names to validators; which countries are enabled is decided by the
// caller (normally from the zipcode section of the configuration).
//
//	reg := zipcode.Default()
//	v, ok := reg.ValidatorFor("Portugal")
//	if ok && v.ValidateZipCode("4000-000") { ... }
//
// Validators are pure functions with no state and are safe for concurrent use.
package zipcode
