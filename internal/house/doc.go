// Package house holds the House aggregate, the root of the smart home
// topology. A deployment manages exactly one house; rooms point back to it
// by HouseID.
package house
