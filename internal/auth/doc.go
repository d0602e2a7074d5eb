// Package auth authenticates API callers.
//
// A deployment has a single operator account whose password is stored as
// an Argon2id PHC string in the configuration. A successful login yields a
// short-lived HS256 JWT that the API verifies by signature alone.
package auth
