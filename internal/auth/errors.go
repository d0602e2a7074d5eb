package auth

import "errors"

var (
	// ErrInvalidCredentials means the username or password did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenInvalid means the token failed signature or claim validation.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenExpired means the token was well formed but has expired.
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidHash means a stored password hash is not an Argon2id PHC string.
	ErrInvalidHash = errors.New("invalid password hash")

	// ErrNotConfigured means no operator password hash has been set.
	ErrNotConfigured = errors.New("operator account not configured")
)
