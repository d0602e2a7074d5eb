package auth

import (
	"crypto/subtle"
	"fmt"
	"time"
)

// Token is an issued access token.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Authenticator checks operator credentials and issues access tokens.
type Authenticator struct {
	username     string
	passwordHash string
	secret       string
	ttl          time.Duration
	now          func() time.Time
}

// NewAuthenticator creates an authenticator for the operator account.
func NewAuthenticator(username, passwordHash, secret string, ttl time.Duration) *Authenticator {
	return &Authenticator{
		username:     username,
		passwordHash: passwordHash,
		secret:       secret,
		ttl:          ttl,
		now:          time.Now,
	}
}

// Login verifies the credentials and returns a fresh access token.
func (a *Authenticator) Login(username, password string) (*Token, error) {
	if a.passwordHash == "" {
		return nil, ErrNotConfigured
	}

	ok, err := VerifyPassword(password, a.passwordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	// Verify the hash before the username check.
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	if !ok || !userOK {
		return nil, ErrInvalidCredentials
	}

	now := a.now()
	signed, err := GenerateAccessToken(a.username, RoleOperator, a.secret, a.ttl, now)
	if err != nil {
		return nil, err
	}
	return &Token{AccessToken: signed, TokenType: "Bearer", ExpiresAt: now.Add(a.ttl).UTC()}, nil
}

// Verify validates an access token.
func (a *Authenticator) Verify(token string) (*Claims, error) {
	return ParseToken(token, a.secret)
}
