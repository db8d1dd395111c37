package accounts

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the payload carried by issued credential tokens. The login
// email is the sole application claim.
type TokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// Identifier returns the login identifier embedded in the token
func (c *TokenClaims) Identifier() string {
	return c.Email
}

// Expires returns the expiration time
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedTime returns the issued at time
func (c *TokenClaims) IssuedTime() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
