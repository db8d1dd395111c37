package accounts

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// TokenTTL is the fixed lifetime of every issued token. It is not
// configurable per call.
const TokenTTL = 30 * 24 * time.Hour

// TokenIssuer produces and validates signed credential tokens
type TokenIssuer struct {
	signingKey []byte
	logger     Logger
}

// NewTokenIssuer creates a TokenIssuer keyed by the shared secret. An empty
// secret is a configuration fault and fails here, at wiring time, rather
// than on the first issuance.
func NewTokenIssuer(secret string, logger Logger) (*TokenIssuer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	if logger == nil {
		logger = defLogger{}
	}

	return &TokenIssuer{
		// the secret is treated as ASCII key material
		signingKey: []byte(secret),
		logger:     logger,
	}, nil
}

// Issue signs a token whose payload carries the login identifier as its
// single claim, expiring TokenTTL from now.
func (ts *TokenIssuer) Issue(identifier string) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		Email: identifier,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign token")
	}

	return signed, nil
}

// Validate parses and verifies a token string, returning its claims
func (ts *TokenIssuer) Validate(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenIssuer validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	})

	if err != nil {
		if goerrors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, goerrors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenIssuer validate could not decode claims")
	return nil, ErrTokenMalformed
}
