package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/useraccounts/user-service/internal/core/domain"
)

// DefaultTokenLifetime applies when neither the caller nor the configuration
// set a lifetime.
const DefaultTokenLifetime = 15 * time.Minute

var (
	errEmptySecret       = errors.New("token codec: signing secret is empty")
	errUnsupportedMethod = errors.New("token codec: unsupported signing algorithm")
)

// JWTCodec signs claims with a process-wide HMAC secret.
type JWTCodec struct {
	secret   []byte
	method   jwt.SigningMethod
	lifetime time.Duration
	now      func() time.Time
}

// NewJWTCodec validates algorithm and returns a codec. Only the HMAC family
// (HS256, HS384, HS512) is accepted since the key is a shared secret.
func NewJWTCodec(secret, algorithm string, lifetime time.Duration) (*JWTCodec, error) {
	if secret == "" {
		return nil, errEmptySecret
	}
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("%w: %q", errUnsupportedMethod, algorithm)
	}
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	return &JWTCodec{
		secret:   []byte(secret),
		method:   method,
		lifetime: lifetime,
		now:      time.Now,
	}, nil
}

// WithClock returns a copy of the codec reading the current time from now.
func (c *JWTCodec) WithClock(now func() time.Time) *JWTCodec {
	clone := *c
	clone.now = now
	return &clone
}

func (c *JWTCodec) Encode(subject string, lifetime time.Duration) (string, error) {
	if lifetime <= 0 {
		lifetime = c.lifetime
	}
	issued := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(issued.Add(lifetime)),
	}

	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (c *JWTCodec) Decode(token string) (*domain.Claims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}

	return &domain.Claims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
