package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/useraccounts/user-service/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestCodec(t *testing.T) *JWTCodec {
	t.Helper()
	codec, err := NewJWTCodec("secret", "HS256", 0)
	require.NoError(t, err)
	return codec
}

func TestJWTCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Encode("lm9", 0)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "lm9", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenLifetime), claims.ExpiresAt, 2*time.Second)
}

func TestJWTCodec_ExplicitLifetime(t *testing.T) {
	issued := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	codec := newTestCodec(t).WithClock(fixedClock(issued))

	token, err := codec.Encode("lm9", time.Hour)
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.Equal(issued.Add(time.Hour)))
}

func TestJWTCodec_DeterministicForFixedTime(t *testing.T) {
	issued := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	codec := newTestCodec(t).WithClock(fixedClock(issued))

	a, err := codec.Encode("lm9", 0)
	require.NoError(t, err)
	b, err := codec.Encode("lm9", 0)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	later, err := codec.WithClock(fixedClock(issued.Add(time.Minute))).Encode("lm9", 0)
	require.NoError(t, err)
	assert.NotEqual(t, a, later)
}

func TestJWTCodec_Expired(t *testing.T) {
	issued := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	codec := newTestCodec(t).WithClock(fixedClock(issued))

	token, err := codec.Encode("lm9", time.Minute)
	require.NoError(t, err)

	_, err = codec.WithClock(fixedClock(issued.Add(2 * time.Minute))).Decode(token)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTCodec_DecodeRejects(t *testing.T) {
	codec := newTestCodec(t)

	otherSecret, err := NewJWTCodec("other-secret", "HS256", 0)
	require.NoError(t, err)
	foreign, err := otherSecret.Encode("lm9", 0)
	require.NoError(t, err)

	otherAlg, err := NewJWTCodec("secret", "HS512", 0)
	require.NoError(t, err)
	wrongAlg, err := otherAlg.Encode("lm9", 0)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "lm9"}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "lm9",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"malformed", "not-a-token"},
		{"empty", ""},
		{"wrong secret", foreign},
		{"wrong algorithm", wrongAlg},
		{"missing expiry", noExpiry},
		{"alg none", unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := codec.Decode(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}

func TestNewJWTCodec_Validation(t *testing.T) {
	_, err := NewJWTCodec("", "HS256", 0)
	assert.ErrorIs(t, err, errEmptySecret)

	for _, alg := range []string{"RS256", "ES256", "none", "", "HS1"} {
		_, err := NewJWTCodec("secret", alg, 0)
		assert.ErrorIs(t, err, errUnsupportedMethod, alg)
	}

	codec, err := NewJWTCodec("secret", "HS384", 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, codec.lifetime)
}
