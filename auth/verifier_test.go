package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret-signing-key"

func signToken(t *testing.T, secret, sub string, iat, exp time.Time) string {
	t.Helper()
	claims := Claims{
		Username: "devin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestVerifier_Verify(t *testing.T) {
	v := NewVerifier(testSecret)
	subject := uuid.New()

	token := signToken(t, testSecret, subject.String(), time.Now(), time.Now().Add(time.Hour))

	id, err := v.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, subject, id)
}

func TestVerifier_Verify_Expired(t *testing.T) {
	v := NewVerifier(testSecret)

	token := signToken(t, testSecret, uuid.NewString(), time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))

	id, err := v.Verify(token)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, uuid.Nil, id)
}

func TestVerifier_Verify_WrongSecret(t *testing.T) {
	v := NewVerifier(testSecret)

	token := signToken(t, "a-different-secret", uuid.NewString(), time.Now(), time.Now().Add(time.Hour))

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifier_Verify_Malformed(t *testing.T) {
	v := NewVerifier(testSecret)

	for _, token := range []string{"", "nonsense", "a.b.c"} {
		_, err := v.Verify(token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	}
}

func TestVerifier_Verify_NonUUIDSubject(t *testing.T) {
	v := NewVerifier(testSecret)

	token := signToken(t, testSecret, "not-a-uuid", time.Now(), time.Now().Add(time.Hour))

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifier_Verify_MissingExpiry(t *testing.T) {
	v := NewVerifier(testSecret)

	claims := Claims{
		Username: "devin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = v.Verify(token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifier_Verify_RejectsUnexpectedAlgorithm(t *testing.T) {
	v := NewVerifier(testSecret)

	claims := Claims{
		Username: "devin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = v.Verify(token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
