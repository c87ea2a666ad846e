package auth

import (
	"errors"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrUnauthorized is the single error surfaced for every credential problem.
// The reason a token was rejected is logged but never reported to the caller.
var ErrUnauthorized = errors.New("unauthorized")

// Claims are the fields baked into issued tokens. iat and exp are unix
// seconds per the JWT NumericDate convention.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Verifier checks bearer tokens against a shared HS256 secret and extracts
// the caller identity from the subject claim. It holds no state beyond the
// secret so it is safe for concurrent use.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify returns the caller identity for a valid token. Any failure,
// whether a garbled token, a bad signature, an expired timestamp or a
// subject that isn't a uuid, comes back as ErrUnauthorized.
func (v *Verifier) Verify(token string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			slog.Warn("Rejected malformed token")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			slog.Warn("Rejected token with invalid signature")
		case errors.Is(err, jwt.ErrTokenExpired):
			slog.Warn("Rejected expired token")
		default:
			slog.With(slog.Any("error", err)).Warn("Token verification failed")
		}
		return uuid.Nil, ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.IssuedAt == nil {
		slog.Warn("Rejected token with missing issued-at claim")
		return uuid.Nil, ErrUnauthorized
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		slog.Warn("Rejected token with non-uuid subject")
		return uuid.Nil, ErrUnauthorized
	}

	return id, nil
}
