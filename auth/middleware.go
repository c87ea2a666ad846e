package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey int

const identityKey contextKey = iota

// Authenticator is the request-pipeline stage gating every endpoint. It
// verifies the bearer credential, asks the policy whether the identity may
// perform the operation, and stashes the identity on the request context.
type Authenticator struct {
	Verifier *Verifier
	Policy   Policy
}

// Identity returns the verified caller identity placed on the context by
// RequireRead or RequireWrite.
func Identity(r *http.Request) (uuid.UUID, bool) {
	id, ok := r.Context().Value(identityKey).(uuid.UUID)
	return id, ok
}

func (a *Authenticator) RequireRead(next http.HandlerFunc) http.HandlerFunc {
	return a.require(Policy.CanRead, next)
}

func (a *Authenticator) RequireWrite(next http.HandlerFunc) http.HandlerFunc {
	return a.require(Policy.CanWrite, next)
}

// Authentication and authorization failures are deliberately the same 401
// so callers can't probe which identities exist.
func (a *Authenticator) require(allowed func(Policy, uuid.UUID) bool, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := a.Verifier.Verify(bearerToken(r.Header.Get("Authorization")))
		if err != nil || !allowed(a.Policy, id) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, id)
		next(w, r.WithContext(ctx))
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
