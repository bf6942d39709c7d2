// Package session derives the console's view of "who is logged in" from a
// bearer token. The token payload is decoded without verifying the
// signature: the member API is the trust boundary and rejects tampered or
// expired tokens on its own; the client-side check only exists to drop
// stale sessions before they hit the network.
package session

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the derived authentication state. Role is non-empty exactly
// when Authenticated is true.
type Session struct {
	Authenticated bool
	Role          string
	MemberID      string
	Email         string
	Token         string
	ExpiresAt     time.Time
}

// TokenStore persists one bearer token per console session.
type TokenStore interface {
	Set(ctx context.Context, sessionID, token string, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (string, error)
	Clear(ctx context.Context, sessionID string) error
}

// Derive decodes the token and computes the session as of now. Any defect —
// malformed token, missing or past expiry, absent or empty roles claim —
// yields the zero (unauthenticated) session rather than an error: a token
// without a usable role is treated the same as no token at all.
func Derive(token string, now time.Time) Session {
	if token == "" {
		return Session{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Session{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return Session{}
	}
	if !exp.Time.After(now) {
		return Session{}
	}

	roles := rolesClaim(claims["roles"])
	if len(roles) == 0 {
		return Session{}
	}

	memberID, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)

	return Session{
		Authenticated: true,
		Role:          strings.ToLower(roles[0]),
		MemberID:      memberID,
		Email:         email,
		Token:         token,
		ExpiresAt:     exp.Time,
	}
}

// rolesClaim converts the decoded roles claim into a string slice. JSON
// arrays decode as []interface{}; anything else yields nil.
func rolesClaim(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		s, ok := r.(string)
		if !ok || s == "" {
			return nil
		}
		roles = append(roles, s)
	}
	return roles
}
