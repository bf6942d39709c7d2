package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("server-side-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestDerive_ValidToken(t *testing.T) {
	now := time.Now()
	token := signToken(t, jwt.MapClaims{
		"sub":   "651fe0b31c2a8f0001a3b001",
		"email": "a@b.com",
		"roles": []string{"ADMIN"},
		"exp":   now.Add(time.Hour).Unix(),
	})

	sess := Derive(token, now)
	if !sess.Authenticated {
		t.Fatalf("expected authenticated session")
	}
	if sess.Role != "admin" {
		t.Fatalf("expected lower-cased first role, got %q", sess.Role)
	}
	if sess.MemberID != "651fe0b31c2a8f0001a3b001" || sess.Email != "a@b.com" {
		t.Fatalf("claims not extracted: %+v", sess)
	}
	if sess.Token != token {
		t.Fatalf("token not carried")
	}
	if got, want := sess.ExpiresAt.Unix(), now.Add(time.Hour).Unix(); got != want {
		t.Fatalf("expiry mismatch: got %d, want %d", got, want)
	}
}

func TestDerive_FirstRoleWins(t *testing.T) {
	now := time.Now()
	token := signToken(t, jwt.MapClaims{
		"sub":   "m1",
		"roles": []string{"USER", "ADMIN"},
		"exp":   now.Add(time.Hour).Unix(),
	})

	if sess := Derive(token, now); sess.Role != "user" {
		t.Fatalf("expected first role, got %q", sess.Role)
	}
}

func TestDerive_ExpiredToken(t *testing.T) {
	now := time.Now()
	token := signToken(t, jwt.MapClaims{
		"sub":   "m1",
		"roles": []string{"ADMIN"},
		"exp":   now.Add(-time.Minute).Unix(),
	})

	sess := Derive(token, now)
	if sess.Authenticated {
		t.Fatalf("expected unauthenticated session for expired token")
	}
	if sess.Role != "" {
		t.Fatalf("role must be empty when unauthenticated, got %q", sess.Role)
	}
}

func TestDerive_ExpiryBoundary(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	token := signToken(t, jwt.MapClaims{
		"sub":   "m1",
		"roles": []string{"USER"},
		"exp":   now.Unix(),
	})

	// exp == now counts as expired.
	if sess := Derive(token, now); sess.Authenticated {
		t.Fatalf("expected token expiring exactly now to be stale")
	}
}

func TestDerive_MissingRoles(t *testing.T) {
	now := time.Now()
	for name, claims := range map[string]jwt.MapClaims{
		"absent": {"sub": "m1", "exp": now.Add(time.Hour).Unix()},
		"empty":  {"sub": "m1", "roles": []string{}, "exp": now.Add(time.Hour).Unix()},
		"mixed":  {"sub": "m1", "roles": []interface{}{1, 2}, "exp": now.Add(time.Hour).Unix()},
	} {
		token := signToken(t, claims)
		if sess := Derive(token, now); sess.Authenticated {
			t.Fatalf("%s roles claim: expected unauthenticated session", name)
		}
	}
}

func TestDerive_MissingExpiry(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": "m1", "roles": []string{"USER"}})
	if sess := Derive(token, time.Now()); sess.Authenticated {
		t.Fatalf("expected unauthenticated session without exp claim")
	}
}

func TestDerive_MalformedToken(t *testing.T) {
	for _, token := range []string{"", "not-a-token", "a.b", "a.!!!.c"} {
		if sess := Derive(token, time.Now()); sess.Authenticated {
			t.Fatalf("malformed token %q: expected unauthenticated session", token)
		}
	}
}

// The console never verifies signatures — a tampered signature still
// derives. The member API is the authority that rejects such tokens.
func TestDerive_IgnoresSignature(t *testing.T) {
	now := time.Now()
	token := signToken(t, jwt.MapClaims{
		"sub":   "m1",
		"roles": []string{"USER"},
		"exp":   now.Add(time.Hour).Unix(),
	})
	tampered := token[:len(token)-2] + "xx"

	if sess := Derive(tampered, now); !sess.Authenticated {
		t.Fatalf("expected derivation to ignore the signature")
	}
}
