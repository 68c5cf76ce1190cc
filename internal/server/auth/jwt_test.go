package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/odyssey/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken("alice", secret, t0)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := GetSubjectFromToken(tok, secret, t0.Add(time.Hour))
	if err != nil {
		t.Fatalf("GetSubjectFromToken error: %v", err)
	}
	if got != "alice" {
		t.Fatalf("subject mismatch: got %q want %q", got, "alice")
	}
}

func TestGetSubjectFromToken_ValidityWindow(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken("bob", secret, t0)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{name: "at issue time", now: t0},
		{name: "just before expiry", now: t0.Add(SessionTTL - time.Second)},
		{name: "at expiry", now: t0.Add(SessionTTL)},
		{name: "after expiry", now: t0.Add(SessionTTL + time.Second), wantErr: common.ErrTokenExpired},
		{name: "before issue time", now: t0.Add(-time.Minute), wantErr: common.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GetSubjectFromToken(tok, secret, tt.now)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGetSubjectFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", []byte("right-secret"), t0)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetSubjectFromToken(tok, []byte("wrong-secret"), t0)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for invalid signature, got %v", err)
	}
}

func TestGetSubjectFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := GetSubjectFromToken("not.a.jwt", []byte("k"), t0)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestGetSubjectFromToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "mallory",
			IssuedAt:  jwt.NewNumericDate(t0),
			ExpiresAt: jwt.NewNumericDate(t0.Add(time.Hour)),
		},
	}).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := GetSubjectFromToken(tok, secret, t0); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for HS512, got %v", err)
	}
}

func TestGetSubjectFromToken_RequiresClaims(t *testing.T) {
	t.Parallel()

	secret := []byte("k")

	tests := []struct {
		name   string
		claims jwt.RegisteredClaims
	}{
		{name: "no exp", claims: jwt.RegisteredClaims{Subject: "x", IssuedAt: jwt.NewNumericDate(t0)}},
		{name: "no iat", claims: jwt.RegisteredClaims{Subject: "x", ExpiresAt: jwt.NewNumericDate(t0.Add(time.Hour))}},
		{name: "no sub", claims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(t0), ExpiresAt: jwt.NewNumericDate(t0.Add(time.Hour))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RegisteredClaims: tt.claims}).SignedString(secret)
			if err != nil {
				t.Fatalf("sign: %v", err)
			}
			if _, err := GetSubjectFromToken(tok, secret, t0); !errors.Is(err, common.ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
