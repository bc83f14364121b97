package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSignAndVerifyJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ENV", "dev")

	token, err := SignJWT(Claims{
		Email:            "ada@example.com",
		Name:             "Ada",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	claims, err := VerifyJWT(token)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if claims.Subject != "user-1" || claims.Email != "ada@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
		t.Fatalf("expected a future expiry, got %v", claims.ExpiresAt)
	}
}

func TestVerifyJWTRejectsTamperedAndExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := SignJWT(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	if _, err := VerifyJWT(token + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}

	expired, err := SignJWT(Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	if _, err := VerifyJWT(expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}

	t.Setenv("JWT_SECRET", "other-secret")
	if _, err := VerifyJWT(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestSecretRequiredOutsideDev(t *testing.T) {
	for _, env := range []string{"production", "prod", "staging", "qa", "test"} {
		t.Run(env, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			t.Setenv("ENV", env)
			if _, err := SignJWT(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u"}}); !errors.Is(err, errMissingSecret) {
				t.Fatalf("expected missing secret error, got %v", err)
			}
		})
	}
}

func TestDevSecretNotAcceptedInStaging(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ENV", "dev")
	forged, err := SignJWT(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "victim-id"}})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	t.Setenv("ENV", "staging")
	if _, err := VerifyJWT(forged); !errors.Is(err, errMissingSecret) {
		t.Fatalf("expected staging to refuse the dev secret, got %v", err)
	}
}

func TestDevSecretFallback(t *testing.T) {
	for _, env := range []string{"", "dev", "local"} {
		t.Run("env="+env, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			t.Setenv("ENV", env)
			token, err := SignJWT(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u"}})
			if err != nil {
				t.Fatalf("SignJWT: %v", err)
			}
			if _, err := VerifyJWT(token); err != nil {
				t.Fatalf("VerifyJWT: %v", err)
			}
		})
	}
}
