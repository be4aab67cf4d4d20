package service

import (
	"testing"
	"time"
)

func newTestAuth(t *testing.T, ttl time.Duration) *AuthorAuthService {
	t.Helper()
	svc, err := NewAuthorAuthService("", "1104", "test-secret", ttl)
	if err != nil {
		t.Fatalf("NewAuthorAuthService() error = %v", err)
	}
	return svc
}

func TestAuthorAuth(t *testing.T) {
	svc := newTestAuth(t, time.Hour)

	t.Run("correct passcode yields a valid token", func(t *testing.T) {
		token, err := svc.Login("1104")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if token == "" {
			t.Fatal("Login() returned an empty token")
		}
		if err := svc.ValidateToken(token); err != nil {
			t.Errorf("ValidateToken() error = %v", err)
		}
	})

	t.Run("wrong passcode is rejected", func(t *testing.T) {
		if _, err := svc.Login("0000"); err != ErrInvalidPasscode {
			t.Errorf("Login(wrong) error = %v, want ErrInvalidPasscode", err)
		}
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		if err := svc.ValidateToken("not-a-token"); err != ErrInvalidToken {
			t.Errorf("ValidateToken(garbage) error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other, err := NewAuthorAuthService("", "1104", "other-secret", time.Hour)
		if err != nil {
			t.Fatalf("NewAuthorAuthService() error = %v", err)
		}
		token, err := other.Login("1104")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if err := svc.ValidateToken(token); err != ErrInvalidToken {
			t.Errorf("ValidateToken(foreign) error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expired := newTestAuth(t, time.Hour)
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

		token, err := expired.Login("1104")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if err := svc.ValidateToken(token); err != ErrInvalidToken {
			t.Errorf("ValidateToken(expired) error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("missing JWT secret is a setup error", func(t *testing.T) {
		if _, err := NewAuthorAuthService("", "1104", "", time.Hour); err == nil {
			t.Error("NewAuthorAuthService() should require a JWT secret")
		}
	})
}
