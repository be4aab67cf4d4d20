package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidPasscode is reported when the author passcode does not match
var ErrInvalidPasscode = errors.New("invalid passcode")

// ErrInvalidToken is reported when an author token is missing, malformed or expired
var ErrInvalidToken = errors.New("invalid or expired token")

// AuthorAuthService gates the authoring surface behind a passcode. A correct
// passcode is exchanged for a short-lived signed token.
type AuthorAuthService struct {
	passcodeHash []byte
	jwtSecret    []byte
	tokenTTL     time.Duration
	now          func() time.Time
}

// NewAuthorAuthService creates the auth service from a bcrypt passcode hash.
// When no hash is configured the given plaintext passcode is hashed at
// startup instead.
func NewAuthorAuthService(passcodeHash, passcode, jwtSecret string, tokenTTL time.Duration) (*AuthorAuthService, error) {
	hash := []byte(passcodeHash)
	if len(hash) == 0 {
		generated, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash author passcode: %w", err)
		}
		hash = generated
	}
	if jwtSecret == "" {
		return nil, errors.New("a JWT secret is required")
	}
	return &AuthorAuthService{
		passcodeHash: hash,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     tokenTTL,
		now:          time.Now,
	}, nil
}

// Login verifies the passcode and mints an author token
func (s *AuthorAuthService) Login(passcode string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.passcodeHash, []byte(passcode)); err != nil {
		return "", ErrInvalidPasscode
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   "author",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks an author token's signature and expiry
func (s *AuthorAuthService) ValidateToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != "author" {
		return ErrInvalidToken
	}
	return nil
}
