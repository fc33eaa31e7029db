package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/apperr"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session token payload.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens. It keeps no state
// besides its key, so expiry is the only way a token stops being valid.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed token carrying userID that expires after the
// configured TTL.
func (s *TokenService) Issue(userID string) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded user id.
func (s *TokenService) Verify(raw string) (string, error) {
	if raw == "" {
		return "", apperr.Authentication("missing token", nil)
	}
	token, err := jwt.ParseWithClaims(raw, &Claims{}, s.Keyfunc,
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", apperr.Authentication("invalid or expired token", err)
	}
	return UserIDFromToken(token)
}

// Keyfunc resolves the signing key and rejects any algorithm but HMAC.
func (s *TokenService) Keyfunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
	}
	return s.secret, nil
}

// UserIDFromToken extracts the user id from an already verified token.
func UserIDFromToken(token *jwt.Token) (string, error) {
	if token == nil || !token.Valid {
		return "", apperr.Authentication("invalid token", nil)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return "", apperr.Authentication("token has no user id", nil)
	}
	if claims.ExpiresAt == nil {
		return "", apperr.Authentication("token has no expiry", nil)
	}
	return claims.UserID, nil
}
