package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long an issued session token stays valid.
const DefaultTTL = 5 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims are the caller-supplied fields embedded in a session token,
// together with the registered iat/exp entries.
type Claims map[string]any

// Email returns the "email" claim, or "" when absent or not a string.
func (c Claims) Email() string {
	email, _ := c["email"].(string)
	return email
}

// TokenManager signs and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is the validity window of tokens issued by m.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Generate signs claims into a token expiring after the manager's TTL.
// Caller-supplied iat/exp values are overwritten.
func (m *TokenManager) Generate(claims Claims) (string, error) {
	now := m.now()
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	mc["iat"] = jwt.NewNumericDate(now)
	mc["exp"] = jwt.NewNumericDate(now.Add(m.ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	str, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return str, nil
}

// Validate verifies signature and expiry and returns the embedded claims.
func (m *TokenManager) Validate(tokenString string) (Claims, error) {
	mc := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, mc, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return Claims(mc), nil
}
