package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// IssueAPIToken creates a signed JWT for non-browser API clients. The
// subject is the user ID; validity is bounded by duration.
func IssueAPIToken(secret string, userID int64, duration time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret not configured")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		Issuer:    "boundle",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAPIToken validates a JWT and returns the user ID it was issued for
func ParseAPIToken(secret, tokenString string) (int64, error) {
	if secret == "" {
		return 0, ErrInvalidToken
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	claims := &jwt.RegisteredClaims{}

	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return userID, nil
}
