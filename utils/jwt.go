package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"washbook/config"

	"github.com/golang-jwt/jwt"
)

const (
	// ResumeTokenTTL is how long a customer has to log in and resume a
	// booking after a signup conflict.
	ResumeTokenTTL = 30 * time.Minute

	purposeAccess = "access"
	purposeResume = "booking_resume"
)

var ErrInvalidToken = errors.New("invalid token")

func secretKey() []byte {
	if config.AppConfig.JWTSecret == "" {
		return []byte("washbook-dev-secret")
	}
	return []byte(config.AppConfig.JWTSecret)
}

// GenerateToken creates a signed access token for a customer.
// The token expires after the specified duration.
func GenerateToken(subject, email string, duration time.Duration) (string, error) {
	return sign(jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"pur":   purposeAccess,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	})
}

// GenerateResumeToken signs a short-lived reference to a booking session.
func GenerateResumeToken(sessionID string) (string, error) {
	return sign(jwt.MapClaims{
		"sub": sessionID,
		"pur": purposeResume,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ResumeTokenTTL).Unix(),
	})
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractIDFromToken returns the customer id of a valid access token.
func ExtractIDFromToken(tokenString string) (string, error) {
	return subjectFor(tokenString, purposeAccess)
}

// ParseResumeToken returns the booking session id of a valid resume token.
func ParseResumeToken(tokenString string) (string, error) {
	return subjectFor(tokenString, purposeResume)
}

func sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

func subjectFor(tokenString, purpose string) (string, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if pur, _ := claims["pur"].(string); pur != purpose {
		return "", ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}
	return sub, nil
}
