package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"medlink/config"
	"medlink/models"

	"github.com/golang-jwt/jwt"
)

var (
	secretMu  sync.RWMutex
	secretKey []byte
)

// SetJWTSecret overrides the signing secret taken from configuration.
func SetJWTSecret(secret string) {
	secretMu.Lock()
	defer secretMu.Unlock()
	secretKey = []byte(secret)
}

func getSecret() ([]byte, error) {
	secretMu.RLock()
	key := secretKey
	secretMu.RUnlock()
	if len(key) == 0 {
		key = []byte(config.AppConfig.JWTSecret)
	}
	if len(key) == 0 {
		return nil, errors.New("JWT secret is not configured")
	}
	return key, nil
}

// TokenClaims is the identity carried by every bearer token.
type TokenClaims struct {
	Subject string
	Email   string
	Role    models.Role
}

// GenerateToken creates a signed JWT for an account of the given role.
func GenerateToken(subject, email string, role models.Role, duration time.Duration) (string, error) {
	key, err := getSecret()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"role":  string(role),
		"iat":   now.Unix(),
		"exp":   now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// TokenTTL is the configured lifetime of issued tokens.
func TokenTTL() time.Duration {
	if config.AppConfig.TokenTTLHours <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(config.AppConfig.TokenTTLHours) * time.Hour
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	key, err := getSecret()
	if err != nil {
		return nil, err
	}
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
}

// ParseClaims validates the token and extracts its subject, email and role.
func ParseClaims(tokenString string) (*TokenClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	role := models.Role(stringClaim(claims, "role"))
	if !role.Valid() {
		return nil, errors.New("token does not contain a valid 'role' claim")
	}

	return &TokenClaims{Subject: sub, Email: stringClaim(claims, "email"), Role: role}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}
