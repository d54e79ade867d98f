package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims is the identity resolved from an access token: the username and
// the role set it was issued with.
type Claims struct {
	Username string
	Roles    []string
}

// TokenService is responsible for creating and validating JWTs. Access
// tokens are short-lived and carry the full identity; refresh tokens are
// longer-lived, carry only the username, and are signed with a separate
// secret.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService creates a TokenService. Both secrets are required.
func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessSecret == "" || refreshSecret == "" {
		panic("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set")
	}
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// GenerateAccessToken issues a short-lived bearer credential carrying the
// username and role set.
func (s *TokenService) GenerateAccessToken(username string, roles []string) (string, error) {
	claims := jwt.MapClaims{
		"UserInfo": map[string]interface{}{
			"username": username,
			"roles":    roles,
		},
		"exp": time.Now().Add(s.accessTTL).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.accessSecret)
}

// GenerateRefreshToken issues a renewal credential carrying only the
// username. ttl overrides the default when positive (registration hands
// out a longer one than login).
func (s *TokenService) GenerateRefreshToken(username string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.refreshTTL
	}
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.refreshSecret)
}

// ValidateAccessToken resolves a bearer token into claims, or an error for
// anything expired, malformed, or signed with the wrong key.
func (s *TokenService) ValidateAccessToken(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return s.accessSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	info, ok := mapClaims["UserInfo"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	username, ok := info["username"].(string)
	if !ok || username == "" {
		return nil, fmt.Errorf("invalid token claims")
	}

	var roles []string
	if rawRoles, ok := info["roles"].([]interface{}); ok {
		for _, r := range rawRoles {
			if role, ok := r.(string); ok {
				roles = append(roles, role)
			}
		}
	}

	return &Claims{Username: username, Roles: roles}, nil
}

// ValidateRefreshToken resolves a refresh token into the username it was
// issued for.
func (s *TokenService) ValidateRefreshToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return s.refreshSecret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid or expired refresh token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	username, ok := mapClaims["username"].(string)
	if !ok || username == "" {
		return "", fmt.Errorf("invalid token claims")
	}
	return username, nil
}
