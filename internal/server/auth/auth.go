// Package auth issues and validates the backend's bearer tokens and hashes
// account passwords.
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role names carried in tokens.
const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
	RoleClient   = "CLIENT"
)

// Claims is the decoded identity of a validated token.
type Claims struct {
	UserID   int64
	Username string
	Roles    []string
}

// HasRole reports whether the token carries the given role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// JWTManager issues and validates HS256 tokens.
type JWTManager struct {
	secretKey string
	tokenTTL  time.Duration
}

func NewJWTManager(secretKey string) *JWTManager {
	return &JWTManager{
		secretKey: secretKey,
		tokenTTL:  24 * time.Hour,
	}
}

// GenerateToken issues a token for the account.
func (j *JWTManager) GenerateToken(userID int64, username string, roles []string) (string, error) {
	if j.secretKey == "" {
		return "", fmt.Errorf("JWT secret key is empty")
	}

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"roles":    strings.Join(roles, ","),
		"jti":      uuid.New().String(),
		"iat":      now.Unix(),
		"exp":      now.Add(j.tokenTTL).Unix(),
	})

	return token.SignedString([]byte(j.secretKey))
}

// ValidateToken parses and verifies a token and returns its claims.
func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid user_id claim")
	}

	username, ok := claims["username"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid username claim")
	}

	var roles []string
	if rolesStr, ok := claims["roles"].(string); ok && rolesStr != "" {
		roles = strings.Split(rolesStr, ",")
	}

	return &Claims{
		UserID:   int64(userID),
		Username: username,
		Roles:    roles,
	}, nil
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against its stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
