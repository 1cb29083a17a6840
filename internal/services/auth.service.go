package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService manages JWT token generation and validation for API clients
type AuthService struct {
	secretKey   string
	tokenExpiry time.Duration
}

// ClientClaims represents the JWT claims issued to a report consumer
type ClientClaims struct {
	ClientName string `json:"client_name"`
	jwt.RegisteredClaims
}

var authService *AuthService

// InitAuthService initializes the authentication service. With an empty
// secretKey a random key is generated and persisted next to the user's
// home directory so tokens survive restarts.
func InitAuthService(secretKey string, tokenExpiry time.Duration) *AuthService {
	if secretKey == "" {
		homeDir, _ := os.UserHomeDir()
		keyFile := filepath.Join(homeDir, ".zhuangtai-secret-key")
		if homeDir == "" {
			keyFile = filepath.Join(os.TempDir(), ".zhuangtai-secret-key")
		}

		if data, err := os.ReadFile(keyFile); err == nil && len(data) > 0 {
			secretKey = strings.TrimSpace(string(data))
		} else {
			randomBytes := make([]byte, 32)
			if _, err := rand.Read(randomBytes); err != nil {
				hostname, _ := os.Hostname()
				secretKey = fmt.Sprintf("zhuangtai-%s-%d", hostname, time.Now().UnixNano())
				log.Printf("Warning: Random generation failed, using fallback key")
			} else {
				secretKey = hex.EncodeToString(randomBytes)
			}

			if err := os.WriteFile(keyFile, []byte(secretKey), 0600); err != nil {
				log.Printf("Warning: Could not persist secret key to %s: %v", keyFile, err)
			}
		}
	}

	if tokenExpiry == 0 {
		tokenExpiry = 90 * 24 * time.Hour
	}

	authService = &AuthService{
		secretKey:   strings.TrimSpace(secretKey),
		tokenExpiry: tokenExpiry,
	}
	return authService
}

// GenerateToken creates a new JWT token for a named client
func GenerateToken(clientName string) (string, error) {
	if authService == nil {
		return "", fmt.Errorf("auth service not initialized")
	}

	now := time.Now()
	claims := ClientClaims{
		ClientName: clientName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(authService.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "zhuangtai",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(authService.secretKey))
}

// ValidateToken verifies and parses a JWT token
func ValidateToken(tokenString string) (*ClientClaims, error) {
	if authService == nil {
		return nil, fmt.Errorf("auth service not initialized")
	}

	claims := &ClientClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(authService.secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
