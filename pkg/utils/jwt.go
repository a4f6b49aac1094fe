package utils

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// SessionCookieName carries the signed cart session token.
	SessionCookieName = "cartSession"
	// SessionHeader is the header alternative for non-browser clients.
	SessionHeader = "X-Cart-Session"
)

var secretKey []byte

func SetSecret(key string) {
	secretKey = []byte(key)
}

// GenerateSessionToken signs a cart session id.
func GenerateSessionToken(sessionID string, expiry time.Duration) (string, error) {
	if len(secretKey) == 0 {
		return "", fmt.Errorf("jwt secret not set")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sessionID,
		"typ": "cart",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(expiry).Unix(),
	})

	return token.SignedString(secretKey)
}

func ValidateJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

func GenerateUUID() string {
	return uuid.NewString()
}

// ExtractSessionID reads and verifies the cart session token from the
// X-Cart-Session header or the session cookie.
func ExtractSessionID(r *http.Request) (string, error) {
	tokenString := strings.TrimSpace(r.Header.Get(SessionHeader))
	if tokenString == "" {
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			tokenString = cookie.Value
		}
	}

	if tokenString == "" {
		return "", fmt.Errorf("no session token found")
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return "", err
	}

	if typ, _ := claims["typ"].(string); typ != "cart" {
		return "", fmt.Errorf("not a cart session token")
	}
	sessionID, _ := claims["sub"].(string)
	if _, err := uuid.Parse(sessionID); err != nil {
		return "", fmt.Errorf("invalid session id: %w", err)
	}
	return sessionID, nil
}
