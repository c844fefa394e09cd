package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoToken = errors.New("no token found")

var secretKey []byte

func SetSecret(key string) {
	secretKey = []byte(key)
}

// Claims is the principal carried by an access token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func GenerateJWT(userID, email, role string, expiry time.Duration) (string, error) {
	if len(secretKey) == 0 {
		return "", fmt.Errorf("jwt secret not set")
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	})
	return token.SignedString(secretKey)
}

// ValidateJWT accepts HS256 tokens signed with the configured secret.
func ValidateJWT(tokenString string) (*Claims, error) {
	if len(secretKey) == 0 {
		return nil, fmt.Errorf("jwt secret not set")
	}
	var tc tokenClaims
	_, err := jwt.ParseWithClaims(tokenString, &tc, func(*jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	return &Claims{UserID: tc.Subject, Email: tc.Email, Role: tc.Role}, nil
}

// ExtractClaims reads the token from the bearer header, falling back to the
// accessToken cookie.
func ExtractClaims(r *http.Request) (*Claims, error) {
	tokenString := ""
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
	} else if cookie, err := r.Cookie("accessToken"); err == nil {
		tokenString = cookie.Value
	}
	if tokenString == "" {
		return nil, ErrNoToken
	}
	return ValidateJWT(tokenString)
}
