package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

var (
	ErrMissingSecret = errors.New("jwt secret not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

// TokenConfig holds the signing settings shared by issuing and validating.
type TokenConfig struct {
	Secret string
	Issuer string
	Expiry time.Duration
}

// JWTClaims represents the JWT token payload
type JWTClaims struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email,omitempty"`
	Name   string      `json:"name,omitempty"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT creates a signed token carrying the user's acting role
func GenerateJWT(cfg TokenConfig, userID uuid.UUID, email, name string, role models.Role) (string, error) {
	if cfg.Secret == "" {
		return "", ErrMissingSecret
	}
	if !role.Valid() {
		return "", errors.New("unknown role " + string(role))
	}

	expiry := cfg.Expiry
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}

	now := time.Now()
	claims := JWTClaims{
		UserID: userID.String(),
		Email:  email,
		Name:   name,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    cfg.Issuer,
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ValidateJWT verifies and parses a JWT token
func ValidateJWT(cfg TokenConfig, tokenString string) (*JWTClaims, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExtractTokenFromHeader extracts JWT token from Authorization header
// Format: "Bearer <token>"
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is empty")
	}

	const bearerPrefix = "Bearer "
	if len(authHeader) < len(bearerPrefix) {
		return "", errors.New("invalid authorization header format")
	}

	if authHeader[:len(bearerPrefix)] != bearerPrefix {
		return "", errors.New("authorization header must start with 'Bearer '")
	}

	token := authHeader[len(bearerPrefix):]
	if token == "" {
		return "", errors.New("token is empty")
	}

	return token, nil
}
