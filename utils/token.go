package utils

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"parking-management/constants"
	"parking-management/models/user"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTLHours = 8

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func tokenTTL() time.Duration {
	if hours, err := strconv.Atoi(os.Getenv("TOKEN_TTL_HOURS")); err == nil && hours > 0 {
		return time.Duration(hours) * time.Hour
	}
	return defaultTokenTTLHours * time.Hour
}

// GenerateToken issues an HS256 bearer token carrying the identity claims the
// auth middleware resolves into a CurrentUser.
func GenerateToken(u *user.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      u.Username,
		"uid":      u.ID,
		"uuid":     u.Uuid,
		"username": u.Username,
		"role":     u.Role.String(),
		"exp":      time.Now().Add(tokenTTL()).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseToken verifies a bearer token and returns its claims.
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid JWT token")
	}
	return claims, nil
}

// ClaimsToIdentity extracts the identity fields from verified claims.
func ClaimsToIdentity(claims jwt.MapClaims) (id uint, uuid, username string, role constants.Role, err error) {
	rawID, ok := claims["uid"].(float64)
	if !ok {
		return 0, "", "", "", fmt.Errorf("uid claim missing")
	}

	username, ok = claims["username"].(string)
	if !ok || username == "" {
		return 0, "", "", "", fmt.Errorf("username claim missing")
	}

	uuid, _ = claims["uuid"].(string)

	rawRole, ok := claims["role"].(string)
	if !ok {
		return 0, "", "", "", fmt.Errorf("role claim missing")
	}
	role, err = constants.ParseRole(rawRole)
	if err != nil {
		return 0, "", "", "", err
	}

	return uint(rawID), uuid, username, role, nil
}
