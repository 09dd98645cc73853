// Package token issues and verifies the HS256 JWTs exchanged between the
// auth service and the gateway. The gateway trusts the "id" claim and
// forwards it to downstream services as the X-User-ID header.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("token: invalid or expired token")

// Claims are the verified contents of a platform token.
type Claims struct {
	IdentityID int64
	RoleID     int64
	Username   string
}

// Generate signs a token carrying the identity id and role as claims.
func Generate(secret string, identityID, roleID int64, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":   identityID,
		"role": roleID,
		"sub":  username,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Parse verifies the signature and expiry and extracts the claims.
func Parse(secret, tokenString string) (*Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	id, ok := numericClaim(mapClaims, "id")
	if !ok {
		return nil, ErrInvalidToken
	}
	role, _ := numericClaim(mapClaims, "role")
	username, _ := mapClaims["sub"].(string)

	return &Claims{
		IdentityID: id,
		RoleID:     role,
		Username:   username,
	}, nil
}

// numericClaim handles the float64 representation JSON decoding gives
// integer claims.
func numericClaim(claims jwt.MapClaims, key string) (int64, bool) {
	switch v := claims[key].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}
