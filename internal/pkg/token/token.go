package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"quartermaster/internal/core/domain"
)

// Validity is the fixed lifetime of a session token. There is no refresh
// mechanism; expiry forces re-login.
const Validity = 24 * time.Hour

// Claims represents the session token payload
type Claims struct {
	UserID   uint        `json:"user_id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	BaseID   *uint       `json:"base_id"`
	jwt.RegisteredClaims
}

// Generate signs a session token for the given identity
func Generate(userID uint, username string, role domain.Role, baseID *uint, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		BaseID:   baseID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(Validity)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "quartermaster",
			Subject:   username,
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Verify checks signature and expiry and returns the claims, or nil on any
// verification failure. Callers must treat nil as unauthenticated.
func Verify(tokenString, secret string) *Claims {
	t, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil
	}

	if claims, ok := t.Claims.(*Claims); ok && t.Valid {
		return claims
	}
	return nil
}
