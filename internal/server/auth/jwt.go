// Package auth issues and verifies the access tokens carried on API
// requests, plus the opaque refresh tokens stored server-side.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/neogulmap/zonemap/internal/common"
	"github.com/neogulmap/zonemap/internal/server/models"
)

// NearExpiryThreshold is how close to expiry a token must be before the
// refresh flow reissues it.
const NearExpiryThreshold = 5 * time.Minute

// Claims carries the registered claims plus the numeric account ID.
// The subject is the user's email.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"userId"`
}

// Issue signs an HS256 access token for the user, valid for the given
// duration.
func Issue(user *models.User, secret []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		UserID: user.ID,
	})
	return token.SignedString(secret)
}

// Parse verifies the signature and expiry and returns the claims. Expired
// tokens yield common.ErrTokenExpired; anything else invalid yields
// common.ErrInvalidToken.
func Parse(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// Validate reports whether the token is well-formed, correctly signed, and
// unexpired.
func Validate(tokenString string, secret []byte) bool {
	_, err := Parse(tokenString, secret)
	return err == nil
}

// SubjectOf returns the email the token was issued for.
func SubjectOf(tokenString string, secret []byte) (string, error) {
	claims, err := Parse(tokenString, secret)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// UserIDOf returns the numeric account ID carried by the token.
func UserIDOf(tokenString string, secret []byte) (int64, error) {
	claims, err := Parse(tokenString, secret)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// IsNearExpiry reports whether the token expires within the fixed
// five-minute threshold. Unparseable tokens count as near expiry.
func IsNearExpiry(tokenString string, secret []byte) bool {
	claims, err := Parse(tokenString, secret)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return time.Until(claims.ExpiresAt.Time) < NearExpiryThreshold
}

// NewRefreshToken returns a random opaque token for the server-stored
// refresh flow.
func NewRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
