// Package auth issues and verifies the signed session tokens handed out at
// signup and login.
package auth

import (
	"errors"
	"time"

	"github.com/ericmlantz/backend/internal/common"
	"github.com/ericmlantz/backend/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the account id and its variant next to the registered claims.
// Subject repeats the account id for verifiers that only look at "sub".
type Claims struct {
	jwt.RegisteredClaims
	AccountID string         `json:"id"`
	Variant   models.Variant `json:"variant"`
}

// GenerateToken signs an HS256 token for accountID valid for validityDuration.
func GenerateToken(accountID string, variant models.Variant, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
			ID:        uuid.NewString(),
		},
		AccountID: accountID,
		Variant:   variant,
	})

	return token.SignedString(secretKey)
}

// ParseToken verifies tokenString and returns its claims. Expired tokens yield
// common.ErrTokenExpired, everything else that fails verification
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.AccountID == "" || !claims.Variant.Valid() {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
