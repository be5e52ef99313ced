package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/abraaosantosdeveloper/taskmanager/internal/application/ports"
	domerrors "github.com/abraaosantosdeveloper/taskmanager/internal/domain/errors"
)

// TokenIssuer implements ports.TokenIssuer with HS256 and a shared secret.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
}

type accessClaims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

func NewTokenIssuer(secret []byte, expiry time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, expiry: expiry}
}

func (t *TokenIssuer) Issue(userID int64, email string) (string, error) {
	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
		},
		UserID: userID,
		Email:  email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate checks signature and expiry. Expiry on a well-formed token maps
// to ErrTokenExpired; every other failure maps to ErrInvalidToken.
func (t *TokenIssuer) Validate(tokenString string) (*ports.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domerrors.ErrTokenExpired
		}
		return nil, domerrors.ErrInvalidToken
	}
	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return nil, domerrors.ErrInvalidToken
	}
	return &ports.TokenClaims{UserID: claims.UserID, Email: claims.Email}, nil
}

var _ ports.TokenIssuer = (*TokenIssuer)(nil)
