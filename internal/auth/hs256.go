package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/geomark/geomark/pkg/middleware"
)

// HS256Verifier validates tokens signed with a shared secret. Used for local
// development and tests where no identity provider is reachable.
type HS256Verifier struct {
	secret []byte
}

func NewHS256Verifier(secret string) (*HS256Verifier, error) {
	if secret == "" {
		return nil, errors.New("JWT secret must not be empty")
	}
	return &HS256Verifier{secret: []byte(secret)}, nil
}

type hs256Token struct {
	claims jwt.MapClaims
}

func (t *hs256Token) Claims(v interface{}) error {
	mm, ok := v.(*map[string]interface{})
	if !ok {
		return errors.New("unsupported claims target")
	}
	*mm = map[string]interface{}(t.claims)
	return nil
}

func (v *HS256Verifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return &hs256Token{claims: claims}, nil
}
