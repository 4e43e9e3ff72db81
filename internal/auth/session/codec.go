package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/clock"
)

var errMissingTokenID = errors.New("session cookie has no token id")

// Codec signs the session token into the cookie value as an HS256 JWT.
type Codec struct {
	secret []byte
	clock  clock.Clock
}

func NewCodec(secret string, clk clock.Clock) *Codec {
	return &Codec{secret: []byte(secret), clock: clk}
}

func (c *Codec) Encode(s Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        s.Token,
		Subject:   s.Username,
		IssuedAt:  jwt.NewNumericDate(s.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies signature and expiry and returns the opaque session token.
func (c *Codec) Decode(value string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(
		value,
		&claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", err
	}
	if claims.ID == "" {
		return "", errMissingTokenID
	}
	return claims.ID, nil
}

func (c *Codec) now() time.Time {
	return c.clock.Now()
}
