package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// TokenGenerator mints the opaque token a session cookie carries.
type TokenGenerator interface {
	NewToken() (string, error)
}

type UUIDTokenGenerator struct{}

func NewTokenGenerator() *UUIDTokenGenerator {
	return &UUIDTokenGenerator{}
}

// NewToken returns a random v4 UUID. Reading the entropy source can fail; that
// surfaces as an error instead of the panic uuid.NewString would raise.
func (g *UUIDTokenGenerator) NewToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return id.String(), nil
}

// HashToken returns the hex sha256 of a session token; only the hash is persisted.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
