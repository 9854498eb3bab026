package random

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/gildedernacht/olymp/internal/model"
)

// Random provides identifier generation that can be mocked for testing
type Random interface {
	// UID returns a fresh identifier of model.UIDLength lowercase hex characters
	UID() string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// UID returns 32 random bytes hex encoded
func (r *CryptoRandom) UID() string {
	buf := make([]byte, model.UIDLength/2)
	// crypto/rand.Read never returns an error
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
