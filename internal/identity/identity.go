// Package identity derives pseudonymous participant identifiers.
//
// The identifier is the SHA-256 digest of the contact string, hex encoded.
// It is unsalted so the same participant always maps to the same id, which
// is what lets repeat submissions be recognized without an account system.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the 64-char lowercase hex digest of a contact string
func Hash(contact string) string {
	return HashBytes([]byte(contact))
}

// HashBytes returns the 64-char lowercase hex digest of b
func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
