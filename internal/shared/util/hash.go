package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashKey returns a stable, store-safe identifier for an arbitrary principal
// id such as "guest:abc" or a user uuid.
func HashKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
