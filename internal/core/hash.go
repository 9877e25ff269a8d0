package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// ComputeHash returns the lower-case hex SHA-256 of content. Only the bytes
// are hashed, so the same document yields the same hash wherever it lives.
func ComputeHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// NeedsUpdate fingerprints content and reports whether it differs from the
// hash recorded in entry. A nil entry or force always needs an update.
func NeedsUpdate(content []byte, entry *LockfileEntry, force bool) (hash string, needed bool) {
	hash = ComputeHash(content)
	if force || entry == nil {
		return hash, true
	}
	return hash, entry.Hash != hash
}
