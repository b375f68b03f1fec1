package primitives

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashSize is the length in hex characters of a digest returned by Hash.
const HashSize = sha256.Size * 2

// Hash returns the SHA-256 digest of data as lowercase hex.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// HashString hashes the UTF-8 bytes of s.
func HashString(s string) string {
	return Hash([]byte(s))
}
