package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sha256Hex computes the SHA-256 digest of the given byte slice and
// returns it as a hex-encoded string.
//
// Used for artifact hashes (snapshots, patches) and for fingerprinting
// manifest file contents in caches. Unkeyed on purpose: artifact hashes
// are integrity checks, not authentication.
//
// Example usage:
//
//	digest := utils.Sha256Hex(payload)
func Sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Sha256HexString computes the SHA-256 digest of the given string.
// Convenience wrapper around Sha256Hex.
func Sha256HexString(data string) string {
	return Sha256Hex([]byte(data))
}
