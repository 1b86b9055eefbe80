package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword returns the hex sha256 digest of a password. The scheme is
// unsalted on purpose: the Users table carries digests produced this way by
// the system this one replaces, and changing the function would lock every
// existing account out.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
