package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashBytes returns the SHA-256 hash of bytes, prefixed with "sha256:".
// The fill command prints it so a generated form can be verified later.
func HashBytes(b []byte) string {
	h := sha256.Sum256(b)
	return "sha256:" + hex.EncodeToString(h[:])
}
