// Package crypto protects filled visa forms at rest. A generated PDF carries
// passport numbers, addresses and travel history, so the fill command can
// age-encrypt it with a passphrase before it leaves the machine.
package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"filippo.io/age"
)

// DefaultPassphraseBytes is the number of random bytes behind a generated
// passphrase: 32 bytes = 256 bits, about 43 base64 characters.
const DefaultPassphraseBytes = 32

// Encrypt encrypts src into dst with age in scrypt passphrase mode.
func Encrypt(dst io.Writer, src io.Reader, passphrase string) error {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("creating recipient: %w", err)
	}

	writer, err := age.Encrypt(dst, recipient)
	if err != nil {
		return fmt.Errorf("creating encryptor: %w", err)
	}

	if _, err := io.Copy(writer, src); err != nil {
		return fmt.Errorf("encrypting: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}

	return nil
}

// Decrypt decrypts age-encrypted data using a passphrase.
func Decrypt(dst io.Writer, src io.Reader, passphrase string) error {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return fmt.Errorf("creating identity: %w", err)
	}

	reader, err := age.Decrypt(src, identity)
	if err != nil {
		return fmt.Errorf("decrypting: %w", err)
	}

	if _, err := io.Copy(dst, reader); err != nil {
		return fmt.Errorf("reading decrypted data: %w", err)
	}

	return nil
}

// GeneratePassphrase creates a cryptographically secure passphrase,
// URL-safe base64 encoded without padding for easy copy-paste.
func GeneratePassphrase(numBytes int) (string, error) {
	if numBytes < 16 {
		return "", fmt.Errorf("passphrase must be at least 16 bytes, got %d", numBytes)
	}

	raw := make([]byte, numBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}
