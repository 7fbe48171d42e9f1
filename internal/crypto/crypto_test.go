package crypto

import (
	"bytes"
	"strings"
	"testing"
)

func TestGeneratePassphrase(t *testing.T) {
	tests := []struct {
		name    string
		bytes   int
		wantErr bool
	}{
		{"default", DefaultPassphraseBytes, false},
		{"minimum", 16, false},
		{"too small", 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pass, err := GeneratePassphrase(tt.bytes)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pass == "" {
				t.Error("empty passphrase")
			}
			if strings.ContainsAny(pass, "+/=") {
				t.Error("passphrase should be URL-safe base64")
			}
		})
	}

	t.Run("unique", func(t *testing.T) {
		p1, _ := GeneratePassphrase(32)
		p2, _ := GeneratePassphrase(32)
		if p1 == p2 {
			t.Error("passphrases should be unique")
		}
	})
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintext := []byte("%PDF-1.3 pretend filled form bytes")
	passphrase := "test-passphrase-for-visa-form"

	var encrypted bytes.Buffer
	if err := Encrypt(&encrypted, bytes.NewReader(plaintext), passphrase); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if bytes.Contains(encrypted.Bytes(), []byte("pretend filled form")) {
		t.Error("ciphertext contains plaintext")
	}

	var decrypted bytes.Buffer
	if err := Decrypt(&decrypted, bytes.NewReader(encrypted.Bytes()), passphrase); err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(decrypted.Bytes(), plaintext) {
		t.Error("round trip mismatch")
	}
}

func TestDecryptWrongPassphrase(t *testing.T) {
	var encrypted bytes.Buffer
	if err := Encrypt(&encrypted, strings.NewReader("secret"), "right"); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	var out bytes.Buffer
	if err := Decrypt(&out, bytes.NewReader(encrypted.Bytes()), "wrong"); err == nil {
		t.Error("expected decryption failure with wrong passphrase")
	}
}

func TestHashBytes(t *testing.T) {
	h := HashBytes([]byte("abc"))
	if !strings.HasPrefix(h, "sha256:") {
		t.Errorf("missing prefix: %q", h)
	}
	// sha256("abc") is a fixed vector.
	if h != "sha256:ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Errorf("wrong digest: %q", h)
	}
	if HashBytes([]byte("abc")) != h {
		t.Error("hash not deterministic")
	}
}
