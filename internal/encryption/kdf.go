package encryption

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the derived key length, as required by AES-256.
	KeySize = 32
	// SaltSize is the length of the per-vault salt.
	SaltSize = 16
	// Iterations is the fixed PBKDF2 iteration count.
	Iterations = 100_000
)

// DeriveKey derives a KeySize key from password and salt using PBKDF2-HMAC-SHA256.
// It is deterministic and accepts any password, including an empty one.
func DeriveKey(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, Iterations, KeySize, sha256.New)
}

// NewSalt returns SaltSize bytes from the system's secure random source.
func NewSalt() ([]byte, error) {
	return randomBytes(SaltSize)
}

// NewIV returns IVSize bytes from the system's secure random source.
func NewIV() ([]byte, error) {
	return randomBytes(IVSize)
}

func randomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, fmt.Errorf("reading random bytes: %w", err)
	}

	return buf, nil
}

// Wipe overwrites buf with zeros.
func Wipe(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
