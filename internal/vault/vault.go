package vault

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/idelchi/armorpass/internal/encryption"
	"github.com/idelchi/armorpass/internal/fileutil"
)

// HeaderSize is the number of plaintext bytes preceding the ciphertext.
const HeaderSize = encryption.SaltSize + encryption.IVSize

// Store holds the salt, IV, ciphertext and derived key of one vault file.
// It is not safe for concurrent use, and nothing guards the file against other processes.
type Store struct {
	path string

	salt       []byte
	iv         []byte
	ciphertext []byte
	key        []byte

	exists   bool
	rotateIV bool
	logger   zerolog.Logger
}

// OpenOrCreate reads the vault at path, or prepares a new one if no file exists yet, and derives
// the key from password. Decryption is deferred until LoadPlaintext. A new vault is not written
// to disk before the first SavePlaintext. The password is not retained.
func OpenOrCreate(path string, password []byte, opts ...Option) (*Store, error) {
	store := &Store{
		path:   filepath.Clean(path),
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(store)
	}

	data, err := os.ReadFile(store.path)

	switch {
	case err == nil:
		if err := store.parse(data); err != nil {
			return nil, err
		}

		store.exists = true
	case errors.Is(err, fs.ErrNotExist):
		if err := store.initialize(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("reading vault file: %w", err)
	}

	store.key = encryption.DeriveKey(password, store.salt)

	store.logger.Debug().
		Str("path", store.path).
		Bool("existing", store.exists).
		Int("ciphertext_bytes", len(store.ciphertext)).
		Msg("vault opened")

	return store, nil
}

func (s *Store) parse(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: %d bytes, need at least %d", ErrCorrupted, len(data), HeaderSize)
	}

	s.salt = bytes.Clone(data[:encryption.SaltSize])
	s.iv = bytes.Clone(data[encryption.SaltSize:HeaderSize])
	s.ciphertext = bytes.Clone(data[HeaderSize:])

	return nil
}

func (s *Store) initialize() error {
	salt, err := encryption.NewSalt()
	if err != nil {
		return fmt.Errorf("generating salt: %w", err)
	}

	iv, err := encryption.NewIV()
	if err != nil {
		return fmt.Errorf("generating iv: %w", err)
	}

	s.salt = salt
	s.iv = iv
	s.ciphertext = nil

	return nil
}

// LoadPlaintext decrypts the held ciphertext. A vault that was never saved yields an empty slice
// without invoking the cipher.
func (s *Store) LoadPlaintext() ([]byte, error) {
	if s.key == nil {
		return nil, ErrClosed
	}

	if len(s.ciphertext) == 0 {
		return []byte{}, nil
	}

	plaintext, err := encryption.Decrypt(s.key, s.iv, s.ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decrypting vault: %w", err)
	}

	return plaintext, nil
}

// SavePlaintext encrypts plaintext and atomically rewrites the whole file as salt, IV and
// ciphertext, restricted to owner read/write. The held state only changes once the write succeeded.
func (s *Store) SavePlaintext(plaintext []byte) error {
	if s.key == nil {
		return ErrClosed
	}

	iv := s.iv

	if s.rotateIV {
		fresh, err := encryption.NewIV()
		if err != nil {
			return fmt.Errorf("generating iv: %w", err)
		}

		iv = fresh
	}

	ciphertext, err := encryption.Encrypt(s.key, iv, plaintext)
	if err != nil {
		return fmt.Errorf("encrypting vault: %w", err)
	}

	data := make([]byte, 0, HeaderSize+len(ciphertext))
	data = append(data, s.salt...)
	data = append(data, iv...)
	data = append(data, ciphertext...)

	if err := fileutil.WriteFile(s.path, data, fileutil.OwnerReadWrite); err != nil {
		return fmt.Errorf("writing vault file: %w", err)
	}

	s.iv = iv
	s.ciphertext = ciphertext
	s.exists = true

	s.logger.Debug().
		Str("path", s.path).
		Int("bytes", len(data)).
		Bool("rotated_iv", s.rotateIV).
		Msg("vault saved")

	return nil
}

// Close wipes the derived key. The store cannot be used afterwards.
func (s *Store) Close() {
	encryption.Wipe(s.key)
	s.key = nil
}

// Path returns the location of the vault file.
func (s *Store) Path() string { return s.path }

// Exists reports whether the vault file is present on disk.
func (s *Store) Exists() bool { return s.exists }

// Salt returns a copy of the vault salt.
func (s *Store) Salt() []byte { return bytes.Clone(s.salt) }

// IV returns a copy of the current initialization vector.
func (s *Store) IV() []byte { return bytes.Clone(s.iv) }

// Size returns the size of the vault file as last read or written.
func (s *Store) Size() int {
	if !s.exists {
		return 0
	}

	return HeaderSize + len(s.ciphertext)
}
