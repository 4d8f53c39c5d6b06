package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// IVSize is the length of the CBC initialization vector.
const IVSize = aes.BlockSize

// Encrypt pads plaintext and encrypts it with AES-256 in CBC mode under key and iv.
// An empty plaintext still yields one block of ciphertext.
func Encrypt(key, iv, plaintext []byte) ([]byte, error) {
	block, err := newBlock(key, iv)
	if err != nil {
		return nil, err
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return ciphertext, nil
}

// Decrypt decrypts ciphertext produced by Encrypt and strips the padding.
//
// A wrong key is not detected as such: it surfaces as ErrInvalidPadding or, rarely,
// as a successfully unpadded but meaningless plaintext.
func Decrypt(key, iv, ciphertext []byte) ([]byte, error) {
	block, err := newBlock(key, iv)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrInvalidBlockSize
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext)
	if err != nil {
		Wipe(plaintext)

		return nil, fmt.Errorf("removing padding: %w", err)
	}

	return unpadded, nil
}

func newBlock(key, iv []byte) (cipher.Block, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeySize, len(key), KeySize)
	}

	if len(iv) != IVSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidIVSize, len(iv), IVSize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	return block, nil
}
