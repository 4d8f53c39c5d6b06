package encryption

import "errors"

var (
	// ErrEmptyData is returned when attempting to unpad empty input data.
	ErrEmptyData = errors.New("empty data")
	// ErrInvalidPadding is returned when PKCS7 padding is malformed.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrInvalidBlockSize is returned when encrypted data length is not aligned with AES block size.
	ErrInvalidBlockSize = errors.New("ciphertext is not a multiple of block size")
	// ErrInvalidKeySize is returned when the key is not KeySize bytes long.
	ErrInvalidKeySize = errors.New("invalid key size")
	// ErrInvalidIVSize is returned when the initialization vector is not IVSize bytes long.
	ErrInvalidIVSize = errors.New("invalid iv size")
)
