package vault

import "errors"

var (
	// ErrCorrupted is returned when the vault file is too short to contain its header.
	ErrCorrupted = errors.New("vault file is corrupted")
	// ErrClosed is returned when using a store after Close.
	ErrClosed = errors.New("vault is closed")
)
