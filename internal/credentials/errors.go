package credentials

import "errors"

var (
	// ErrInvalidInput is returned when a record fails validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when no record matches an identifier and username.
	ErrNotFound = errors.New("no matching record")
	// ErrDuplicateSecret is returned when a secret is already used by another record.
	ErrDuplicateSecret = errors.New("secret is already in use")
	// ErrVaultOpen is returned when the vault cannot be decrypted or decoded.
	// Wrong passwords and corrupted files are deliberately indistinguishable.
	ErrVaultOpen = errors.New("unable to open vault")
	// ErrPersistence is returned when saving the collection failed. The in-memory state is unchanged.
	ErrPersistence = errors.New("unable to save vault")
)
