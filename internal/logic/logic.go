// Package logic implements the business logic behind each command:
// unlocking the vault, running one operation and printing its result.
package logic

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/idelchi/armorpass/internal/config"
	"github.com/idelchi/armorpass/internal/credentials"
	"github.com/idelchi/armorpass/internal/encryption"
	"github.com/idelchi/armorpass/internal/vault"
)

// ErrNoPassword is returned when no master password source is available.
var ErrNoPassword = errors.New("no master password: set ARMORPASS_PASSWORD, use --password-file or run in a terminal")

// session is an unlocked vault and its credential collection.
type session struct {
	vault *vault.Store
	store *credentials.Store
}

// open unlocks the configured vault, creating it lazily when it does not exist yet.
func open(cfg *config.Config) (*session, error) {
	password, err := masterPassword(cfg)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.Verbose)

	opts := []vault.Option{vault.WithLogger(logger)}
	if cfg.RotateIV {
		opts = append(opts, vault.WithRotateIV())
	}

	v, err := vault.OpenOrCreate(cfg.Vault, password, opts...)

	encryption.Wipe(password)

	if err != nil {
		return nil, fmt.Errorf("opening vault %q: %w", cfg.Vault, err)
	}

	store, err := credentials.Open(v, credentials.WithLogger(logger))
	if err != nil {
		v.Close()

		return nil, err
	}

	return &session{vault: v, store: store}, nil
}

func (s *session) Close() {
	s.vault.Close()
}

// masterPassword reads the password from the environment, the password file or the terminal, in that order.
// A password taken from the configuration is removed from it.
func masterPassword(cfg *config.Config) ([]byte, error) {
	if cfg.Password != "" {
		password := []byte(cfg.Password)
		cfg.Password = ""

		return password, nil
	}

	if cfg.PasswordFile != "" {
		data, err := os.ReadFile(cfg.PasswordFile)
		if err != nil {
			return nil, fmt.Errorf("reading password file: %w", err)
		}

		trimmed := []byte(strings.TrimRight(string(data), "\r\n"))

		encryption.Wipe(data)

		return trimmed, nil
	}

	fd := int(os.Stdin.Fd()) //nolint:gosec // file descriptors fit in int

	if !term.IsTerminal(fd) {
		return nil, ErrNoPassword
	}

	fmt.Fprint(os.Stderr, "Master password: ")

	password, err := term.ReadPassword(fd)

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return nil, fmt.Errorf("reading master password: %w", err)
	}

	return password, nil
}

// newLogger returns a console logger on stderr when verbose, and a no-op logger otherwise.
func newLogger(verbose bool) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Logger()
}
