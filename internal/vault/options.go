package vault

import "github.com/rs/zerolog"

// Option configures a Store.
type Option func(*Store)

// WithRotateIV draws a fresh IV on every save instead of reusing the one created with the file.
func WithRotateIV() Option {
	return func(s *Store) {
		s.rotateIV = true
	}
}

// WithLogger sets the logger used for diagnostic events. Secrets are never logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}
