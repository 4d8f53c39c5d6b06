package credentials

import "github.com/rs/zerolog"

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for diagnostic events.
// Identifiers, usernames and secrets are never logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}
