package credentials

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"
)

// Backend loads and saves the serialized collection.
// *vault.Store satisfies it.
type Backend interface {
	LoadPlaintext() ([]byte, error)
	SavePlaintext(plaintext []byte) error
}

// Store is the credential collection of one unlocked vault.
// Every successful mutation rewrites the whole collection through the backend;
// a failed write leaves the in-memory collection as it was before the call.
//
// A Store is not safe for concurrent use.
type Store struct {
	backend Backend
	records []Record
	logger  zerolog.Logger
}

// Open loads and decodes the collection held by backend.
// A backend that cannot be decrypted or decoded yields ErrVaultOpen, without the cause.
func Open(backend Backend, opts ...Option) (*Store, error) {
	store := &Store{
		backend: backend,
		logger:  zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(store)
	}

	plaintext, err := backend.LoadPlaintext()
	if err != nil {
		store.logger.Debug().Msg("vault could not be decrypted")

		return nil, ErrVaultOpen
	}

	if len(plaintext) == 0 {
		store.logger.Debug().Msg("vault is empty")

		return store, nil
	}

	records, err := decode(plaintext)
	clear(plaintext)

	if err != nil {
		store.logger.Debug().Msg("vault could not be decoded")

		return nil, ErrVaultOpen
	}

	store.records = records

	store.logger.Debug().Int("records", len(records)).Msg("vault opened")

	return store, nil
}

// Store adds a new record.
func (s *Store) Store(identifier, username, secret string) error {
	record := Record{Identifier: identifier, Username: username, Secret: secret}

	if err := record.Validate(); err != nil {
		return err
	}

	if s.secretInUse(secret, -1) {
		return ErrDuplicateSecret
	}

	next := append(slices.Clip(s.records), record)

	if err := s.commit(next); err != nil {
		return err
	}

	s.logger.Debug().Int("records", len(s.records)).Msg("record stored")

	return nil
}

// Retrieve returns the first record matching identifier and username.
func (s *Store) Retrieve(identifier, username string) (Record, bool) {
	idx := s.index(identifier, username)
	if idx < 0 {
		return Record{}, false
	}

	return s.records[idx], true
}

// RetrieveAll returns every record with the given identifier, in insertion order.
func (s *Store) RetrieveAll(identifier string) []Record {
	var matches []Record

	for _, r := range s.records {
		if r.Identifier == identifier {
			matches = append(matches, r)
		}
	}

	return matches
}

// Has reports whether a record matches identifier and username.
func (s *Store) Has(identifier, username string) bool {
	return s.index(identifier, username) >= 0
}

// Update replaces the secret of the first record matching identifier and username.
func (s *Store) Update(identifier, username, secret string) error {
	idx := s.index(identifier, username)
	if idx < 0 {
		return ErrNotFound
	}

	record := s.records[idx]
	record.Secret = secret

	if err := record.Validate(); err != nil {
		return err
	}

	if s.secretInUse(secret, idx) {
		return ErrDuplicateSecret
	}

	next := slices.Clone(s.records)
	next[idx] = record

	if err := s.commit(next); err != nil {
		return err
	}

	s.logger.Debug().Msg("record updated")

	return nil
}

// Delete removes every record matching identifier and username.
func (s *Store) Delete(identifier, username string) error {
	next := slices.DeleteFunc(slices.Clone(s.records), func(r Record) bool {
		return r.matches(identifier, username)
	})

	removed := len(s.records) - len(next)
	if removed == 0 {
		return ErrNotFound
	}

	if err := s.commit(next); err != nil {
		return err
	}

	s.logger.Debug().Int("removed", removed).Msg("records deleted")

	return nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.records)
}

// Identifiers returns the distinct identifiers in sorted order.
func (s *Store) Identifiers() []string {
	ids := make([]string, 0, len(s.records))

	for _, r := range s.records {
		ids = append(ids, r.Identifier)
	}

	slices.Sort(ids)

	return slices.Compact(ids)
}

// Search returns the records whose identifier matches the glob pattern, in insertion order.
func (s *Store) Search(pattern string) ([]Record, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}

	var matches []Record

	for _, r := range s.records {
		if re.MatchString(r.Identifier) {
			matches = append(matches, r)
		}
	}

	return matches, nil
}

func (s *Store) index(identifier, username string) int {
	return slices.IndexFunc(s.records, func(r Record) bool {
		return r.matches(identifier, username)
	})
}

// secretInUse reports whether any record other than the one at skip holds secret.
func (s *Store) secretInUse(secret string, skip int) bool {
	for i, r := range s.records {
		if i != skip && r.Secret == secret {
			return true
		}
	}

	return false
}

// commit persists next and adopts it only once the backend accepted it.
func (s *Store) commit(next []Record) error {
	data, err := encode(next)
	if err != nil {
		return err
	}

	defer clear(data)

	if err := s.backend.SavePlaintext(data); err != nil {
		s.logger.Debug().Err(err).Msg("saving vault failed, changes rolled back")

		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s.records = next

	return nil
}
