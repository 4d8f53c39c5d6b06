package logic

import (
	"fmt"
	"io"

	"github.com/idelchi/armorpass/internal/config"
	"github.com/idelchi/armorpass/internal/credentials"
)

// RunStore adds a record, generating the secret from the policy when none was given.
func RunStore(cfg *config.Config, out io.Writer) error {
	secret, generated, err := secretFor(cfg)
	if err != nil {
		return err
	}

	s, err := open(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.store.Store(cfg.Identifier, cfg.Username, secret); err != nil {
		return fmt.Errorf("storing %s/%s: %w", cfg.Identifier, cfg.Username, err)
	}

	fmt.Fprintf(out, "Stored %s/%s\n", cfg.Identifier, cfg.Username)

	if generated {
		printGenerated(cfg, out, secret)
	}

	return nil
}

// RunGet prints the secret of the first record matching identifier and username.
func RunGet(cfg *config.Config, out io.Writer) error {
	s, err := open(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	record, ok := s.store.Retrieve(cfg.Identifier, cfg.Username)
	if !ok {
		return fmt.Errorf("retrieving %s/%s: %w", cfg.Identifier, cfg.Username, credentials.ErrNotFound)
	}

	fmt.Fprintln(out, record.Secret)

	return nil
}

// RunList prints the records under an identifier with masked secrets,
// or every identifier when none is given.
func RunList(cfg *config.Config, out io.Writer) error {
	s, err := open(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if cfg.Identifier == "" {
		for _, id := range s.store.Identifiers() {
			fmt.Fprintln(out, id)
		}

		return nil
	}

	records := s.store.RetrieveAll(cfg.Identifier)
	if len(records) == 0 {
		return fmt.Errorf("listing %s: %w", cfg.Identifier, credentials.ErrNotFound)
	}

	printRecords(out, records)

	return nil
}

// RunSearch prints the records whose identifier matches the glob pattern, with masked secrets.
func RunSearch(cfg *config.Config, out io.Writer) error {
	s, err := open(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.store.Search(cfg.Pattern)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	printRecords(out, records)

	return nil
}

// RunUpdate replaces the secret of the first matching record.
func RunUpdate(cfg *config.Config, out io.Writer) error {
	secret, generated, err := secretFor(cfg)
	if err != nil {
		return err
	}

	s, err := open(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.store.Update(cfg.Identifier, cfg.Username, secret); err != nil {
		return fmt.Errorf("updating %s/%s: %w", cfg.Identifier, cfg.Username, err)
	}

	fmt.Fprintf(out, "Updated %s/%s\n", cfg.Identifier, cfg.Username)

	if generated {
		printGenerated(cfg, out, secret)
	}

	return nil
}

// RunDelete removes every record matching identifier and username.
func RunDelete(cfg *config.Config, out io.Writer) error {
	s, err := open(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.store.Delete(cfg.Identifier, cfg.Username); err != nil {
		return fmt.Errorf("deleting %s/%s: %w", cfg.Identifier, cfg.Username, err)
	}

	fmt.Fprintf(out, "Deleted %s/%s\n", cfg.Identifier, cfg.Username)

	return nil
}

func printRecords(out io.Writer, records []credentials.Record) {
	for _, r := range records {
		masked := r.Masked()

		fmt.Fprintf(out, "%s\t%s\t%s\n", masked.Identifier, masked.Username, masked.Secret)
	}
}
