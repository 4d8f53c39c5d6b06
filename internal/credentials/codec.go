package credentials

import (
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/goccy/go-yaml"
)

// formatVersion is the only document version this package reads and writes.
const formatVersion = 1

var (
	errNotUTF8        = errors.New("document is not valid UTF-8")
	errVersion        = errors.New("unsupported document version")
	errNotRoundTrip   = errors.New("records cannot be encoded without loss")
	errDecoderFailure = errors.New("decoder failure")
)

// document is the plaintext layout of a vault.
// Every record field is base64 encoded, so no value can be read back as a YAML indicator,
// alias, tag or null, and any generated code point survives the markup.
type document struct {
	Version int            `yaml:"version"`
	Records []storedRecord `yaml:"records"`
}

type storedRecord struct {
	Identifier string `yaml:"identifier"`
	Username   string `yaml:"username"`
	Secret     string `yaml:"secret"`
}

func encode(records []Record) ([]byte, error) {
	doc := document{
		Version: formatVersion,
		Records: make([]storedRecord, 0, len(records)),
	}

	for _, r := range records {
		doc.Records = append(doc.Records, storedRecord{
			Identifier: encodeField(r.Identifier),
			Username:   encodeField(r.Username),
			Secret:     encodeField(r.Secret),
		})
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding records: %w", err)
	}

	// A document that does not decode back to the same records must never reach the disk.
	decoded, err := decode(data)
	if err != nil || !slices.Equal(decoded, records) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, errNotRoundTrip)
	}

	return data, nil
}

func decode(data []byte) (records []Record, err error) {
	if !utf8.Valid(data) {
		return nil, errNotUTF8
	}

	defer func() {
		if r := recover(); r != nil {
			records, err = nil, fmt.Errorf("%w: %v", errDecoderFailure, r)
		}
	}()

	var doc document
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("decoding records: %w", err)
	}

	if doc.Version != formatVersion {
		return nil, fmt.Errorf("%w: %d", errVersion, doc.Version)
	}

	records = make([]Record, 0, len(doc.Records))

	for i, sr := range doc.Records {
		var (
			record Record
			err    error
		)

		fields := []struct {
			name string
			in   string
			out  *string
		}{
			{"identifier", sr.Identifier, &record.Identifier},
			{"username", sr.Username, &record.Username},
			{"secret", sr.Secret, &record.Secret},
		}

		for _, f := range fields {
			if *f.out, err = decodeField(f.in); err != nil {
				return nil, fmt.Errorf("decoding %s of record %d: %w", f.name, i, err)
			}
		}

		records = append(records, record)
	}

	return records, nil
}

func encodeField(value string) string {
	return base64.StdEncoding.EncodeToString([]byte(value))
}

func decodeField(value string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", err
	}

	return string(raw), nil
}
