package generator

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// LoadPolicy reads a policy from a JSON file that may contain comments and trailing commas.
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return Policy{}, fmt.Errorf("reading policy file %q: %w", path, err)
	}

	var policy Policy

	if err := json.Unmarshal(jsonc.ToJSONInPlace(data), &policy); err != nil {
		return Policy{}, fmt.Errorf("parsing policy file %q: %w", path, err)
	}

	return policy, nil
}

// Merge returns p with every field that override sets replaced.
func (p Policy) Merge(override Policy) Policy {
	if override.Length != nil {
		p.Length = override.Length
	}

	if override.MinUppercase != nil {
		p.MinUppercase = override.MinUppercase
	}

	if override.MinDigits != nil {
		p.MinDigits = override.MinDigits
	}

	if override.MinSpecial != nil {
		p.MinSpecial = override.MinSpecial
	}

	if override.Unicode != nil {
		p.Unicode = override.Unicode
	}

	return p
}
