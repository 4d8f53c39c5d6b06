package credentials

import (
	"errors"
	"os"
	"testing"

	"github.com/goccy/go-yaml"
)

type patternCase struct {
	Pattern     string `yaml:"pattern"`
	Identifier  string `yaml:"identifier"`
	Match       bool   `yaml:"match"`
	Description string `yaml:"description,omitempty"`
}

type patternGroup struct {
	Name  string        `yaml:"name"`
	Cases []patternCase `yaml:"cases"`
}

func TestCompilePattern(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile("testdata/patterns.yml")
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}

	var groups []patternGroup
	if err := yaml.Unmarshal(data, &groups); err != nil {
		t.Fatalf("parsing golden file: %v", err)
	}

	for _, group := range groups {
		t.Run(group.Name, func(t *testing.T) {
			t.Parallel()

			for _, tc := range group.Cases {
				re, err := compilePattern(tc.Pattern)
				if err != nil {
					t.Errorf("compilePattern(%q): %v", tc.Pattern, err)

					continue
				}

				if got := re.MatchString(tc.Identifier); got != tc.Match {
					t.Errorf("%q against %q = %v, want %v (%s)", tc.Pattern, tc.Identifier, got, tc.Match, tc.Description)
				}
			}
		})
	}
}

func TestCompilePatternInvalid(t *testing.T) {
	t.Parallel()

	for _, pattern := range []string{`abc\`, `bank[12`, `[!`, `x[z-a]`} {
		if _, err := compilePattern(pattern); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("compilePattern(%q) error = %v, want ErrInvalidInput", pattern, err)
		}
	}
}
