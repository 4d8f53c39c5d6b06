package generator_test

import (
	"errors"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/goccy/go-yaml"

	"github.com/idelchi/armorpass/internal/generator"
)

type policyCase struct {
	Name         string `yaml:"name"`
	Length       *uint8 `yaml:"length"`
	MinUppercase *uint8 `yaml:"min_uppercase"`
	MinDigits    *uint8 `yaml:"min_digits"`
	MinSpecial   *uint8 `yaml:"min_special"`
	Unicode      *bool  `yaml:"unicode"`
	Valid        bool   `yaml:"valid"`
	WantLength   int    `yaml:"want_length"`
}

func (c policyCase) policy() generator.Policy {
	return generator.Policy{
		Length:       c.Length,
		MinUppercase: c.MinUppercase,
		MinDigits:    c.MinDigits,
		MinSpecial:   c.MinSpecial,
		Unicode:      c.Unicode,
	}
}

func count(s string, class func(rune) bool) int {
	n := 0

	for _, r := range s {
		if class(r) {
			n++
		}
	}

	return n
}

func isDigit(r rune) bool   { return r >= '0' && r <= '9' }
func isUpper(r rune) bool   { return r >= 'A' && r <= 'Z' }
func isSpecial(r rune) bool { return strings.ContainsRune(generator.Specials, r) }

// countingReader counts how many reads were made from the wrapped source.
type countingReader struct {
	io.Reader
	reads int
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.reads++

	return c.Reader.Read(p)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestPolicies(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile("testdata/policies.yml")
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}

	var cases []policyCase
	if err := yaml.Unmarshal(data, &cases); err != nil {
		t.Fatalf("parsing golden file: %v", err)
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()

			policy := tc.policy()
			source := &countingReader{Reader: rand.NewChaCha8([32]byte{1})}

			password, err := generator.New(generator.WithSource(source)).Generate(policy)

			if !tc.Valid {
				if !errors.Is(err, generator.ErrInvalidPolicy) {
					t.Fatalf("Generate(%v) error = %v, want ErrInvalidPolicy", policy, err)
				}

				if source.reads != 0 {
					t.Errorf("invalid policy consumed %d reads of randomness", source.reads)
				}

				return
			}

			if err != nil {
				t.Fatalf("Generate(%v) error = %v", policy, err)
			}

			if got := utf8.RuneCountInString(password); got != tc.WantLength {
				t.Errorf("length = %d, want %d", got, tc.WantLength)
			}

			if tc.Unicode != nil && *tc.Unicode {
				return
			}

			minimums := []struct {
				name  string
				min   *uint8
				class func(rune) bool
			}{
				{"digits", tc.MinDigits, isDigit},
				{"uppercase", tc.MinUppercase, isUpper},
				{"special", tc.MinSpecial, isSpecial},
			}

			for _, m := range minimums {
				if m.min != nil && count(password, m.class) < int(*m.min) {
					t.Errorf("%q has %d %s, want at least %d", password, count(password, m.class), m.name, *m.min)
				}
			}

			for _, r := range password {
				if r < 33 || r > 126 {
					t.Errorf("%q contains %U outside printable ASCII", password, r)
				}
			}
		})
	}
}

func TestUnicodeMode(t *testing.T) {
	t.Parallel()

	for range 50 {
		password, err := generator.Generate(generator.Policy{Length: generator.Uint8(20), Unicode: generator.Bool(true)})
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		if !utf8.ValidString(password) {
			t.Fatalf("%q is not valid UTF-8", password)
		}

		if got := utf8.RuneCountInString(password); got != 20 {
			t.Errorf("length = %d, want 20", got)
		}

		if count(password, func(r rune) bool { return r > 127 }) == 0 {
			t.Errorf("%q has no code point above 127", password)
		}

		for _, r := range password {
			if generator.Blacklisted(r) {
				t.Errorf("%q contains blacklisted %U", password, r)
			}
		}
	}
}

func TestBlacklisted(t *testing.T) {
	t.Parallel()

	for _, r := range []rune{0x00, 0x1F, 0x7F, 0x80, 0x9F, 0xD800, 0xDFFF} {
		if !generator.Blacklisted(r) {
			t.Errorf("Blacklisted(%U) = false", r)
		}
	}

	for _, r := range []rune{0x20, 'a', 0x7E, 0xA0, 0xE000, 0x10FFFF} {
		if generator.Blacklisted(r) {
			t.Errorf("Blacklisted(%U) = true", r)
		}
	}
}

func TestSpecials(t *testing.T) {
	t.Parallel()

	if n := utf8.RuneCountInString(generator.Specials); n != 30 {
		t.Errorf("special set has %d characters, want 30", n)
	}

	for _, r := range generator.Specials {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			t.Errorf("special set contains %q", r)
		}
	}
}

func TestDeterministicSource(t *testing.T) {
	t.Parallel()

	policy := generator.Policy{Length: generator.Uint8(32), MinDigits: generator.Uint8(4), MinSpecial: generator.Uint8(4)}

	first, err := generator.New(generator.WithSource(rand.NewChaCha8([32]byte{7}))).Generate(policy)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	second, err := generator.New(generator.WithSource(rand.NewChaCha8([32]byte{7}))).Generate(policy)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if first != second {
		t.Errorf("same seed produced %q and %q", first, second)
	}
}

func TestShuffled(t *testing.T) {
	t.Parallel()

	// Without a shuffle every password would start with its digits.
	policy := generator.Policy{Length: generator.Uint8(20), MinDigits: generator.Uint8(5)}

	for range 20 {
		password, err := generator.Generate(policy)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		if count(password[:5], isDigit) != 5 {
			return
		}
	}

	t.Error("digits always lead the password")
}

func TestFailingSource(t *testing.T) {
	t.Parallel()

	_, err := generator.New(generator.WithSource(failingReader{})).Generate(generator.Policy{})
	if err == nil || errors.Is(err, generator.ErrInvalidPolicy) {
		t.Errorf("Generate() error = %v, want a random source error", err)
	}
}

func TestLoadPolicy(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "policy.jsonc")

	content := `{
	// long enough for most sites
	"length": 24,
	"min_digits": 2,
	"min_special": 2, // trailing comma follows
}`

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	policy, err := generator.LoadPolicy(path)
	if err != nil {
		t.Fatalf("LoadPolicy() error = %v", err)
	}

	if policy.Length == nil || *policy.Length != 24 || policy.MinDigits == nil || *policy.MinDigits != 2 {
		t.Errorf("LoadPolicy() = %v", policy)
	}

	if policy.MinUppercase != nil || policy.Unicode != nil {
		t.Errorf("unset fields were populated: %+v", policy)
	}

	merged := policy.Merge(generator.Policy{Length: generator.Uint8(30)})
	if *merged.Length != 30 || *merged.MinDigits != 2 {
		t.Errorf("Merge() = %v", merged)
	}
}

func TestLoadPolicyErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, err := generator.LoadPolicy(filepath.Join(dir, "missing.jsonc")); err == nil {
		t.Error("LoadPolicy() of a missing file succeeded")
	}

	path := filepath.Join(dir, "overflow.jsonc")
	if err := os.WriteFile(path, []byte(`{"length": 300}`), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := generator.LoadPolicy(path); err == nil {
		t.Error("LoadPolicy() accepted a length above 255")
	}
}

func TestEstimate(t *testing.T) {
	t.Parallel()

	weak := generator.Estimate("password")

	strong := generator.Estimate("q7#Vd!2xLp@9Rz$Kw4&m")
	if weak.Score >= strong.Score {
		t.Errorf("weak score %d >= strong score %d", weak.Score, strong.Score)
	}

	if strong.Score < 3 || strong.CrackTime == "" || strong.Entropy <= weak.Entropy {
		t.Errorf("Estimate() = %+v", strong)
	}

	if ctx := generator.Estimate("alicegithub", "alice", "github"); ctx.Score > 1 {
		t.Errorf("context words not penalized: score %d", ctx.Score)
	}
}
