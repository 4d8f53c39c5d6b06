package generator

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// Specials is the fixed set special characters are drawn from.
const Specials = `!@#$%^&*()_+-={}[]|\:;'"<>,.?/`

const (
	printableFirst = 33
	printableLast  = 126
	maxCodePoint   = 0x10FFFF
)

// Generator draws passwords from a random source.
type Generator struct {
	source io.Reader
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource replaces crypto/rand as the random source.
func WithSource(r io.Reader) Option {
	return func(g *Generator) {
		g.source = r
	}
}

// New returns a Generator reading from crypto/rand unless configured otherwise.
func New(opts ...Option) *Generator {
	g := &Generator{source: rand.Reader}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate returns a password satisfying policy, using crypto/rand.
func Generate(policy Policy) (string, error) {
	return New().Generate(policy)
}

// Generate returns a password satisfying policy.
// The policy is validated before any randomness is consumed.
func (g *Generator) Generate(policy Policy) (string, error) {
	if err := policy.Validate(); err != nil {
		return "", err
	}

	var (
		runes []rune
		err   error
	)

	if policy.unicode() {
		runes, err = g.unicodeRunes(policy.length())
	} else {
		runes, err = g.asciiRunes(policy)
	}

	if err != nil {
		return "", fmt.Errorf("generating password: %w", err)
	}

	return string(runes), nil
}

func (g *Generator) asciiRunes(policy Policy) ([]rune, error) {
	runes := make([]rune, 0, policy.length())

	classes := []struct {
		count int
		pick  func() (rune, error)
	}{
		{policy.minDigits(), func() (rune, error) { return g.between('0', '9') }},
		{policy.minSpecial(), func() (rune, error) { return g.from(Specials) }},
		{policy.minUppercase(), func() (rune, error) { return g.between('A', 'Z') }},
		{policy.length() - policy.minDigits() - policy.minSpecial() - policy.minUppercase(), func() (rune, error) {
			return g.between(printableFirst, printableLast)
		}},
	}

	for _, class := range classes {
		for range class.count {
			r, err := class.pick()
			if err != nil {
				return nil, err
			}

			runes = append(runes, r)
		}
	}

	if err := g.shuffle(runes); err != nil {
		return nil, err
	}

	return runes, nil
}

func (g *Generator) unicodeRunes(length int) ([]rune, error) {
	runes := make([]rune, 0, length)

	for len(runes) < length {
		r, err := g.between(0, maxCodePoint)
		if err != nil {
			return nil, err
		}

		if Blacklisted(r) {
			continue
		}

		runes = append(runes, r)
	}

	return runes, nil
}

// Blacklisted reports whether r is never emitted in Unicode mode.
// Surrogates are excluded because they are not scalar values.
func Blacklisted(r rune) bool {
	switch {
	case r <= 0x1F, r == 0x7F, r >= 0x80 && r <= 0x9F:
		return true
	case r >= 0xD800 && r <= 0xDFFF:
		return true
	default:
		return false
	}
}

// between returns a uniformly drawn rune in [lo, hi].
func (g *Generator) between(lo, hi rune) (rune, error) {
	n, err := g.intn(int64(hi - lo + 1))
	if err != nil {
		return 0, err
	}

	return lo + rune(n), nil
}

func (g *Generator) from(set string) (rune, error) {
	n, err := g.intn(int64(len(set)))
	if err != nil {
		return 0, err
	}

	return rune(set[n]), nil
}

// shuffle permutes runes uniformly (Fisher-Yates).
func (g *Generator) shuffle(runes []rune) error {
	for i := len(runes) - 1; i > 0; i-- {
		j, err := g.intn(int64(i + 1))
		if err != nil {
			return err
		}

		runes[i], runes[j] = runes[j], runes[i]
	}

	return nil
}

func (g *Generator) intn(n int64) (int64, error) {
	v, err := rand.Int(g.source, big.NewInt(n))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}

	return v.Int64(), nil
}

