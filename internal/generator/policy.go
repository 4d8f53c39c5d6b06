package generator

import (
	"fmt"
)

// DefaultLength is the password length used when a policy does not set one.
const DefaultLength uint8 = 20

// Policy describes the composition of a generated password.
// Unset fields take their defaults: a length of DefaultLength, no minimums and ASCII mode.
type Policy struct {
	Length       *uint8 `json:"length"`
	MinUppercase *uint8 `json:"min_uppercase"`
	MinDigits    *uint8 `json:"min_digits"`
	MinSpecial   *uint8 `json:"min_special"`
	Unicode      *bool  `json:"unicode"`
}

// Uint8 returns a pointer to v, for building policies inline.
func Uint8(v uint8) *uint8 { return &v }

// Bool returns a pointer to v, for building policies inline.
func Bool(v bool) *bool { return &v }

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}

	return *p
}

func (p Policy) length() int       { return int(valueOr(p.Length, DefaultLength)) }
func (p Policy) minUppercase() int { return int(valueOr(p.MinUppercase, 0)) }
func (p Policy) minDigits() int    { return int(valueOr(p.MinDigits, 0)) }
func (p Policy) minSpecial() int   { return int(valueOr(p.MinSpecial, 0)) }
func (p Policy) unicode() bool     { return valueOr(p.Unicode, false) }

// Validate reports whether the policy can be satisfied.
// The minimums are summed as int, so three large uint8 counts cannot wrap around.
func (p Policy) Validate() error {
	if p.length() == 0 {
		return fmt.Errorf("%w: length must be at least 1", ErrInvalidPolicy)
	}

	if sum := p.minUppercase() + p.minDigits() + p.minSpecial(); sum > p.length() {
		return fmt.Errorf("%w: minimum counts (%d) exceed length (%d)", ErrInvalidPolicy, sum, p.length())
	}

	return nil
}

// String renders the effective policy.
func (p Policy) String() string {
	if p.unicode() {
		return fmt.Sprintf("length=%d unicode", p.length())
	}

	return fmt.Sprintf("length=%d uppercase>=%d digits>=%d special>=%d",
		p.length(), p.minUppercase(), p.minDigits(), p.minSpecial())
}
