package generator

import (
	"github.com/nbutton23/zxcvbn-go"
)

// Strength is a zxcvbn estimate for a password.
type Strength struct {
	// Score ranges from 0 (guessable) to 4 (very unguessable).
	Score int
	// Entropy in bits.
	Entropy float64
	// CrackTime is a human readable offline cracking time, e.g. "centuries".
	CrackTime string
}

// Estimate rates password. Context words such as the identifier and username
// are penalized when they appear in the password.
func Estimate(password string, context ...string) Strength {
	match := zxcvbn.PasswordStrength(password, context)

	return Strength{
		Score:     match.Score,
		Entropy:   match.Entropy,
		CrackTime: match.CrackTimeDisplay,
	}
}
