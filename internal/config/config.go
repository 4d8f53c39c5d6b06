// Package config holds the command line configuration and its validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/idelchi/armorpass/internal/generator"
)

// DefaultVaultName is the vault file created in the home directory when --vault is not given.
const DefaultVaultName = ".armorpass.enc"

// Config is populated from flags and ARMORPASS_* environment variables.
type Config struct {
	// Common flags
	Vault        string `label:"--vault"         mapstructure:"vault"         validate:"required"`
	PasswordFile string `label:"--password-file" mapstructure:"password-file" validate:"omitempty,file"`
	Password     string `label:"ARMORPASS_PASSWORD" mapstructure:"password"`
	RotateIV     bool   `mapstructure:"rotate-iv"`
	Verbose      bool   `mapstructure:"verbose"`

	// Secret for store and update; generated from the policy when empty.
	Secret string `label:"--secret" mapstructure:"secret" validate:"exclusive=PolicyFile"`

	// Generation flags
	Length       uint8  `label:"--length"        mapstructure:"length"`
	MinUppercase uint8  `label:"--min-uppercase" mapstructure:"min-uppercase"`
	MinDigits    uint8  `label:"--min-digits"    mapstructure:"min-digits"`
	MinSpecial   uint8  `label:"--min-special"   mapstructure:"min-special"`
	Unicode      bool   `label:"--unicode"       mapstructure:"unicode"`
	PolicyFile   string `label:"--policy-file"   mapstructure:"policy-file"   validate:"omitempty,file"`
	Strength     bool   `mapstructure:"strength"`

	// Explicit holds the generation flags given on the command line or environment.
	// Only those override the policy file.
	Explicit map[string]bool `mapstructure:"-"`

	// Positional arguments
	Identifier string `mapstructure:"-"`
	Username   string `mapstructure:"-"`
	Pattern    string `mapstructure:"-"`
}

// DefaultVault returns the default vault location in the user's home directory.
func DefaultVault() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultVaultName
	}

	return filepath.Join(home, DefaultVaultName)
}

// Policy returns the generation policy made of the explicitly set flags.
func (c Config) Policy() generator.Policy {
	var policy generator.Policy

	if c.Explicit["length"] {
		policy.Length = generator.Uint8(c.Length)
	}

	if c.Explicit["min-uppercase"] {
		policy.MinUppercase = generator.Uint8(c.MinUppercase)
	}

	if c.Explicit["min-digits"] {
		policy.MinDigits = generator.Uint8(c.MinDigits)
	}

	if c.Explicit["min-special"] {
		policy.MinSpecial = generator.Uint8(c.MinSpecial)
	}

	if c.Explicit["unicode"] {
		policy.Unicode = generator.Bool(c.Unicode)
	}

	return policy
}

// ResolvePolicy loads the policy file, if any, and applies the explicit flags on top.
func (c Config) ResolvePolicy() (generator.Policy, error) {
	var base generator.Policy

	if c.PolicyFile != "" {
		loaded, err := generator.LoadPolicy(c.PolicyFile)
		if err != nil {
			return generator.Policy{}, fmt.Errorf("loading policy: %w", err)
		}

		base = loaded
	}

	return base.Merge(c.Policy()), nil
}
