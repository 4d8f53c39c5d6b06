package logic

import (
	"fmt"
	"io"

	"github.com/idelchi/armorpass/internal/config"
	"github.com/idelchi/armorpass/internal/generator"
)

// RunGenerate prints a password generated from the resolved policy.
func RunGenerate(cfg *config.Config, out io.Writer) error {
	password, err := generate(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, password)

	if cfg.Strength {
		printStrength(out, generator.Estimate(password))
	}

	return nil
}

// secretFor returns the configured secret, or a generated one when none was set.
func secretFor(cfg *config.Config) (secret string, generated bool, err error) {
	if cfg.Secret != "" {
		return cfg.Secret, false, nil
	}

	secret, err = generate(cfg)
	if err != nil {
		return "", false, err
	}

	return secret, true, nil
}

func generate(cfg *config.Config) (string, error) {
	policy, err := cfg.ResolvePolicy()
	if err != nil {
		return "", err
	}

	password, err := generator.Generate(policy)
	if err != nil {
		return "", fmt.Errorf("generating password (%v): %w", policy, err)
	}

	return password, nil
}

func printGenerated(cfg *config.Config, out io.Writer, secret string) {
	fmt.Fprintf(out, "Generated secret: %s\n", secret)

	if cfg.Strength {
		printStrength(out, generator.Estimate(secret, cfg.Identifier, cfg.Username))
	}
}

func printStrength(out io.Writer, s generator.Strength) {
	const maxScore = 4

	fmt.Fprintf(out, "Strength: %d/%d, %.1f bits, cracked in %s\n", s.Score, maxScore, s.Entropy, s.CrackTime)
}
