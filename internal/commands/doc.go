// Package commands provides the command-line interface for the armorpass tool.
//
// It implements commands for:
//   - storing, retrieving, updating and deleting credentials
//   - listing and searching identifiers
//   - generating passwords
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"

	"github.com/idelchi/armorpass/internal/config"
	"github.com/idelchi/armorpass/internal/generator"
)

// preRun returns a PreRunE handler that stores the positional args through assign
// and validates the configuration.
func preRun(cfg *config.Config, assign func(args []string)) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		if assign != nil {
			assign(args)
		}

		return cobraext.Validate(cfg, cfg)
	}
}

// addGenerationFlags registers the password policy flags.
func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().Uint8("length", generator.DefaultLength, "Length of the generated password")
	cmd.Flags().Uint8("min-uppercase", 0, "Minimum number of uppercase letters")
	cmd.Flags().Uint8("min-digits", 0, "Minimum number of digits")
	cmd.Flags().Uint8("min-special", 0, "Minimum number of special characters")
	cmd.Flags().Bool("unicode", false, "Draw every character from the whole Unicode range, ignoring the minimums")
	cmd.Flags().String("policy-file", "", "JSON file (comments allowed) with the policy; flags override its values")
	cmd.Flags().Bool("strength", false, "Print a strength estimate of the generated password")
}
