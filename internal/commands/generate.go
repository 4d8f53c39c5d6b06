package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/armorpass/internal/config"
	"github.com/idelchi/armorpass/internal/logic"
)

// NewGenerateCommand creates a new cobra command for the generate subcommand.
// It does not open the vault.
func NewGenerateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate [flags]",
		Aliases: []string{"gen"},
		Short:   "Generate a password",
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg, nil),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.RunGenerate(cfg, cmd.OutOrStdout())
		},
	}

	addGenerationFlags(cmd)

	return cmd
}
