package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/armorpass/internal/config"
	"github.com/idelchi/armorpass/internal/logic"
)

// NewInfoCommand creates a new cobra command for the info subcommand.
func NewInfoCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "info",
		Short:   "Show the vault location, size and record count",
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg, nil),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.RunInfo(cfg, cmd.OutOrStdout())
		},
	}
}
