package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/armorpass/internal/config"
	"github.com/idelchi/armorpass/internal/logic"
)

// NewGetCommand creates a new cobra command for the get subcommand.
func NewGetCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "get identifier username",
		Short: "Print the secret of a credential",
		Args:  cobra.ExactArgs(2), //nolint:mnd // identifier and username
		PreRunE: preRun(cfg, func(args []string) {
			cfg.Identifier, cfg.Username = args[0], args[1]
		}),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.RunGet(cfg, cmd.OutOrStdout())
		},
	}
}
