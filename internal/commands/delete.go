package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/armorpass/internal/config"
	"github.com/idelchi/armorpass/internal/logic"
)

// NewDeleteCommand creates a new cobra command for the delete subcommand.
func NewDeleteCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "delete identifier username",
		Aliases: []string{"rm"},
		Short:   "Delete every credential matching identifier and username",
		Args:    cobra.ExactArgs(2), //nolint:mnd // identifier and username
		PreRunE: preRun(cfg, func(args []string) {
			cfg.Identifier, cfg.Username = args[0], args[1]
		}),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.RunDelete(cfg, cmd.OutOrStdout())
		},
	}
}
