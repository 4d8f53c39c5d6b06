package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/armorpass/internal/config"
	"github.com/idelchi/armorpass/internal/logic"
)

// NewListCommand creates a new cobra command for the list subcommand.
func NewListCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "list [identifier]",
		Aliases: []string{"ls"},
		Short:   "List identifiers, or the credentials under one identifier",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: preRun(cfg, func(args []string) {
			if len(args) == 1 {
				cfg.Identifier = args[0]
			}
		}),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.RunList(cfg, cmd.OutOrStdout())
		},
	}
}
