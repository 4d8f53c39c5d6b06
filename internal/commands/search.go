package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/armorpass/internal/config"
	"github.com/idelchi/armorpass/internal/logic"
)

// NewSearchCommand creates a new cobra command for the search subcommand.
func NewSearchCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "search pattern",
		Short: "List credentials whose identifier matches a glob pattern",
		Long: `List credentials whose identifier matches a glob pattern.
Supports * (any run), ? (one character), [...] and [!...] classes and \ escapes.`,
		Args: cobra.ExactArgs(1),
		PreRunE: preRun(cfg, func(args []string) {
			cfg.Pattern = args[0]
		}),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.RunSearch(cfg, cmd.OutOrStdout())
		},
	}
}
