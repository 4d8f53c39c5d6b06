package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/armorpass/internal/config"
	"github.com/idelchi/armorpass/internal/logic"
)

// NewStoreCommand creates a new cobra command for the store subcommand.
func NewStoreCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "store [flags] identifier username",
		Aliases: []string{"add"},
		Short:   "Store a new credential",
		Long: `Store a new credential under identifier and username.
Without --secret (or ARMORPASS_SECRET) a password is generated from the policy flags.`,
		Args: cobra.ExactArgs(2), //nolint:mnd // identifier and username
		PreRunE: preRun(cfg, func(args []string) {
			cfg.Identifier, cfg.Username = args[0], args[1]
		}),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.RunStore(cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("secret", "", "Secret to store")
	addGenerationFlags(cmd)

	return cmd
}
