package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/armorpass/internal/config"
	"github.com/idelchi/armorpass/internal/logic"
)

// NewUpdateCommand creates a new cobra command for the update subcommand.
func NewUpdateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [flags] identifier username",
		Short: "Replace the secret of a credential",
		Long: `Replace the secret of the first credential matching identifier and username.
Without --secret (or ARMORPASS_SECRET) a password is generated from the policy flags.`,
		Args: cobra.ExactArgs(2), //nolint:mnd // identifier and username
		PreRunE: preRun(cfg, func(args []string) {
			cfg.Identifier, cfg.Username = args[0], args[1]
		}),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.RunUpdate(cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("secret", "", "New secret")
	addGenerationFlags(cmd)

	return cmd
}
