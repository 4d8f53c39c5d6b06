package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gogen/pkg/cobraext"

	"github.com/idelchi/armorpass/internal/config"
)

// generationKeys are the policy settings that override a policy file only when given explicitly.
//
//nolint:gochecknoglobals // fixed list of flag names
var generationKeys = []string{"length", "min-uppercase", "min-digits", "min-special", "unicode"}

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "armorpass [flags] command [flags]"
	root.Short = "Encrypted local credential vault"
	root.Long = `A local, single-user credential vault.
Credentials are kept in one file encrypted with a key derived from a master password.
The master password is read from ARMORPASS_PASSWORD, --password-file or the terminal.`

	root.SilenceUsage = true
	root.SilenceErrors = true

	root.PersistentFlags().String("vault", config.DefaultVault(), "Path to the vault file")
	root.PersistentFlags().String("password-file", "", "Path to a file holding the master password")
	root.PersistentFlags().Bool("rotate-iv", false, "Draw a fresh IV on every save instead of reusing the vault's IV")
	root.PersistentFlags().Bool("verbose", false, "Log diagnostics to stderr")

	settings := viper.New()

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return bind(settings, cmd, cfg)
	}

	root.AddCommand(
		NewStoreCommand(cfg),
		NewGetCommand(cfg),
		NewListCommand(cfg),
		NewSearchCommand(cfg),
		NewUpdateCommand(cfg),
		NewDeleteCommand(cfg),
		NewGenerateCommand(cfg),
		NewInfoCommand(cfg),
	)

	return root
}

// bind loads flags and ARMORPASS_* environment variables into cfg.
func bind(settings *viper.Viper, cmd *cobra.Command, cfg *config.Config) error {
	settings.SetEnvPrefix("armorpass")
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()

	if err := settings.BindEnv("password"); err != nil {
		return fmt.Errorf("binding environment: %w", err)
	}

	if err := settings.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if err := settings.Unmarshal(cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	cfg.Explicit = make(map[string]bool, len(generationKeys))

	for _, key := range generationKeys {
		cfg.Explicit[key] = settings.IsSet(key)
	}

	return nil
}
