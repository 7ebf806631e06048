package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/cryptile/internal/config"
	"github.com/idelchi/cryptile/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt [flags] files...",
		Aliases: []string{"dec"},
		Short:   "Decrypt .cryptile files",
		Args:    cobra.ArbitraryArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Decrypt = true

			return preRun(cfg)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := resolveKey(cmd, cfg)
			if err != nil {
				return err
			}

			return logic.Run(cfg, key)
		},
	}
}
