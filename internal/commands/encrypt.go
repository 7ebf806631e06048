package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/cryptile/internal/config"
	"github.com/idelchi/cryptile/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "encrypt [flags] files...",
		Aliases: []string{"enc"},
		Short:   "Encrypt files",
		Args:    cobra.ArbitraryArgs,
		PreRunE: preRun(cfg),
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := resolveKey(cmd, cfg)
			if err != nil {
				return err
			}

			return logic.Run(cfg, key)
		},
	}
}
