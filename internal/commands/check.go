package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/cryptile/internal/config"
	"github.com/idelchi/cryptile/internal/logic"
)

// NewCheckCommand creates a new cobra command for the check subcommand.
func NewCheckCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "check [flags] files...",
		Short:   "Check whether the key opens .cryptile files",
		Args:    cobra.ArbitraryArgs,
		PreRunE: preRun(cfg),
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := resolveKey(cmd, cfg)
			if err != nil {
				return err
			}

			return logic.RunCheck(cfg, key)
		},
	}
}
