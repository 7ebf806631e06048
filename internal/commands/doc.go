// Package commands provides the command-line interface for the cryptile tool.
//
// It implements commands for:
//   - encryption
//   - decryption
//   - key checks
//   - managing the password vault
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/idelchi/cryptile/internal/config"
	"github.com/idelchi/cryptile/internal/encryption"
	"github.com/idelchi/cryptile/internal/keys"
)

// bind loads flags and CRYPTILE_* environment variables into cfg.
func bind(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		v := viper.New()
		v.SetEnvPrefix("CRYPTILE")
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		v.AutomaticEnv()

		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return fmt.Errorf("binding flags: %w", err)
		}

		if err := v.Unmarshal(cfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}

		return nil
	}
}

// preRun returns a PreRunE handler that stores positional args in cfg.Files
// and validates the configuration and the key selector.
func preRun(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		cfg.Files = args

		if err := cfg.Validate(); err != nil {
			return err
		}

		return cfg.ValidateSelector()
	}
}

// resolveKey prompts if requested and resolves the configured selector into a key.
func resolveKey(cmd *cobra.Command, cfg *config.Config) (encryption.Key, error) {
	var prompted string

	if cfg.Prompt {
		password, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), "Password: ")
		if err != nil {
			return encryption.Key{}, err
		}

		prompted = password
	}

	return keys.Resolver{VaultPath: cfg.Vault}.Resolve(cfg.Selector(prompted))
}

// normalize maps the --replace alias onto --delete.
func normalize(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "replace" {
		name = "delete"
	}

	return pflag.NormalizedName(name)
}
