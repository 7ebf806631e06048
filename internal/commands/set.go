package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idelchi/cryptile/internal/config"
	"github.com/idelchi/cryptile/internal/keys"
	"github.com/idelchi/cryptile/internal/vault"
)

// NewSetCommand creates the set command with its master and password subcommands.
func NewSetCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store keys in the password vault",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "master",
			Short: "Set the master password",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return storeKey(cmd, cfg, func(tx *vault.Tx, key []byte) error {
					return tx.SetMaster(key)
				})
			},
		},
		&cobra.Command{
			Use:   "password <identifier>",
			Short: "Save a password under an identifier",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return storeKey(cmd, cfg, func(tx *vault.Tx, key []byte) error {
					return tx.Save(args[0], key)
				})
			},
		},
	)

	return cmd
}

// NewUnsetCommand creates a command that removes a saved password.
func NewUnsetCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <identifier>",
		Short: "Remove a saved password",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path, err := keys.Resolver{VaultPath: cfg.Vault}.Path()
			if err != nil {
				return err
			}

			return vault.Update(path, func(tx *vault.Tx) error {
				removed, err := tx.Remove(args[0])
				if err != nil {
					return err
				}

				if !removed {
					return fmt.Errorf("%w: %q", keys.ErrNoSavedPassword, args[0])
				}

				return nil
			})
		},
	}
}

// NewListCommand creates a command that lists the saved identifiers.
func NewListCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved password identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := keys.Resolver{VaultPath: cfg.Vault}.Path()
			if err != nil {
				return err
			}

			v, err := vault.Load(path)
			if err != nil {
				return fmt.Errorf("%w: %w", keys.ErrConfigUnavailable, err)
			}

			if _, ok := v.Master(); ok {
				fmt.Fprintln(cmd.OutOrStdout(), "(master)")
			}

			for _, id := range v.IDs() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}

			return nil
		},
	}
}

// storeKey derives a key from the new password and stores it with apply inside a vault transaction.
func storeKey(cmd *cobra.Command, cfg *config.Config, apply func(*vault.Tx, []byte) error) error {
	if cfg.Key != "" || cfg.Saved != "" || cfg.Master {
		return errors.New("set only accepts --password or a prompted password")
	}

	path, err := keys.Resolver{VaultPath: cfg.Vault}.Path()
	if err != nil {
		return err
	}

	password, err := newPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), cfg.Password)
	if err != nil {
		return err
	}

	key := keys.FromPassword(password)

	if err := vault.Update(path, func(tx *vault.Tx) error {
		return apply(tx, key[:])
	}); err != nil {
		return err
	}

	if !cfg.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved to %q\n", path)
	}

	return nil
}
