package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/cryptile/internal/config"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "cryptile [flags] command [flags]",
		Short: "File encryption utility",
		Long: `Encrypts and decrypts files with AES-256 into .cryptile containers.
Keys are given as hex, derived from a password, or taken from the password vault.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: bind(cfg),
	}

	flags := root.PersistentFlags()

	flags.StringP("key", "k", "", "Encryption key (32 bytes, hex-encoded)")
	flags.StringP("password", "p", "", "Password to derive the key from")
	flags.Bool("prompt", false, "Read the password from the terminal")
	flags.StringP("saved", "s", "", "Use the key saved under this identifier")
	flags.BoolP("master", "m", false, "Use the master key")
	flags.String("vault", "", "Path to the password vault, defaults to the user config directory")

	flags.IntP("parallel", "j", 1, "Number of files processed at once")
	flags.IntP("workers", "w", 0, "Number of block workers per file, 0 for the number of CPUs")
	flags.BoolP("delete", "d", false, "Delete the original file after successful encryption/decryption")
	flags.Bool("preserve-timestamps", false, "Copy the modification time of the input to the output")
	flags.String("files-from", "", "JSONC file with an array of additional files to process")

	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.Bool("stats", false, "Print statistics after processing")
	flags.BoolP("verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		NewEncryptCommand(cfg),
		NewDecryptCommand(cfg),
		NewCheckCommand(cfg),
		NewSetCommand(cfg),
		NewUnsetCommand(cfg),
		NewListCommand(cfg),
	)

	root.SetGlobalNormalizationFunc(normalize)

	return root
}
