// Package config holds the command-line configuration.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/idelchi/cryptile/internal/keys"
)

// ErrKeySelector is returned when the number of key selectors given is not exactly one.
var ErrKeySelector = errors.New("exactly one of --key, --password, --prompt, --saved or --master is required")

// Config holds the settings shared by all commands.
type Config struct {
	// Key selectors
	Key      string `mapstructure:"key"      validate:"omitempty,hexadecimal,len=64"`
	Password string `mapstructure:"password"`
	Prompt   bool   `mapstructure:"prompt"`
	Saved    string `mapstructure:"saved"`
	Master   bool   `mapstructure:"master"`

	// Vault file, empty for the default location
	Vault string `mapstructure:"vault"`

	// Processing
	Parallel           int    `mapstructure:"parallel" validate:"min=1"`
	Workers            int    `mapstructure:"workers"  validate:"min=0"`
	Delete             bool   `mapstructure:"delete"`
	PreserveTimestamps bool   `mapstructure:"preserve-timestamps"`
	FilesFrom          string `mapstructure:"files-from" validate:"omitempty,file"`

	// Output
	Quiet   bool `mapstructure:"quiet"`
	Stats   bool `mapstructure:"stats"`
	Verbose bool `mapstructure:"verbose"`

	// Set by the command
	Decrypt bool `mapstructure:"-"`

	// Positional arguments
	Files []string `mapstructure:"-"`
}

// Validate validates the configuration against the struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	if len(c.Files) == 0 && c.FilesFrom == "" {
		return errors.New("no files given")
	}

	return nil
}

// ValidateSelector checks that exactly one key selector is set.
func (c *Config) ValidateSelector() error {
	var count int

	for _, set := range []bool{c.Key != "", c.Password != "", c.Prompt, c.Saved != "", c.Master} {
		if set {
			count++
		}
	}

	if count != 1 {
		return ErrKeySelector
	}

	return nil
}

// Selector returns the key selector named by the flags. A prompted password must be
// supplied by the caller, since reading the terminal is not the configuration's job.
func (c *Config) Selector(prompted string) keys.Selector {
	switch {
	case c.Key != "":
		return keys.Hex(c.Key)
	case c.Password != "":
		return keys.Password(c.Password)
	case c.Prompt:
		return keys.Password(prompted)
	case c.Saved != "":
		return keys.Saved(c.Saved)
	case c.Master:
		return keys.Master()
	default:
		return keys.Selector{}
	}
}
