package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/cryptile/internal/config"
	"github.com/idelchi/cryptile/internal/keys"
)

func valid() *config.Config {
	return &config.Config{Password: "secret", Parallel: 1, Files: []string{"a.txt"}}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{name: "hex key", mutate: func(c *config.Config) { c.Key = strings.Repeat("ab", 32) }},
		{name: "short hex key", mutate: func(c *config.Config) { c.Key = "abcd" }, wantErr: true},
		{name: "non-hex key", mutate: func(c *config.Config) { c.Key = strings.Repeat("zz", 32) }, wantErr: true},
		{name: "zero parallel", mutate: func(c *config.Config) { c.Parallel = 0 }, wantErr: true},
		{name: "negative workers", mutate: func(c *config.Config) { c.Workers = -1 }, wantErr: true},
		{name: "no files", mutate: func(c *config.Config) { c.Files = nil }, wantErr: true},
		{name: "missing files-from", mutate: func(c *config.Config) { c.FilesFrom = "/does/not/exist.jsonc" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateSelector(t *testing.T) {
	t.Parallel()

	cfg := valid()
	require.NoError(t, cfg.ValidateSelector())

	cfg.Master = true
	require.ErrorIs(t, cfg.ValidateSelector(), config.ErrKeySelector)

	require.ErrorIs(t, (&config.Config{}).ValidateSelector(), config.ErrKeySelector)
}

func TestSelector(t *testing.T) {
	t.Parallel()

	assert.Equal(t, keys.Hex("ab"), (&config.Config{Key: "ab"}).Selector(""))
	assert.Equal(t, keys.Password("pw"), (&config.Config{Password: "pw"}).Selector(""))
	assert.Equal(t, keys.Password("typed"), (&config.Config{Prompt: true}).Selector("typed"))
	assert.Equal(t, keys.Saved("work"), (&config.Config{Saved: "work"}).Selector(""))
	assert.Equal(t, keys.Master(), (&config.Config{Master: true}).Selector(""))
	assert.Equal(t, keys.Selector{}, (&config.Config{}).Selector(""))
}
