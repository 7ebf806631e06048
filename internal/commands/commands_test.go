package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/cryptile/internal/commands"
	"github.com/idelchi/cryptile/internal/config"
	"github.com/idelchi/cryptile/internal/encryption"
	"github.com/idelchi/cryptile/internal/keys"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := commands.NewRootCommand(&config.Config{}, "test")

	var out bytes.Buffer

	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)

	err := root.Execute()

	return out.String(), err
}

func TestEncryptDecryptWithPassword(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	_, err := execute(t, "", "encrypt", "-q", "-p", "pw", "--replace", path)
	require.NoError(t, err)
	assert.NoFileExists(t, path)

	_, err = execute(t, "", "check", "-q", "-p", "pw", path+encryption.Suffix)
	require.NoError(t, err)

	_, err = execute(t, "", "decrypt", "-q", "-p", "nope", path+encryption.Suffix)
	require.ErrorIs(t, err, encryption.ErrInvalidKey)

	_, err = execute(t, "", "dec", "-q", "-p", "pw", path+encryption.Suffix)
	require.NoError(t, err)

	data, err := os.ReadFile(path) //nolint:gosec // test reads files it created
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestPromptedPassword(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("prompted"), 0o600))

	_, err := execute(t, "typed\n", "encrypt", "-q", "--prompt", path)
	require.NoError(t, err)

	ok, err := encryption.IsCorrectKey(path+encryption.Suffix, keys.FromPassword("typed"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestKeySelectorRequired(t *testing.T) {
	_, err := execute(t, "", "encrypt", "some-file")
	require.ErrorIs(t, err, config.ErrKeySelector)

	_, err = execute(t, "", "encrypt", "-p", "a", "-m", "some-file")
	require.ErrorIs(t, err, config.ErrKeySelector)
}

func TestVaultCommands(t *testing.T) {
	dir := t.TempDir()
	vaultPath := filepath.Join(dir, "vault.yml")
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("vaulted"), 0o600))

	_, err := execute(t, "", "encrypt", "-q", "--vault", vaultPath, "--master", path)
	require.ErrorIs(t, err, keys.ErrNoMasterPassword)

	_, err = execute(t, "m1\nm1\n", "set", "master", "-q", "--vault", vaultPath)
	require.NoError(t, err)

	_, err = execute(t, "", "set", "password", "work", "-q", "--vault", vaultPath, "-p", "w1")
	require.NoError(t, err)

	_, err = execute(t, "a\nb\n", "set", "password", "home", "--vault", vaultPath)
	require.Error(t, err)

	out, err := execute(t, "", "list", "--vault", vaultPath)
	require.NoError(t, err)
	assert.Equal(t, "(master)\nwork\n", out)

	_, err = execute(t, "", "encrypt", "-q", "--vault", vaultPath, "-s", "work", path)
	require.NoError(t, err)

	ok, err := encryption.IsCorrectKey(path+encryption.Suffix, keys.FromPassword("w1"))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = execute(t, "", "check", "-q", "--vault", vaultPath, "-m", path+encryption.Suffix)
	require.ErrorIs(t, err, encryption.ErrInvalidKey)

	_, err = execute(t, "", "unset", "work", "--vault", vaultPath)
	require.NoError(t, err)

	_, err = execute(t, "", "unset", "work", "--vault", vaultPath)
	require.ErrorIs(t, err, keys.ErrNoSavedPassword)

	_, err = execute(t, "", "check", "-q", "--vault", vaultPath, "-s", "work", path+encryption.Suffix)
	require.ErrorIs(t, err, keys.ErrNoSavedPassword)
}
