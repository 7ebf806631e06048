package vault_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/cryptile/internal/vault"
)

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	v, err := vault.Load(filepath.Join(t.TempDir(), "vault.yml"))
	require.NoError(t, err)

	_, ok := v.Master()
	assert.False(t, ok)
	assert.Empty(t, v.IDs())
}

func TestLoadEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := vault.Load("")
	require.ErrorIs(t, err, vault.ErrUnavailable)
}

func TestUpdateCommits(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "vault.yml")
	master := []byte{1, 2, 3}
	work := []byte{4, 5, 6}

	err := vault.Update(path, func(tx *vault.Tx) error {
		require.NoError(t, tx.SetMaster(master))
		require.NoError(t, tx.Save("work", work))
		require.NoError(t, tx.Save("home", []byte{7}))

		return nil
	})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	v, err := vault.Load(path)
	require.NoError(t, err)

	got, ok := v.Master()
	require.True(t, ok)
	assert.Equal(t, master, got)

	got, ok = v.Saved("work")
	require.True(t, ok)
	assert.Equal(t, work, got)

	assert.Equal(t, []string{"home", "work"}, v.IDs())
}

func TestUpdateRollsBackOnError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vault.yml")

	require.NoError(t, vault.Update(path, func(tx *vault.Tx) error {
		return tx.Save("keep", []byte{1})
	}))

	boom := errors.New("boom")

	err := vault.Update(path, func(tx *vault.Tx) error {
		if _, err := tx.Remove("keep"); err != nil {
			return err
		}

		require.NoError(t, tx.Save("lost", []byte{2}))

		return boom
	})
	require.ErrorIs(t, err, boom)

	v, err := vault.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, v.IDs())
}

func TestTxFinishedRejectsChanges(t *testing.T) {
	t.Parallel()

	tx, err := vault.Begin(filepath.Join(t.TempDir(), "vault.yml"))
	require.NoError(t, err)

	require.NoError(t, tx.Commit())

	require.ErrorIs(t, tx.Commit(), vault.ErrTxDone)
	require.ErrorIs(t, tx.Save("id", []byte{1}), vault.ErrTxDone)
	require.ErrorIs(t, tx.SetMaster([]byte{1}), vault.ErrTxDone)

	_, err = tx.Remove("id")
	require.ErrorIs(t, err, vault.ErrTxDone)
}

func TestSaveEmptyID(t *testing.T) {
	t.Parallel()

	tx, err := vault.Begin(filepath.Join(t.TempDir(), "vault.yml"))
	require.NoError(t, err)

	defer tx.Rollback()

	require.ErrorIs(t, tx.Save("", []byte{1}), vault.ErrEmptyID)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vault.yml")

	require.NoError(t, vault.Update(path, func(tx *vault.Tx) error {
		return tx.Save("gone", []byte{1})
	}))

	require.NoError(t, vault.Update(path, func(tx *vault.Tx) error {
		removed, err := tx.Remove("gone")
		assert.True(t, removed)

		return err
	}))

	v, err := vault.Load(path)
	require.NoError(t, err)

	_, ok := v.Saved("gone")
	assert.False(t, ok)
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("passwords:\n  work: not-hex\n"), 0o600))

	_, err := vault.Load(bad)
	require.Error(t, err)

	garbage := filepath.Join(dir, "garbage.yml")
	require.NoError(t, os.WriteFile(garbage, []byte("master: [unterminated"), 0o600))

	_, err = vault.Load(garbage)
	require.Error(t, err)
}
