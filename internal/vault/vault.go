// Package vault persists saved keys and the master key in a YAML file.
//
// The file stores derived 32-byte keys as hex, never the passwords they were derived from.
// Reads go through Load. Changes go through a Tx that is written back only by an explicit Commit.
package vault

import (
	"encoding/hex"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/idelchi/cryptile/internal/fileutil"
)

const filePerm = 0o600

var (
	// ErrUnavailable is returned when no location for the vault file can be determined.
	ErrUnavailable = errors.New("vault location unavailable")
	// ErrTxDone is returned by operations on a transaction that was already committed or rolled back.
	ErrTxDone = errors.New("transaction already finished")
	// ErrEmptyID is returned when saving a key under an empty identifier.
	ErrEmptyID = errors.New("identifier must not be empty")
)

// document is the on-disk layout.
type document struct {
	Master    string            `yaml:"master,omitempty"`
	Passwords map[string]string `yaml:"passwords,omitempty"`
}

// Vault is a read-only snapshot of the vault file.
type Vault struct {
	path string
	doc  document
}

// DefaultPath returns the vault location under the user's configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return filepath.Join(dir, "cryptile", "vault.yml"), nil
}

// Load reads the vault at path. A missing file yields an empty vault.
func Load(path string) (*Vault, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrUnavailable)
	}

	v := &Vault{path: path}

	data, err := os.ReadFile(filepath.Clean(path))
	switch {
	case errors.Is(err, os.ErrNotExist):
		return v, nil
	case err != nil:
		return nil, fmt.Errorf("reading vault %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &v.doc); err != nil {
		return nil, fmt.Errorf("parsing vault %q: %w", path, err)
	}

	if err := v.doc.validate(); err != nil {
		return nil, fmt.Errorf("vault %q: %w", path, err)
	}

	return v, nil
}

// Path returns the file the vault was loaded from.
func (v *Vault) Path() string {
	return v.path
}

// Master returns the master key, if one is set.
func (v *Vault) Master() ([]byte, bool) {
	return decode(v.doc.Master)
}

// Saved returns the key saved under id.
func (v *Vault) Saved(id string) ([]byte, bool) {
	return decode(v.doc.Passwords[id])
}

// IDs returns the saved identifiers in sorted order.
func (v *Vault) IDs() []string {
	return slices.Sorted(maps.Keys(v.doc.Passwords))
}

// Tx is a pending set of changes to a vault file.
type Tx struct {
	path string
	doc  document
	done bool
}

// Begin loads the vault at path and starts a transaction on it.
func Begin(path string) (*Tx, error) {
	v, err := Load(path)
	if err != nil {
		return nil, err
	}

	return &Tx{path: path, doc: document{Master: v.doc.Master, Passwords: maps.Clone(v.doc.Passwords)}}, nil
}

// Update runs fn inside a transaction. The changes are committed when fn succeeds and discarded otherwise.
// The transaction is finished on every return path.
func Update(path string, fn func(*Tx) error) error {
	tx, err := Begin(path)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

// SetMaster replaces the master key.
func (tx *Tx) SetMaster(key []byte) error {
	if tx.done {
		return ErrTxDone
	}

	tx.doc.Master = hex.EncodeToString(key)

	return nil
}

// Save stores key under id, replacing any previous key.
func (tx *Tx) Save(id string, key []byte) error {
	if tx.done {
		return ErrTxDone
	}

	if id == "" {
		return ErrEmptyID
	}

	if tx.doc.Passwords == nil {
		tx.doc.Passwords = make(map[string]string)
	}

	tx.doc.Passwords[id] = hex.EncodeToString(key)

	return nil
}

// Remove deletes the key saved under id and reports whether it existed.
func (tx *Tx) Remove(id string) (bool, error) {
	if tx.done {
		return false, ErrTxDone
	}

	_, ok := tx.doc.Passwords[id]
	delete(tx.doc.Passwords, id)

	return ok, nil
}

// Commit writes the changes to disk atomically and finishes the transaction.
func (tx *Tx) Commit() error {
	if tx.done {
		return ErrTxDone
	}

	tx.done = true

	data, err := yaml.Marshal(tx.doc)
	if err != nil {
		return fmt.Errorf("encoding vault: %w", err)
	}

	if err := fileutil.WriteFile(tx.path, data, filePerm); err != nil {
		return fmt.Errorf("writing vault %q: %w", tx.path, err)
	}

	return nil
}

// Rollback discards the changes. It is a no-op on a finished transaction.
func (tx *Tx) Rollback() {
	tx.done = true
}

func (d document) validate() error {
	if d.Master != "" {
		if _, err := hex.DecodeString(d.Master); err != nil {
			return fmt.Errorf("master key: %w", err)
		}
	}

	for id, key := range d.Passwords {
		if _, err := hex.DecodeString(key); err != nil {
			return fmt.Errorf("key %q: %w", id, err)
		}
	}

	return nil
}

func decode(s string) ([]byte, bool) {
	if s == "" {
		return nil, false
	}

	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, false
	}

	return key, true
}
