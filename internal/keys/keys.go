// Package keys resolves a key selector into the 32-byte key used by the encryption package.
package keys

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/idelchi/gogen/pkg/key"

	"github.com/idelchi/cryptile/internal/encryption"
	"github.com/idelchi/cryptile/internal/vault"
)

var (
	// ErrNoSavedPassword is returned when no key is saved under the requested identifier.
	ErrNoSavedPassword = errors.New("no saved password")
	// ErrNoMasterPassword is returned when the master role is requested but not set.
	ErrNoMasterPassword = errors.New("no master password")
	// ErrConfigUnavailable is returned when the vault cannot be located or read.
	ErrConfigUnavailable = errors.New("password config unavailable")
	// ErrInvalidKey is returned when key material does not decode to 32 bytes.
	ErrInvalidKey = errors.New("invalid key material")
	// ErrNoSelector is returned when resolving an empty selector.
	ErrNoSelector = errors.New("no key selector")
)

// Kind tells which source a Selector draws its key from.
type Kind int

const (
	// None is the zero Kind.
	None Kind = iota
	// HexKind carries a hex-encoded 32-byte key.
	HexKind
	// PasswordKind carries a password, hashed into a key.
	PasswordKind
	// SavedKind carries the identifier of a key saved in the vault.
	SavedKind
	// MasterKind selects the master key from the vault.
	MasterKind
)

func (k Kind) String() string {
	switch k {
	case HexKind:
		return "hex key"
	case PasswordKind:
		return "password"
	case SavedKind:
		return "saved password"
	case MasterKind:
		return "master password"
	default:
		return "none"
	}
}

// Selector names the source of a key.
type Selector struct {
	Kind  Kind
	Value string
}

// Hex selects a hex-encoded key.
func Hex(s string) Selector { return Selector{Kind: HexKind, Value: s} }

// Password selects the key derived from a password.
func Password(p string) Selector { return Selector{Kind: PasswordKind, Value: p} }

// Saved selects the key saved under id.
func Saved(id string) Selector { return Selector{Kind: SavedKind, Value: id} }

// Master selects the master key.
func Master() Selector { return Selector{Kind: MasterKind} }

// FromPassword derives a key as the SHA-256 hash of the password.
func FromPassword(password string) encryption.Key {
	return sha256.Sum256([]byte(password))
}

// Resolver turns selectors into keys. The vault is only read for saved and master selectors.
type Resolver struct {
	// VaultPath is the vault file. When empty, vault.DefaultPath is used.
	VaultPath string
}

// Resolve returns the key named by sel.
func (r Resolver) Resolve(sel Selector) (encryption.Key, error) {
	switch sel.Kind {
	case HexKind:
		raw, err := key.FromHex(sel.Value)
		if err != nil {
			return encryption.Key{}, fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}

		return toKey(raw)
	case PasswordKind:
		return FromPassword(sel.Value), nil
	case SavedKind:
		v, err := r.vault()
		if err != nil {
			return encryption.Key{}, err
		}

		raw, ok := v.Saved(sel.Value)
		if !ok {
			return encryption.Key{}, fmt.Errorf("%w: %q", ErrNoSavedPassword, sel.Value)
		}

		return toKey(raw)
	case MasterKind:
		v, err := r.vault()
		if err != nil {
			return encryption.Key{}, err
		}

		raw, ok := v.Master()
		if !ok {
			return encryption.Key{}, ErrNoMasterPassword
		}

		return toKey(raw)
	default:
		return encryption.Key{}, ErrNoSelector
	}
}

// Path returns the vault file the resolver reads.
func (r Resolver) Path() (string, error) {
	if r.VaultPath != "" {
		return r.VaultPath, nil
	}

	path, err := vault.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConfigUnavailable, err)
	}

	return path, nil
}

func (r Resolver) vault() (*vault.Vault, error) {
	path, err := r.Path()
	if err != nil {
		return nil, err
	}

	v, err := vault.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigUnavailable, err)
	}

	return v, nil
}

func toKey(raw []byte) (encryption.Key, error) {
	var k encryption.Key

	if len(raw) != len(k) {
		return k, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKey, len(raw), len(k))
	}

	copy(k[:], raw)

	return k, nil
}
