package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"fmt"
)

const (
	// KeySize is the size of an encryption key in bytes.
	KeySize = 32
	// BlockSize is the width of a single cipher block in bytes.
	BlockSize = aes.BlockSize
)

// Key is a 256-bit encryption key.
type Key [KeySize]byte

// Fingerprint is the one-way hash of a Key stored in the container header.
type Fingerprint [sha256.Size]byte

// Block is the atomic unit of cipher work.
type Block [BlockSize]byte

// FingerprintOf returns the fingerprint of key.
func FingerprintOf(key Key) Fingerprint {
	return sha256.Sum256(key[:])
}

// BlockCipher transforms single blocks in place. Implementations must be safe for concurrent use.
type BlockCipher interface {
	EncryptBlock(b *Block)
	DecryptBlock(b *Block)
}

// Cipher is a keyed AES-256 block transform. It holds no mutable state and may be shared between goroutines.
type Cipher struct {
	block cipher.Block
}

// NewCipher creates a Cipher keyed by key.
func NewCipher(key Key) (*Cipher, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	return &Cipher{block: block}, nil
}

// EncryptBlock enciphers b in place.
func (c *Cipher) EncryptBlock(b *Block) {
	c.block.Encrypt(b[:], b[:])
}

// DecryptBlock deciphers b in place.
func (c *Cipher) DecryptBlock(b *Block) {
	c.block.Decrypt(b[:], b[:])
}

// Direction selects which half of a BlockCipher a transform applies.
type Direction byte

const (
	// Encipher applies BlockCipher.EncryptBlock.
	Encipher Direction = iota
	// Decipher applies BlockCipher.DecryptBlock.
	Decipher
)

func (d Direction) String() string {
	switch d {
	case Encipher:
		return "encipher"
	case Decipher:
		return "decipher"
	default:
		return fmt.Sprintf("direction(%d)", byte(d))
	}
}

func (d Direction) apply(c BlockCipher, b *Block) {
	if d == Decipher {
		c.DecryptBlock(b)

		return
	}

	c.EncryptBlock(b)
}
