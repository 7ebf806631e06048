package encryption

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
)

// HeaderSize is the size of the enciphered fingerprint at the start of a container.
const HeaderSize = len(Fingerprint{})

// writeHeader enciphers the fingerprint as two independent blocks and writes them to w.
func writeHeader(fp Fingerprint, c BlockCipher, w io.Writer) error {
	var first, second Block

	copy(first[:], fp[:BlockSize])
	copy(second[:], fp[BlockSize:])

	c.EncryptBlock(&first)
	c.EncryptBlock(&second)

	header := make([]byte, 0, HeaderSize)
	header = append(header, first[:]...)
	header = append(header, second[:]...)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	return nil
}

// readHeader reads the 32-byte header from r and deciphers the stored fingerprint.
func readHeader(c BlockCipher, r io.Reader) (Fingerprint, error) {
	var (
		fp            Fingerprint
		first, second Block
	)

	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fp, fmt.Errorf("%w: header is shorter than %d bytes", ErrUnexpectedEOF, HeaderSize)
		}

		return fp, fmt.Errorf("reading header: %w", err)
	}

	copy(first[:], header[:BlockSize])
	copy(second[:], header[BlockSize:])

	c.DecryptBlock(&first)
	c.DecryptBlock(&second)

	copy(fp[:BlockSize], first[:])
	copy(fp[BlockSize:], second[:])

	return fp, nil
}

// verify reports ErrInvalidKey unless stored is the fingerprint of key.
func verify(key Key, stored Fingerprint) error {
	expected := FingerprintOf(key)

	if subtle.ConstantTimeCompare(expected[:], stored[:]) != 1 {
		return ErrInvalidKey
	}

	return nil
}
