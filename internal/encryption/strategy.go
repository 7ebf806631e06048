package encryption

import (
	"fmt"
	"io"
)

// SmallFileLimit is the plaintext size from which files are routed to the large-file strategy.
const SmallFileLimit int64 = 75 << 20

// strategy moves one file body through the block pipeline.
// The size passed to encode is the plaintext size, the size passed to decode is the body size after the header.
type strategy struct {
	name   string
	encode func(r io.Reader, size int64, c BlockCipher, workers int, w io.Writer) error
	decode func(r io.Reader, size int64, c BlockCipher, workers int, w io.Writer) error
}

//nolint:gochecknoglobals
var (
	smallFile = strategy{name: "small", encode: encryptBuffered, decode: decryptBuffered}

	// largeFile is the seam for a chunked pipeline. It buffers the whole file like smallFile for now.
	largeFile = strategy{name: "large", encode: encryptBuffered, decode: decryptBuffered}
)

// route selects the strategy for a file of the given size.
func route(size, threshold int64) strategy {
	if size < threshold {
		return smallFile
	}

	return largeFile
}

// encryptBuffered reads r into memory, enciphers every block and writes the result to w.
func encryptBuffered(r io.Reader, size int64, c BlockCipher, workers int, w io.Writer) error {
	blocks, err := encodeBlocks(r, size)
	if err != nil {
		return err
	}

	if err := Transform(blocks, c, Encipher, workers); err != nil {
		return fmt.Errorf("enciphering blocks: %w", err)
	}

	return writeBlocks(blocks, w)
}

// decryptBuffered reads size bytes of cipher blocks from r, deciphers them and writes the unpadded plaintext to w.
func decryptBuffered(r io.Reader, size int64, c BlockCipher, workers int, w io.Writer) error {
	blocks, err := readBlocks(r, size/BlockSize)
	if err != nil {
		return err
	}

	if err := Transform(blocks, c, Decipher, workers); err != nil {
		return fmt.Errorf("deciphering blocks: %w", err)
	}

	return decodeBlocks(blocks, w)
}
