package encryption

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// padBlock zero-fills chunk into a Block and stores the padding length in its last byte.
// An empty chunk yields a full padding block.
func padBlock(chunk []byte) Block {
	var b Block

	copy(b[:], chunk)
	b[BlockSize-1] = byte(BlockSize - len(chunk))

	return b
}

// unpadBlock returns the data bytes of a final block.
func unpadBlock(b *Block) ([]byte, error) {
	padding := int(b[BlockSize-1])
	if padding > BlockSize {
		return nil, fmt.Errorf("%w: padding length %d exceeds block size", ErrInvalidPadding, padding)
	}

	return b[:BlockSize-padding], nil
}

// encodeBlocks reads r to the end and splits it into blocks. The final block always carries
// the padding length, so an input that is a whole number of blocks gains a full padding block.
// sizeHint presizes the buffer and may be zero.
func encodeBlocks(r io.Reader, sizeHint int64) ([]Block, error) {
	blocks := make([]Block, 0, sizeHint/BlockSize+1)

	buf, ok := bufferPool.Get().([]byte)
	if !ok {
		return nil, errors.New("invalid buffer type from pool") //nolint:err113
	}

	defer bufferPool.Put(buf) //nolint:staticcheck

	for {
		n, err := io.ReadFull(r, buf)
		whole := n - n%BlockSize

		for off := 0; off < whole; off += BlockSize {
			blocks = append(blocks, Block(buf[off:off+BlockSize]))
		}

		switch {
		case err == nil:
			continue
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return append(blocks, padBlock(buf[whole:n])), nil
		default:
			return nil, fmt.Errorf("reading input: %w", err)
		}
	}
}

// decodeBlocks writes the blocks to w, dropping the padding from the final block.
func decodeBlocks(blocks []Block, w io.Writer) error {
	if len(blocks) == 0 {
		return fmt.Errorf("%w: no blocks to decode", ErrUnexpectedEOF)
	}

	last := len(blocks) - 1

	tail, err := unpadBlock(&blocks[last])
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(w, defaultBufferSize)

	for i := range blocks[:last] {
		if _, err := bw.Write(blocks[i][:]); err != nil {
			return fmt.Errorf("writing block: %w", err)
		}
	}

	if _, err := bw.Write(tail); err != nil {
		return fmt.Errorf("writing final block: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}

	return nil
}

// readBlocks reads exactly count blocks from r.
func readBlocks(r io.Reader, count int64) ([]Block, error) {
	blocks := make([]Block, count)
	br := bufio.NewReaderSize(r, defaultBufferSize)

	for i := range blocks {
		if _, err := io.ReadFull(br, blocks[i][:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: block %d of %d is missing", ErrUnexpectedEOF, i, count)
			}

			return nil, fmt.Errorf("reading block %d: %w", i, err)
		}
	}

	return blocks, nil
}

// writeBlocks writes every block to w unchanged.
func writeBlocks(blocks []Block, w io.Writer) error {
	bw := bufio.NewWriterSize(w, defaultBufferSize)

	for i := range blocks {
		if _, err := bw.Write(blocks[i][:]); err != nil {
			return fmt.Errorf("writing block: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}

	return nil
}
