package encryption

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned when a decrypt target does not carry the container suffix.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrInvalidKey is returned when the key fingerprint stored in the header does not match the key.
	ErrInvalidKey = errors.New("invalid key")
	// ErrInvalidPadding is returned when the padding length of the final block exceeds the block size.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrUnexpectedEOF is returned when the header or the block sequence of a container is truncated.
	ErrUnexpectedEOF = errors.New("unexpected end of stream")
	// ErrWorkerFailure is returned when one or more parallel block jobs failed.
	ErrWorkerFailure = errors.New("block worker failure")
)

// IOError records a failed file operation and the path it was performed on.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func ioError(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}
