package encryption

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/idelchi/cryptile/internal/fileutil"
)

// Suffix is the file name suffix of containers.
const Suffix = ".cryptile"

// Options configures a Processor. The zero value is usable.
type Options struct {
	// Workers is the number of block workers per file, DefaultWorkers when below one.
	Workers int

	// Threshold is the plaintext size routed to the large-file strategy, SmallFileLimit when zero.
	Threshold int64

	// PreserveTimestamps copies the modification time of the source to the output.
	PreserveTimestamps bool

	// Logger receives diagnostic output. Nothing is logged when nil.
	Logger *logrus.Logger
}

// Processor encrypts and decrypts files into containers.
// It holds no per-file state and may be used from several goroutines, as long as they work on different files.
type Processor struct {
	// opts contains the resolved options
	opts Options

	// log is never nil
	log *logrus.Logger
}

// NewProcessor creates a Processor with the given options.
func NewProcessor(opts Options) *Processor {
	if opts.Threshold <= 0 {
		opts.Threshold = SmallFileLimit
	}

	log := opts.Logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	return &Processor{opts: opts, log: log}
}

// Encrypt encrypts the file at path into <path>.cryptile using the package defaults.
func Encrypt(path string, key Key) (Result, error) {
	return NewProcessor(Options{}).Encrypt(path, key)
}

// Decrypt decrypts the container at path into path with the suffix removed using the package defaults.
func Decrypt(path string, key Key) (Result, error) {
	return NewProcessor(Options{}).Decrypt(path, key)
}

// IsCorrectKey reports whether key is the key the container at path was encrypted with.
func IsCorrectKey(path string, key Key) (bool, error) {
	return NewProcessor(Options{}).IsCorrectKey(path, key)
}

// EncryptedPath returns the container path for a plaintext path.
func EncryptedPath(path string) string {
	return path + Suffix
}

// DecryptedPath returns the plaintext path for a container path.
// It fails with ErrUnsupportedFormat when path does not end with the suffix or nothing remains after stripping it.
func DecryptedPath(path string) (string, error) {
	if !strings.HasSuffix(path, Suffix) {
		return "", fmt.Errorf("%w: %q does not end with %q", ErrUnsupportedFormat, path, Suffix)
	}

	out := strings.TrimSuffix(path, Suffix)
	if out == "" || strings.HasSuffix(out, "/") || strings.HasSuffix(out, string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q has no name besides the suffix", ErrUnsupportedFormat, path)
	}

	return out, nil
}

// Encrypt writes the container for the file at path to EncryptedPath(path).
// The source file is left in place. On failure, no output file is created.
func (p *Processor) Encrypt(path string, key Key) (res Result, err error) {
	res = Result{Input: path, Output: EncryptedPath(path)}

	cipher, err := NewCipher(key)
	if err != nil {
		return res, err
	}

	inFile, size, err := openRegular(path)
	if err != nil {
		return res, err
	}
	defer inFile.Close()

	tc, err := fileutil.NewTempContext(path, res.Output)
	if err != nil {
		return res, ioError("create", res.Output, err)
	}

	defer tc.CleanupOnError(&err)

	if err := writeHeader(FingerprintOf(key), cipher, tc.TmpFile); err != nil {
		return res, err
	}

	strat := route(size, p.opts.Threshold)
	res.Strategy = strat.name

	p.log.WithFields(logrus.Fields{
		"path":     path,
		"size":     size,
		"strategy": strat.name,
		"workers":  p.opts.Workers,
	}).Debug("encrypting")

	if err := strat.encode(inFile, size, cipher, p.opts.Workers, tc.TmpFile); err != nil {
		return res, fmt.Errorf("encrypting %q: %w", path, err)
	}

	if res.OutputSize, err = tc.Commit(p.opts.PreserveTimestamps); err != nil {
		return res, ioError("write", res.Output, err)
	}

	p.log.WithFields(logrus.Fields{"path": res.Output, "size": res.OutputSize}).Debug("encrypted")

	return res, nil
}

// Decrypt restores the plaintext of the container at path to DecryptedPath(path).
// The key is verified against the header before any block is read or any output is created.
func (p *Processor) Decrypt(path string, key Key) (res Result, err error) {
	res = Result{Input: path}

	if res.Output, err = DecryptedPath(path); err != nil {
		return res, err
	}

	cipher, err := NewCipher(key)
	if err != nil {
		return res, err
	}

	inFile, size, err := openRegular(path)
	if err != nil {
		return res, err
	}
	defer inFile.Close()

	if err := checkHeader(inFile, cipher, key); err != nil {
		return res, err
	}

	body := size - int64(HeaderSize)
	if body == 0 || body%BlockSize != 0 {
		return res, fmt.Errorf("%w: body of %d bytes is not a whole number of blocks", ErrUnexpectedEOF, body)
	}

	tc, err := fileutil.NewTempContext(path, res.Output)
	if err != nil {
		return res, ioError("create", res.Output, err)
	}

	defer tc.CleanupOnError(&err)

	// Routing uses the container size, which bounds the plaintext size from above.
	strat := route(size, p.opts.Threshold)
	res.Strategy = strat.name

	p.log.WithFields(logrus.Fields{
		"path":     path,
		"size":     size,
		"strategy": strat.name,
		"workers":  p.opts.Workers,
	}).Debug("decrypting")

	if err := strat.decode(inFile, body, cipher, p.opts.Workers, tc.TmpFile); err != nil {
		return res, fmt.Errorf("decrypting %q: %w", path, err)
	}

	if res.OutputSize, err = tc.Commit(p.opts.PreserveTimestamps); err != nil {
		return res, ioError("write", res.Output, err)
	}

	p.log.WithFields(logrus.Fields{"path": res.Output, "size": res.OutputSize}).Debug("decrypted")

	return res, nil
}

// IsCorrectKey reads only the header of the container at path and reports whether it matches key.
func (p *Processor) IsCorrectKey(path string, key Key) (bool, error) {
	if _, err := DecryptedPath(path); err != nil {
		return false, err
	}

	cipher, err := NewCipher(key)
	if err != nil {
		return false, err
	}

	inFile, _, err := openRegular(path)
	if err != nil {
		return false, err
	}
	defer inFile.Close()

	err = checkHeader(inFile, cipher, key)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrInvalidKey):
		p.log.WithField("path", path).Debug("key does not match")

		return false, nil
	default:
		return false, err
	}
}

// checkHeader reads the header from r and verifies it against key.
func checkHeader(r io.Reader, c BlockCipher, key Key) error {
	stored, err := readHeader(c, r)
	if err != nil {
		return err
	}

	return verify(key, stored)
}

// openRegular opens a regular file for reading and returns its size.
func openRegular(path string) (*os.File, int64, error) {
	inFile, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, 0, ioError("open", path, err)
	}

	info, err := inFile.Stat()
	if err != nil {
		inFile.Close()

		return nil, 0, ioError("stat", path, err)
	}

	if !info.Mode().IsRegular() {
		inFile.Close()

		return nil, 0, ioError("open", path, errors.New("not a regular file"))
	}

	return inFile, info.Size(), nil
}
