// Package logic implements the core business logic for the encryption/decryption.
package logic

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/cryptile/internal/config"
	"github.com/idelchi/cryptile/internal/encryption"
)

// Run encrypts or decrypts every configured file with key.
// Files are processed concurrently up to cfg.Parallel. All failures are returned together.
func Run(cfg *config.Config, key encryption.Key) error {
	start := time.Now()

	files, err := resolveFiles(cfg)
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	proc := encryption.NewProcessor(encryption.Options{
		Workers:            cfg.Workers,
		PreserveTimestamps: cfg.PreserveTimestamps,
		Logger:             NewLogger(cfg.Verbose),
	})

	op := proc.Encrypt
	if cfg.Decrypt {
		op = proc.Decrypt
	}

	results := make(chan encryption.Result, len(files))

	var (
		processed, errored int
		totalSize          int64
		errs               error
	)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range results {
			if result.Error != nil {
				errored++

				errs = multierr.Append(errs, fmt.Errorf("%q: %w", result.Input, result.Error))

				fmt.Fprintf(os.Stderr, "Error processing %q: %s\n", result.Input, Describe(result.Error))

				continue
			}

			processed++

			totalSize += result.OutputSize

			if !cfg.Quiet {
				fmt.Printf("Processed %q -> %q\n", result.Input, result.Output) //nolint:forbidigo
			}

			if cfg.Delete {
				deleteOriginal(result.Input, cfg.Quiet)
			}
		}
	}()

	group := errgroup.Group{}
	group.SetLimit(max(1, cfg.Parallel))

	for _, file := range files {
		group.Go(func() error {
			res, err := op(file, key)
			res.Error = err
			results <- res

			return nil
		})
	}

	_ = group.Wait()

	close(results)

	<-done // Wait for printer to finish

	if cfg.Stats {
		printStats(len(files), processed, errored, totalSize, time.Since(start))
	}

	return errs
}

// RunCheck reports for every configured container whether key opens it.
// It fails with encryption.ErrInvalidKey when at least one container does not match.
func RunCheck(cfg *config.Config, key encryption.Key) error {
	files, err := resolveFiles(cfg)
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	proc := encryption.NewProcessor(encryption.Options{Logger: NewLogger(cfg.Verbose)})

	var (
		mu   sync.Mutex
		errs error
	)

	group := errgroup.Group{}
	group.SetLimit(max(1, cfg.Parallel))

	for _, file := range files {
		group.Go(func() error {
			ok, err := proc.IsCorrectKey(file, key)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err != nil:
				errs = multierr.Append(errs, fmt.Errorf("%q: %w", file, err))

				fmt.Fprintf(os.Stderr, "%s: %s\n", file, Describe(err))
			case !ok:
				errs = multierr.Append(errs, fmt.Errorf("%q: %w", file, encryption.ErrInvalidKey))

				fmt.Fprintf(os.Stderr, "%s: wrong key\n", file)
			case !cfg.Quiet:
				fmt.Printf("%s: key matches\n", file) //nolint:forbidigo
			}

			return nil
		})
	}

	_ = group.Wait()

	return errs
}

// deleteOriginal removes a processed input. Failures are reported but do not fail the run.
func deleteOriginal(path string, quiet bool) {
	if err := os.Remove(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", path, err)

		return
	}

	if !quiet {
		fmt.Printf("Deleted %q\n", path) //nolint:forbidigo
	}
}

func printStats(scanned, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Files:     %d\n", scanned)
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", processed)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
