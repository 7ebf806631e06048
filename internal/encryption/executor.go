package encryption

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// abortCheckInterval is the number of blocks a worker transforms between checks for a failed sibling.
const abortCheckInterval = 4096

// DefaultWorkers returns the number of block workers used when none is configured.
func DefaultWorkers() int {
	return runtime.NumCPU()
}

// Transform applies the cipher in the given direction to every block in place.
//
// The blocks are split into at most workers disjoint contiguous ranges, each owned by one goroutine,
// so every block is transformed exactly once and keeps its index. A workers value below one selects
// DefaultWorkers. If any worker fails, the remaining workers stop early and the failures are
// returned together, wrapped in ErrWorkerFailure. The blocks must then be considered garbage.
func Transform(blocks []Block, c BlockCipher, dir Direction, workers int) error {
	if dir != Encipher && dir != Decipher {
		return fmt.Errorf("transforming blocks: unknown %v", dir)
	}

	if len(blocks) == 0 {
		return nil
	}

	if workers < 1 {
		workers = DefaultWorkers()
	}

	workers = min(workers, len(blocks))
	span := (len(blocks) + workers - 1) / workers

	group, ctx := errgroup.WithContext(context.Background())
	errs := make([]error, workers)

	for worker := range workers {
		lo := worker * span
		if lo >= len(blocks) {
			break
		}

		hi := min(lo+span, len(blocks))

		group.Go(func() error {
			err := transformRange(ctx, blocks[lo:hi], lo, c, dir)
			if err != nil && !errors.Is(err, context.Canceled) {
				errs[worker] = fmt.Errorf("worker %d: %w", worker, err)
			}

			return err
		})
	}

	if group.Wait() == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrWorkerFailure, multierr.Combine(errs...))
}

// transformRange transforms part, whose first block sits at offset in the whole buffer.
// A panic raised by the cipher is returned as the error of the block that caused it.
func transformRange(ctx context.Context, part []Block, offset int, c BlockCipher, dir Direction) (err error) {
	idx := 0

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("block %d: %v", offset+idx, r)
		}
	}()

	for ; idx < len(part); idx++ {
		if idx%abortCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		dir.apply(c, &part[idx])
	}

	return nil
}
