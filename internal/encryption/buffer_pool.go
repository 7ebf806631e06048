package encryption

import (
	"sync"
)

const defaultBufferSize = 2048 * BlockSize // 32KB, a whole number of blocks

// bufferPool provides a pool of reusable byte slices for block I/O.
//
//nolint:gochecknoglobals
var bufferPool = sync.Pool{
	New: func() any {
		return make([]byte, defaultBufferSize)
	},
}
