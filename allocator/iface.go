package allocator

import "errors"

var (
	ErrInvalidSize = errors.New("allocation size must be greater than zero")
	ErrOutOfMemory = errors.New("allocation exceeds the configured memory limit")
	ErrForeignBuf  = errors.New("buffer was not allocated by this allocator")
)

// IAllocator hands out raw byte regions for the pool blobs. Two live regions
// never overlap, and a region is only given back through Free.
type IAllocator interface {
	// Alloc returns a region of exactly size bytes. Its content is unspecified.
	Alloc(size int) ([]byte, error)

	// Free returns a region previously returned by Alloc. The region must not
	// be used afterwards.
	Free(buf []byte) error

	// InUse reports the number of bytes currently handed out
	InUse() int64
}
