//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package allocator

import (
	"fmt"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"
)

// mmapAllocator maps anonymous private memory for every region, so blobs live
// outside the Go heap and are never scanned by the GC.
type mmapAllocator struct {
	inUse atomic.Int64
}

func NewMmapAllocator() IAllocator {
	return &mmapAllocator{}
}

func (m *mmapAllocator) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", humanize.IBytes(uint64(size)), err)
	}

	m.inUse.Add(int64(size))
	return buf, nil
}

func (m *mmapAllocator) Free(buf []byte) error {
	if len(buf) == 0 {
		return ErrForeignBuf
	}

	// munmap needs the original mapping, a re-sliced region is rejected by the kernel
	if err := unix.Munmap(buf); err != nil {
		return fmt.Errorf("munmap %s: %w", humanize.IBytes(uint64(len(buf))), err)
	}

	m.inUse.Add(-int64(len(buf)))
	return nil
}

func (m *mmapAllocator) InUse() int64 {
	return m.inUse.Load()
}

var _ IAllocator = (*mmapAllocator)(nil)
