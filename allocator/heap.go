package allocator

import (
	"sync/atomic"
)

type HeapOption func(h *heapAllocator)

// WithLimit caps the number of bytes the allocator can hand out at once.
// A non-positive limit means unlimited.
func WithLimit(limit int64) HeapOption {
	return func(h *heapAllocator) {
		h.limit = limit
	}
}

// heapAllocator backs every region with a Go managed slice
type heapAllocator struct {
	limit int64
	inUse atomic.Int64
}

func NewHeapAllocator(opts ...HeapOption) IAllocator {
	h := &heapAllocator{}
	for _, o := range opts {
		o(h)
	}
	return h
}

func (h *heapAllocator) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	for {
		used := h.inUse.Load()
		if h.limit > 0 && used+int64(size) > h.limit {
			return nil, ErrOutOfMemory
		}
		if h.inUse.CompareAndSwap(used, used+int64(size)) {
			break
		}
	}

	return make([]byte, size), nil
}

func (h *heapAllocator) Free(buf []byte) error {
	if len(buf) == 0 {
		return ErrForeignBuf
	}
	h.inUse.Add(-int64(len(buf)))
	return nil
}

func (h *heapAllocator) InUse() int64 {
	return h.inUse.Load()
}

var _ IAllocator = (*heapAllocator)(nil)
