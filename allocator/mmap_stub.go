//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package allocator

import "go.uber.org/zap"

// NewMmapAllocator falls back to the heap allocator where anonymous mappings
// are not available.
func NewMmapAllocator() IAllocator {
	zap.L().Warn("mmap is not supported on this platform, falling back to heap allocator")
	return NewHeapAllocator()
}
