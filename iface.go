package go_mempool

import "context"

type IPool interface {
	// Alloc takes a free block out of the pool
	Alloc(ctx context.Context) (Address, error)
	// Dealloc gives a block obtained from Alloc back to the pool
	Dealloc(ctx context.Context, addr Address) error
	// Realloc grows the pool to newCapacity blocks in total
	Realloc(ctx context.Context, newCapacity int) error
	Capacity() int
	// Close releases every blob. The pool can not be used afterwards.
	Close(ctx context.Context) error

	// utils

	Bytes(addr Address) []byte
	BlockSize() int
	Stats() Stats
}
