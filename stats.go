package go_mempool

import "sync/atomic"

type Stats struct {
	BlockSize     int
	Capacity      int
	Free          int
	OnLoan        int
	Blobs         int
	ReservedBytes int64

	// cumulative counters
	Allocs   int64
	Deallocs int64
	Grows    int64
	Misses   int64
}

type counters struct {
	allocs   atomic.Int64
	deallocs atomic.Int64
	grows    atomic.Int64
	misses   atomic.Int64
}
