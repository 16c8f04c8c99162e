package go_mempool

import (
	"github.com/datnguyenzzz/nogodb/lib/go-mempool/allocator"
)

type Option func(p *Pool)

type options struct {
	// threadSafe guards both lists with real locks. Without it the pool must be
	// confined to a single goroutine.
	threadSafe bool

	// safeMode tracks every address on loan, so Dealloc rejects addresses that were
	// never handed out or were already returned. It costs one map insert and one map
	// delete per loan.
	safeMode bool

	// registryShards number of shards of the on-loan address set, only used in safe mode
	registryShards int

	// allocator provides the raw memory of every blob
	allocator allocator.IAllocator
}

func defaultOptions() options {
	return options{
		threadSafe:     true,
		safeMode:       false,
		registryShards: defaultRegistryShards,
		allocator:      allocator.NewHeapAllocator(),
	}
}

func WithThreadSafe(threadSafe bool) Option {
	return func(p *Pool) {
		p.opts.threadSafe = threadSafe
	}
}

func WithSafeMode(safeMode bool) Option {
	return func(p *Pool) {
		p.opts.safeMode = safeMode
	}
}

func WithRegistryShards(shards int) Option {
	return func(p *Pool) {
		if shards > 0 {
			p.opts.registryShards = shards
		}
	}
}

func WithAllocator(a allocator.IAllocator) Option {
	return func(p *Pool) {
		if a != nil {
			p.opts.allocator = a
		}
	}
}
