package go_mempool

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/datnguyenzzz/nogodb/lib/go-mempool/allocator"
	"github.com/datnguyenzzz/nogodb/lib/go-mempool/ctx_lock"
	"github.com/dustin/go-humanize"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Pool hands out fixed-size blocks carved from a few large blobs.
//
// Every block is tracked by a descriptor living either on the free list
// (available) or on the recycle list (on loan). Alloc moves a descriptor from
// the free list to the recycle list, Dealloc moves one back and stamps it with
// the returned address. Each operation holds at most one list lock at a time.
//
// A nil *Pool is accepted by every method and reported as ErrNullArgument.
type Pool struct {
	opts      options
	blockSize int
	capacity  atomic.Int64

	blobs    blobTable
	free     *descList
	recycle  *descList
	registry *registry

	// growLock serialises Realloc, so the blob table has a single writer
	growLock ctx_lock.ICtxLock
	closed   atomic.Bool

	stats counters
}

// New creates a pool of capacity blocks of blockSize bytes each, backed by a
// single blob.
func New(blockSize, capacity int, opts ...Option) (*Pool, error) {
	if blockSize <= 0 || capacity <= 0 {
		zap.L().Error("invalid pool size", zap.Int("block_size", blockSize), zap.Int("capacity", capacity))
		return nil, fmt.Errorf("%w: block size %d, capacity %d", ErrInvalidSize, blockSize, capacity)
	}

	p := &Pool{
		opts:      defaultOptions(),
		blockSize: blockSize,
	}
	for _, o := range opts {
		o(p)
	}

	newLock := ctx_lock.NewLocalLock
	if !p.opts.threadSafe {
		newLock = ctx_lock.NewNopLock
	}
	p.free = newDescList(newLock())
	p.recycle = newDescList(newLock())
	p.growLock = newLock()
	if p.opts.safeMode {
		p.registry = newRegistry(p.opts.registryShards)
	}

	if err := p.addBlob(context.Background(), capacity); err != nil {
		return nil, err
	}
	p.capacity.Store(int64(capacity))

	return p, nil
}

// Alloc takes a block out of the pool. It never grows the pool, an exhausted
// pool returns ErrEmptyPool and the caller decides whether to Realloc.
//
// The content of the block is whatever its previous holder left in it.
func (p *Pool) Alloc(ctx context.Context) (Address, error) {
	if p == nil {
		return Address{}, ErrNullArgument
	}
	if p.closed.Load() {
		return Address{}, ErrPoolClosed
	}

	d, err := p.free.pop(ctx)
	if err != nil {
		zap.L().Error("Failed to pop from the free list", zap.Error(err))
		return Address{}, err
	}
	if d == nil {
		p.stats.misses.Add(1)
		return Address{}, ErrEmptyPool
	}

	addr := d.addr
	if err := p.recycle.push(ctx, d); err != nil {
		zap.L().Error("Failed to push onto the recycle list", zap.Error(err))
		// the block was never handed out, give it back so capacity stays intact
		if rerr := p.free.push(context.WithoutCancel(ctx), d); rerr != nil {
			zap.L().Error("Descriptor is lost", zap.Stringer("addr", addr), zap.Error(rerr))
		}
		return Address{}, err
	}

	if p.registry != nil && !p.registry.add(addr) {
		// a free descriptor carried an address already on loan, which only
		// happens if it was released twice while not in safe mode
		zap.L().Error("Handing out an address that is already on loan", zap.Stringer("addr", addr))
	}

	p.stats.allocs.Add(1)
	return addr, nil
}

// Dealloc gives addr back to the pool.
//
// addr must come from Alloc on this pool and must not have been released
// already. Only safe mode verifies this, reporting ErrInvalidAddress. Without
// safe mode a foreign or repeated address silently ends up on the free list
// and will be handed out again.
func (p *Pool) Dealloc(ctx context.Context, addr Address) error {
	if p == nil || addr.IsNil() {
		return ErrNullArgument
	}
	if p.closed.Load() {
		return ErrPoolClosed
	}

	if p.registry != nil && !p.registry.remove(addr) {
		zap.L().Warn("Rejected release of an address not on loan", zap.Stringer("addr", addr))
		return fmt.Errorf("%w: %s", ErrInvalidAddress, addr)
	}

	d, err := p.recycle.pop(ctx)
	if err == nil && d == nil {
		err = ErrFullPool
	}
	if err != nil {
		if p.registry != nil {
			p.registry.add(addr)
		}
		return err
	}

	d.addr = addr
	if err := p.free.push(ctx, d); err != nil {
		zap.L().Error("Failed to push onto the free list", zap.Error(err))
		// undo, the caller still holds the block
		if rerr := p.recycle.push(context.WithoutCancel(ctx), d); rerr != nil {
			zap.L().Error("Descriptor is lost", zap.Stringer("addr", addr), zap.Error(rerr))
		}
		if p.registry != nil {
			p.registry.add(addr)
		}
		return err
	}

	p.stats.deallocs.Add(1)
	return nil
}

// Realloc grows the pool to newCapacity blocks by adding one blob of
// newCapacity - Capacity() blocks. Either the whole growth happens or nothing
// changes.
func (p *Pool) Realloc(ctx context.Context, newCapacity int) error {
	if p == nil {
		return ErrNullArgument
	}
	if p.closed.Load() {
		return ErrPoolClosed
	}

	return withLock(ctx, p.growLock, func() error {
		oldCapacity := int(p.capacity.Load())
		if newCapacity <= oldCapacity {
			return fmt.Errorf("%w: %d <= %d", ErrInvalidGrowSize, newCapacity, oldCapacity)
		}

		if err := p.addBlob(ctx, newCapacity-oldCapacity); err != nil {
			return err
		}

		p.capacity.Store(int64(newCapacity))
		p.stats.grows.Add(1)
		zap.L().Debug("Pool grown",
			zap.Int("old_capacity", oldCapacity),
			zap.Int("new_capacity", newCapacity),
			zap.String("reserved", humanize.IBytes(uint64(p.blobs.reservedBytes()))),
		)
		return nil
	})
}

// addBlob allocates a blob for blocks blocks, partitions it and publishes the
// new descriptors on the free list. On failure the pool is left untouched.
//
//	Important: caller must hold growLock, or own the pool exclusively
func (p *Pool) addBlob(ctx context.Context, blocks int) error {
	if blocks > math.MaxInt/p.blockSize {
		zap.L().Error("Blob size overflows", zap.Int("blocks", blocks), zap.Int("block_size", p.blockSize))
		return fmt.Errorf("%w: %d blocks of %d bytes", ErrAllocationFailure, blocks, p.blockSize)
	}
	size := blocks * p.blockSize

	buf, err := p.opts.allocator.Alloc(size)
	if err != nil {
		zap.L().Error("Failed to allocate blob", zap.String("size", humanize.IBytes(uint64(size))), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrAllocationFailure, err)
	}

	// the blob goes into the table first, so an address can always be resolved
	// as soon as its descriptor is reachable from the free list
	idx, prev := p.blobs.append(blob{buf: buf, blocks: blocks})
	head, tail := partition(idx, blocks, p.blockSize)
	if err := p.free.splice(ctx, head, tail, blocks); err != nil {
		zap.L().Error("Failed to publish the new blocks", zap.Int("blob", idx), zap.Error(err))
		p.blobs.rollback(prev)
		return multierr.Append(err, p.opts.allocator.Free(buf))
	}

	return nil
}

// Capacity returns the number of blocks the pool holds. It may lag behind a
// concurrent Realloc. A nil pool reports -1.
func (p *Pool) Capacity() int {
	if p == nil {
		return -1
	}
	return int(p.capacity.Load())
}

func (p *Pool) BlockSize() int {
	if p == nil {
		return 0
	}
	return p.blockSize
}

// Bytes returns the memory of the block at addr, or nil if addr does not point
// into the pool. The slice is only valid while the block is on loan.
func (p *Pool) Bytes(addr Address) []byte {
	if p == nil || p.closed.Load() {
		return nil
	}
	buf, _ := p.blobs.resolve(addr, p.blockSize)
	return buf
}

// Close gives every blob back to the allocator and drops all descriptors.
// Blocks still on loan become invalid. Close must not run concurrently with any
// other method.
func (p *Pool) Close(ctx context.Context) error {
	if p == nil {
		return ErrNullArgument
	}
	if !p.closed.CompareAndSwap(false, true) {
		return ErrPoolClosed
	}

	freed := p.free.drain()
	onLoan := p.recycle.drain()
	p.registry = nil
	p.capacity.Store(0)

	blobs := p.blobs.reset()
	bufs := make([][]byte, 0, len(blobs))
	var total uint64
	for _, b := range blobs {
		bufs = append(bufs, b.buf)
		total += uint64(len(b.buf))
	}

	if err := allocator.FreeAll(p.opts.allocator, bufs...); err != nil {
		zap.L().Error("Failed to release blobs", zap.Int("blobs", len(blobs)), zap.Error(err))
		return err
	}

	zap.L().Info("Pool closed",
		zap.Int("blobs", len(blobs)),
		zap.Int("free", freed),
		zap.Int("on_loan", onLoan),
		zap.String("released", humanize.IBytes(total)),
	)
	return nil
}

func (p *Pool) Stats() Stats {
	if p == nil {
		return Stats{}
	}
	return Stats{
		BlockSize:     p.blockSize,
		Capacity:      int(p.capacity.Load()),
		Free:          p.free.len(),
		OnLoan:        p.recycle.len(),
		Blobs:         len(p.blobs.load()),
		ReservedBytes: p.blobs.reservedBytes(),
		Allocs:        p.stats.allocs.Load(),
		Deallocs:      p.stats.deallocs.Load(),
		Grows:         p.stats.grows.Load(),
		Misses:        p.stats.misses.Load(),
	}
}

var _ IPool = (*Pool)(nil)
