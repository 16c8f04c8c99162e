package go_mempool

import (
	"sync/atomic"
)

// blob is one raw region owned by the pool
type blob struct {
	buf    []byte
	blocks int
}

// blobTable is append-only. Every change publishes a fresh snapshot, so readers
// resolving an address never race with a growing pool.
type blobTable struct {
	snapshot atomic.Pointer[[]blob]
}

func (t *blobTable) load() []blob {
	s := t.snapshot.Load()
	if s == nil {
		return nil
	}
	return *s
}

// append publishes b and returns its index together with the previous snapshot,
// which rollback can restore.
//
//	Important: appends must be serialised by the caller
func (t *blobTable) append(b blob) (int, *[]blob) {
	prev := t.snapshot.Load()
	old := t.load()
	next := make([]blob, len(old)+1)
	copy(next, old)
	next[len(old)] = b
	t.snapshot.Store(&next)
	return len(old), prev
}

func (t *blobTable) rollback(prev *[]blob) {
	t.snapshot.Store(prev)
}

// reset empties the table and returns what it held
func (t *blobTable) reset() []blob {
	blobs := t.load()
	t.snapshot.Store(nil)
	return blobs
}

// resolve returns the block behind addr, capped so that appending to it can
// never spill into the next block.
func (t *blobTable) resolve(addr Address, blockSize int) ([]byte, bool) {
	if addr.IsNil() || addr.offset < 0 || addr.offset%blockSize != 0 {
		return nil, false
	}
	blobs := t.load()
	idx := addr.Blob()
	if idx >= len(blobs) {
		return nil, false
	}
	buf := blobs[idx].buf
	end := addr.offset + blockSize
	if end > len(buf) {
		return nil, false
	}
	return buf[addr.offset:end:end], true
}

func (t *blobTable) reservedBytes() int64 {
	var total int64
	for _, b := range t.load() {
		total += int64(len(b.buf))
	}
	return total
}

// partition carves a blob into blockSize strides and links one descriptor per
// block. All descriptors of the blob share one allocation. The returned chain is
// detached, it only becomes visible once spliced onto the free list.
func partition(blobIdx, blocks, blockSize int) (head, tail *descriptor) {
	if blocks <= 0 {
		return nil, nil
	}

	descs := make([]descriptor, blocks)
	for i := range descs {
		descs[i].addr = newAddress(blobIdx, i*blockSize)
		if i+1 < blocks {
			descs[i].next = &descs[i+1]
		}
	}
	return &descs[0], &descs[blocks-1]
}
