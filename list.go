package go_mempool

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/datnguyenzzz/nogodb/lib/go-mempool/ctx_lock"
)

// descriptor tracks one block. It belongs to exactly one list at a time and
// moves between lists as a whole, the block it points at is never copied.
type descriptor struct {
	next *descriptor
	addr Address
}

// descList is an unordered singly linked stack of descriptors.
//
// size is only written while holding the lock, reading it without the lock
// gives an approximation.
type descList struct {
	lock ctx_lock.ICtxLock
	head *descriptor
	size atomic.Int64
}

func newDescList(lock ctx_lock.ICtxLock) *descList {
	return &descList{lock: lock}
}

// withLock runs fn while holding l. A panic inside fn poisons the lock before it
// propagates, as the protected state can no longer be trusted.
func withLock(ctx context.Context, l ctx_lock.ICtxLock, fn func() error) (err error) {
	if err := l.AcquireCtx(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrLockFailure, err)
	}

	defer func() {
		if r := recover(); r != nil {
			l.Poison()
			_ = l.ReleaseCtx(ctx)
			panic(r)
		}
		if rerr := l.ReleaseCtx(ctx); rerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrLockFailure, rerr)
		}
	}()

	return fn()
}

// pop detaches the head. It returns a nil descriptor if the list is empty.
func (l *descList) pop(ctx context.Context) (*descriptor, error) {
	var d *descriptor
	err := withLock(ctx, l.lock, func() error {
		d = l.head
		if d == nil {
			return nil
		}
		l.head = d.next
		d.next = nil
		l.size.Add(-1)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (l *descList) push(ctx context.Context, d *descriptor) error {
	return withLock(ctx, l.lock, func() error {
		d.next = l.head
		l.head = d
		l.size.Add(1)
		return nil
	})
}

// splice links a detached chain of n descriptors, from head to tail, in front
// of the list in one step.
func (l *descList) splice(ctx context.Context, head, tail *descriptor, n int) error {
	return withLock(ctx, l.lock, func() error {
		tail.next = l.head
		l.head = head
		l.size.Add(int64(n))
		return nil
	})
}

// drain drops every descriptor without locking.
//
//	Important: caller must ensure no other goroutine uses the list
func (l *descList) drain() int {
	n := int(l.size.Load())
	l.head = nil
	l.size.Store(0)
	return n
}

func (l *descList) len() int {
	return int(l.size.Load())
}
