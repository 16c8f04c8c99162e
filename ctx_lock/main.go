package ctx_lock

import (
	"github.com/datnguyenzzz/nogodb/lib/go-mempool/ctx_lock/local_lock"
	"github.com/datnguyenzzz/nogodb/lib/go-mempool/ctx_lock/nop_lock"
)

var (
	ErrPoisoned       = local_lock.ErrPoisoned
	ErrNotInitialised = local_lock.ErrNotInitialised
	ErrNotLocked      = local_lock.ErrNotLocked
)

// NewLocalLock returns a lock that is safe to share between goroutines
func NewLocalLock() ICtxLock {
	return local_lock.NewLock()
}

// NewNopLock returns a lock that never blocks. Only use it when the owner
// is confined to a single goroutine.
func NewNopLock() ICtxLock {
	return nop_lock.NewLock()
}
