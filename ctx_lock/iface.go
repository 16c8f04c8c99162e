package ctx_lock

import "context"

type ICtxLock interface {
	AcquireCtx(ctx context.Context) error
	ReleaseCtx(ctx context.Context) error

	// Poison marks the lock as unusable. Every following AcquireCtx returns ErrPoisoned.
	Poison()
}
