package nop_lock

import (
	"context"
	"testing"

	"github.com/datnguyenzzz/nogodb/lib/go-mempool/ctx_lock/local_lock"
	"github.com/stretchr/testify/assert"
)

func Test_NopLock(t *testing.T) {
	l := NewLock()
	ctx := context.Background()

	// re-entrant by construction
	assert.NoError(t, l.AcquireCtx(ctx))
	assert.NoError(t, l.AcquireCtx(ctx))
	assert.NoError(t, l.ReleaseCtx(ctx))

	// nobody else can hold it, so there is never anything to wait for
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.NoError(t, l.AcquireCtx(cancelled))

	l.Poison()
	assert.ErrorIs(t, l.AcquireCtx(ctx), local_lock.ErrPoisoned)
}
