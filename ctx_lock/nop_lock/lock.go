package nop_lock

import (
	"context"

	"github.com/datnguyenzzz/nogodb/lib/go-mempool/ctx_lock/local_lock"
)

// NopLock satisfies the lock interface without any synchronisation. It is never
// held by anyone else, so acquiring never waits and the context is not consulted.
// Poisoning is still honoured.
type NopLock struct {
	poisoned bool
}

func NewLock() *NopLock {
	return &NopLock{}
}

func (l *NopLock) AcquireCtx(_ context.Context) error {
	if l.poisoned {
		return local_lock.ErrPoisoned
	}
	return nil
}

func (l *NopLock) ReleaseCtx(_ context.Context) error {
	return nil
}

func (l *NopLock) Poison() {
	l.poisoned = true
}
