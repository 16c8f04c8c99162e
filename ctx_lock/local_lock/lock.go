package local_lock

import (
	"context"
	"errors"
	"sync/atomic"
)

var (
	ErrNotInitialised = errors.New("failed to init lock")
	ErrPoisoned       = errors.New("lock is poisoned by a panicking holder")
	ErrNotLocked      = errors.New("release of unlocked lock")
)

// CtxLock uses a Go channel to provide atomic locking and unlocking with context.Context cancellation
// support. This lock is resolved locally and does not require network calls.
type CtxLock struct {
	ch       chan struct{}
	poisoned atomic.Bool
}

func NewLock() *CtxLock {
	return &CtxLock{
		// buffered chanel with a size of 1,
		// so the sender will be blocked when the chanel is full
		ch: make(chan struct{}, 1),
	}
}

func (l *CtxLock) AcquireCtx(ctx context.Context) error {
	if l.ch == nil {
		return ErrNotInitialised
	}
	if l.poisoned.Load() {
		return ErrPoisoned
	}

	// a free lock is always taken, the context only bounds the waiting
	select {
	case l.ch <- struct{}{}:
	default:
		select {
		case <-ctx.Done():
			// context is either timeout or cancelled
			return ctx.Err()
		case l.ch <- struct{}{}:
		}
	}

	// the previous holder might have poisoned the lock right before releasing it
	if l.poisoned.Load() {
		<-l.ch
		return ErrPoisoned
	}
	return nil
}

// ReleaseCtx never waits, so the context is not consulted. A holder must always
// be able to release, even when its context is already done.
func (l *CtxLock) ReleaseCtx(_ context.Context) error {
	if l.ch == nil {
		return ErrNotInitialised
	}

	select {
	case <-l.ch:
		return nil
	default:
		return ErrNotLocked
	}
}

func (l *CtxLock) Poison() {
	l.poisoned.Store(true)
}

func (l *CtxLock) IsPoisoned() bool {
	return l.poisoned.Load()
}
