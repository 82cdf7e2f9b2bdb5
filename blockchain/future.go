// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"context"
	"sync"
)

// HeightFuture is a single-shot promise that resolves once the chain
// engine's best-chain height reaches a target the caller asked for. It
// lets a caller block on "has the chain reached height N yet" without
// polling, while independent futures for different heights (or created by
// different callers for the same height) resolve independently of one
// another.
type HeightFuture struct {
	once sync.Once
	done chan struct{}

	mu     sync.Mutex
	height int32
	err    error
}

// NewHeightFuture returns a future that resolves the first time Resolve or
// Reject is called on it.
func NewHeightFuture() *HeightFuture {
	return &HeightFuture{done: make(chan struct{})}
}

// Resolve satisfies the future with the height the chain reached. Only the
// first call (Resolve or Reject) has any effect; later calls are no-ops,
// matching a single-shot promise.
func (f *HeightFuture) Resolve(height int32) {
	f.once.Do(func() {
		f.mu.Lock()
		f.height = height
		f.mu.Unlock()
		close(f.done)
	})
}

// Reject satisfies the future with an error, for example because the
// engine shut down before reaching the requested height. Only the first
// call (Resolve or Reject) has any effect.
func (f *HeightFuture) Reject(err error) {
	f.once.Do(func() {
		f.mu.Lock()
		f.err = err
		f.mu.Unlock()
		close(f.done)
	})
}

// Wait blocks until the future resolves or ctx is done, whichever happens
// first.
func (f *HeightFuture) Wait(ctx context.Context) (int32, error) {
	select {
	case <-f.done:
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.height, f.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Done returns a channel that is closed once the future resolves, for use
// in a select alongside other channels.
func (f *HeightFuture) Done() <-chan struct{} {
	return f.done
}
