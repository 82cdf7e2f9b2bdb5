// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "sync"

// Executor runs a notification callback. SameThreadExecutor is the default
// for every listener registered without one: it keeps notification order
// deterministic relative to the Add call that produced it, at the cost of
// making a slow listener block the engine.
type Executor func(func())

// SameThreadExecutor runs f synchronously, on the calling goroutine.
func SameThreadExecutor(f func()) { f() }

// NewBlockListener is notified each time a header is connected to the best
// chain.
type NewBlockListener func(block *StoredBlock)

// ReorganizeListener is notified when the best chain changes to a
// different branch, receiving the common ancestor and the blocks
// disconnected and connected, each ordered tip first with the common
// ancestor excluded.
type ReorganizeListener func(splitPoint *StoredBlock, oldChain, newChain []*StoredBlock)

type newBlockEntry struct {
	id       int64
	listener NewBlockListener
	executor Executor
}

type reorganizeEntry struct {
	id       int64
	listener ReorganizeListener
	executor Executor
}

// listenerRegistry holds the engine's registered notification callbacks
// behind a copy-on-write slice: readers (the notification path) hold mu
// only long enough to snapshot the slice and run the listeners without it,
// and writers (AddNewBlockListener et al.) replace the whole slice under mu
// so a listener added mid-notification never fires for the event already
// in flight.
type listenerRegistry struct {
	mu         sync.Mutex
	nextID     int64
	newBlock   []newBlockEntry
	reorganize []reorganizeEntry
}

func newListenerRegistry() *listenerRegistry {
	return &listenerRegistry{}
}

// addNewBlockListener registers l to run on executor (SameThreadExecutor if
// nil) whenever a header is connected to the best chain. The returned id
// can be passed to removeNewBlockListener to unregister it.
func (r *listenerRegistry) addNewBlockListener(l NewBlockListener, executor Executor) int64 {
	if executor == nil {
		executor = SameThreadExecutor
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID

	next := make([]newBlockEntry, len(r.newBlock)+1)
	copy(next, r.newBlock)
	next[len(r.newBlock)] = newBlockEntry{id: id, listener: l, executor: executor}
	r.newBlock = next
	return id
}

// removeNewBlockListener unregisters the listener previously returned by
// addNewBlockListener with the given id, if it is still registered.
func (r *listenerRegistry) removeNewBlockListener(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]newBlockEntry, 0, len(r.newBlock))
	for _, e := range r.newBlock {
		if e.id != id {
			next = append(next, e)
		}
	}
	r.newBlock = next
}

// addReorganizeListener registers l to run on executor (SameThreadExecutor
// if nil) whenever the best chain changes to a different branch. The
// returned id can be passed to removeReorganizeListener to unregister it.
func (r *listenerRegistry) addReorganizeListener(l ReorganizeListener, executor Executor) int64 {
	if executor == nil {
		executor = SameThreadExecutor
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID

	next := make([]reorganizeEntry, len(r.reorganize)+1)
	copy(next, r.reorganize)
	next[len(r.reorganize)] = reorganizeEntry{id: id, listener: l, executor: executor}
	r.reorganize = next
	return id
}

// removeReorganizeListener unregisters the listener previously returned by
// addReorganizeListener with the given id, if it is still registered.
func (r *listenerRegistry) removeReorganizeListener(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]reorganizeEntry, 0, len(r.reorganize))
	for _, e := range r.reorganize {
		if e.id != id {
			next = append(next, e)
		}
	}
	r.reorganize = next
}

// notifyNewBlock fires every registered NewBlockListener for block. The
// slice is snapshotted under the lock and then run lock-free so a listener
// that calls back into the registry to subscribe does not deadlock.
func (r *listenerRegistry) notifyNewBlock(block *StoredBlock) {
	r.mu.Lock()
	entries := r.newBlock
	r.mu.Unlock()

	for _, e := range entries {
		l, b := e.listener, block
		e.executor(func() { l(b) })
	}
}

// notifyReorganize fires every registered ReorganizeListener for the given
// reorganization.
func (r *listenerRegistry) notifyReorganize(splitPoint *StoredBlock, oldChain, newChain []*StoredBlock) {
	r.mu.Lock()
	entries := r.reorganize
	r.mu.Unlock()

	for _, e := range entries {
		l, sp, oc, nc := e.listener, splitPoint, oldChain, newChain
		e.executor(func() { l(sp, oc, nc) })
	}
}
