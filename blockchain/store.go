// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"errors"

	"github.com/gosatsv/svcore/chainhash"
	"github.com/gosatsv/svcore/wire"
)

// ErrNotFound is returned by Store.Get when no header is stored for the
// requested hash.
var ErrNotFound = errors.New("blockchain: header not found")

// ErrUnsupported is returned by a Store method the backing implementation
// does not support, such as Rollback on an append-only store.
var ErrUnsupported = errors.New("blockchain: operation not supported by this store")

// Record is the persisted representation of a linked header: the raw
// header bytes plus the ChainInfo the engine derived for it.
type Record struct {
	Header wire.BlockHeader
	Info   ChainInfo
}

// Store is the persistence boundary the chain engine is built against. It
// knows nothing about forks or proof of work; it only remembers headers
// the engine has already validated and linked, and tracks which one is the
// current chain tip. Rocksdb-, LevelDB-, or memory-backed implementations
// all satisfy this interface identically.
type Store interface {
	// Get returns the record stored for hash, or ErrNotFound if none
	// exists.
	Get(hash chainhash.Hash) (Record, error)

	// Has reports whether a record exists for hash.
	Has(hash chainhash.Hash) (bool, error)

	// Put persists rec, keyed by its header's block hash. Put must
	// overwrite an existing record for the same hash.
	Put(rec Record) error

	// ChainHead returns the hash of the current chain tip, or
	// ErrNotFound if the store is empty.
	ChainHead() (chainhash.Hash, error)

	// SetChainHead updates the store's notion of the current chain tip.
	// The referenced record must already have been Put.
	SetChainHead(hash chainhash.Hash) error

	// Rollback removes the record for hash. The engine calls it to undo
	// the write of a candidate it has already Put but will not make the
	// chain head. Implementations that only ever append may return
	// ErrUnsupported.
	Rollback(hash chainhash.Hash) error
}
