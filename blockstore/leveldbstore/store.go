// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package leveldbstore implements blockchain.Store on top of a LevelDB
// database, the one concrete, on-disk store this module ships. Each
// header and its derived ChainInfo are stored together under the header's
// block hash; a second fixed key tracks the current chain tip. The store
// is append-mostly: Rollback returns blockchain.ErrUnsupported, since a
// deep reorganize is expected to simply overwrite the chain-head pointer
// to the new tip rather than delete superseded records.
package leveldbstore

import (
	"encoding/binary"
	"errors"
	"math/big"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/gosatsv/svcore/blockchain"
	"github.com/gosatsv/svcore/chainhash"
	"github.com/gosatsv/svcore/wire"
)

// recordValueLen is the fixed size, in bytes, of an encoded Record value:
// an 80-byte header followed by a 32-byte big-endian chain work, a 4-byte
// little-endian height, and an 8-byte little-endian transaction count.
const recordValueLen = wire.BlockHeaderLen + 32 + 4 + 8

// chainHeadKey is the fixed key the current chain tip hash is stored
// under. It can never collide with a header key, which is always 32 bytes
// long and keyed by the header's own hash, because this key is shorter.
var chainHeadKey = []byte("chainhead")

// Store is a blockchain.Store backed by a LevelDB database.
type Store struct {
	db *leveldb.DB
}

// Open opens (creating if necessary) a LevelDB database at dir and wraps
// it as a blockchain.Store.
func Open(dir string) (*Store, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get implements blockchain.Store.
func (s *Store) Get(hash chainhash.Hash) (blockchain.Record, error) {
	raw, err := s.db.Get(hash[:], nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return blockchain.Record{}, blockchain.ErrNotFound
	}
	if err != nil {
		return blockchain.Record{}, err
	}
	return decodeRecord(raw)
}

// Has implements blockchain.Store.
func (s *Store) Has(hash chainhash.Hash) (bool, error) {
	return s.db.Has(hash[:], nil)
}

// Put implements blockchain.Store.
func (s *Store) Put(rec blockchain.Record) error {
	key := rec.Header.BlockHash()
	value, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	return s.db.Put(key[:], value, nil)
}

// ChainHead implements blockchain.Store.
func (s *Store) ChainHead() (chainhash.Hash, error) {
	raw, err := s.db.Get(chainHeadKey, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return chainhash.Hash{}, blockchain.ErrNotFound
	}
	if err != nil {
		return chainhash.Hash{}, err
	}
	var hash chainhash.Hash
	copy(hash[:], raw)
	return hash, nil
}

// SetChainHead implements blockchain.Store.
func (s *Store) SetChainHead(hash chainhash.Hash) error {
	return s.db.Put(chainHeadKey, hash[:], nil)
}

// Rollback implements blockchain.Store. This store is append-mostly and
// does not support removing a previously persisted record.
func (s *Store) Rollback(chainhash.Hash) error {
	return blockchain.ErrUnsupported
}

func encodeRecord(rec blockchain.Record) ([]byte, error) {
	out := make([]byte, recordValueLen)
	header, err := rec.Header.Bytes()
	if err != nil {
		return nil, err
	}
	copy(out, header)

	offset := len(header)
	work := rec.Info.ChainWork
	if work == nil {
		work = new(big.Int)
	}
	workBytes := work.Bytes()
	// Left-pad the big-endian work encoding into its 32-byte field.
	copy(out[offset+32-len(workBytes):offset+32], workBytes)
	offset += 32

	binary.LittleEndian.PutUint32(out[offset:], uint32(rec.Info.Height))
	offset += 4

	binary.LittleEndian.PutUint64(out[offset:], uint64(rec.Info.ChainTxCount))

	return out, nil
}

func decodeRecord(raw []byte) (blockchain.Record, error) {
	if len(raw) != recordValueLen {
		return blockchain.Record{}, errors.New("leveldbstore: corrupt record")
	}

	var header wire.BlockHeader
	if err := header.FromBytes(raw[:wire.BlockHeaderLen]); err != nil {
		return blockchain.Record{}, err
	}

	offset := wire.BlockHeaderLen
	work := new(big.Int).SetBytes(raw[offset : offset+32])
	offset += 32

	height := int32(binary.LittleEndian.Uint32(raw[offset:]))
	offset += 4

	txCount := int64(binary.LittleEndian.Uint64(raw[offset:]))

	return blockchain.Record{
		Header: header,
		Info: blockchain.ChainInfo{
			Height:       height,
			ChainWork:    work,
			ChainTxCount: txCount,
		},
	}, nil
}
