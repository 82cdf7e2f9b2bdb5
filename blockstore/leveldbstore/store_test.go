// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package leveldbstore

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gosatsv/svcore/blockchain"
	"github.com/gosatsv/svcore/chainhash"
	"github.com/gosatsv/svcore/wire"
)

func TestStorePutGetRoundTrip(t *testing.T) {
	t.Parallel()

	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	header := wire.BlockHeader{Bits: 0x1d00ffff, Nonce: 42}
	rec := blockchain.Record{
		Header: header,
		Info: blockchain.ChainInfo{
			Height:       7,
			ChainWork:    big.NewInt(123456789),
			ChainTxCount: 11,
		},
	}

	hash := header.BlockHash()

	has, err := store.Has(hash)
	require.NoError(t, err)
	require.False(t, has)

	require.NoError(t, store.Put(rec))

	has, err = store.Has(hash)
	require.NoError(t, err)
	require.True(t, has)

	got, err := store.Get(hash)
	require.NoError(t, err)
	require.Equal(t, rec.Info.Height, got.Info.Height)
	require.Equal(t, rec.Info.ChainTxCount, got.Info.ChainTxCount)
	require.Equal(t, 0, rec.Info.ChainWork.Cmp(got.Info.ChainWork))
	require.Equal(t, rec.Header.Bits, got.Header.Bits)
	require.Equal(t, rec.Header.Nonce, got.Header.Nonce)
}

func TestStoreChainHead(t *testing.T) {
	t.Parallel()

	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	_, err = store.ChainHead()
	require.ErrorIs(t, err, blockchain.ErrNotFound)

	header := wire.BlockHeader{Bits: 0x1d00ffff}
	hash := header.BlockHash()
	require.NoError(t, store.SetChainHead(hash))

	got, err := store.ChainHead()
	require.NoError(t, err)
	require.Equal(t, hash, got)
}

func TestStoreRollbackUnsupported(t *testing.T) {
	t.Parallel()

	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	var hash chainhash.Hash
	err = store.Rollback(hash)
	require.ErrorIs(t, err, blockchain.ErrUnsupported)
}
