// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"testing"
	"time"

	"github.com/gosatsv/svcore/chainhash"
	"github.com/stretchr/testify/require"
)

// TestBlockHeaderRoundTrip verifies that serializing a header and parsing
// it back reproduces every field, including the derived block hash.
func TestBlockHeaderRoundTrip(t *testing.T) {
	prev := chainhash.HashH([]byte("prev"))
	merkle := chainhash.HashH([]byte("merkle"))

	hdr := NewBlockHeader(1, &prev, &merkle, 0x1d00ffff, 12345)
	hdr.Timestamp = time.Unix(1231006505, 0)

	raw, err := hdr.Bytes()
	require.NoError(t, err)
	require.Len(t, raw, BlockHeaderLen)

	var got BlockHeader
	require.NoError(t, got.FromBytes(raw))

	require.Equal(t, hdr.Version, got.Version)
	require.True(t, hdr.PrevBlock.IsEqual(&got.PrevBlock))
	require.True(t, hdr.MerkleRoot.IsEqual(&got.MerkleRoot))
	require.Equal(t, hdr.Timestamp.Unix(), got.Timestamp.Unix())
	require.Equal(t, hdr.Bits, got.Bits)
	require.Equal(t, hdr.Nonce, got.Nonce)

	require.Equal(t, hdr.BlockHash(), got.BlockHash())
}

func TestBlockHeaderFromBytesWrongSize(t *testing.T) {
	var h BlockHeader
	require.Error(t, h.FromBytes([]byte{0x01, 0x02}))
}
