// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashString(t *testing.T) {
	wantStr := "0000000000000000000000000000000000000000000000000000000000000001"
	hash := Hash{}
	hash[0] = 0x01

	require.Equal(t, wantStr, hash.String())
}

func TestHashRoundTrip(t *testing.T) {
	raw, err := hex.DecodeString("6fe28c0ab6f1b372c1a6a246ae63f74f931e8365e15a089c68d6190000000000000000000000000000000000")
	require.NoError(t, err)

	var h Hash
	require.NoError(t, h.SetBytes(raw[:HashSize]))

	got, err := NewHashFromStr(h.String())
	require.NoError(t, err)
	require.True(t, h.IsEqual(got))
}

func TestDoubleHash(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	a := DoubleHashB(data)
	b := DoubleHashH(data)
	require.True(t, bytes.Equal(a, b[:]))
}

func TestIsEqualNil(t *testing.T) {
	var a, b *Hash
	require.True(t, a.IsEqual(b))

	h := Hash{}
	require.False(t, h.IsEqual(nil))
}
