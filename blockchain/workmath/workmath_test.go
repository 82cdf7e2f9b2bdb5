// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package workmath

import (
	"math/big"
	"testing"

	"github.com/gosatsv/svcore/chainhash"
	"github.com/stretchr/testify/require"
)

func TestCompactToBig(t *testing.T) {
	tests := []struct {
		in   uint32
		want string
	}{
		{0x01003456, "0"},
		{0x01123456, "18"},
		{0x02008000, "128"},
		{0x05009234, "2452881408"},
		{0x04923456, "-305419776"},
		{0x1d00ffff, "26959535291011309493156476344723991336010898738574164086137773096960"},
	}

	for _, tt := range tests {
		got := CompactToBig(tt.in)
		require.Equal(t, tt.want, got.String())
	}
}

func TestBigToCompact(t *testing.T) {
	require.Equal(t, uint32(0), BigToCompact(big.NewInt(0)))
	require.Equal(t, uint32(0x01120000), BigToCompact(CompactToBig(0x01123456)))
}

func TestCompactRoundTrip(t *testing.T) {
	bits := []uint32{0x1d00ffff, 0x1b0404cb, 0x1c00ffff, 0x207fffff}
	for _, b := range bits {
		n := CompactToBig(b)
		got := BigToCompact(n)
		require.Equal(t, CompactToBig(got).String(), n.String())
	}
}

func TestCalcWork(t *testing.T) {
	require.Equal(t, big.NewInt(0).String(), CalcWork(0).String())

	w1 := CalcWork(0x1d00ffff)
	w2 := CalcWork(0x1c00ffff)
	require.Equal(t, 1, w2.Cmp(w1), "lower target bits should yield more work")
}

func TestHashToBig(t *testing.T) {
	var h chainhash.Hash
	h[0] = 0x01
	hb := HashToBig(&h)
	require.True(t, hb.Sign() > 0)
}
