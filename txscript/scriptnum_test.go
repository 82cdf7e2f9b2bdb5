// Copyright (c) 2015-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// mustDecodeHex decodes s and fails the test immediately if it isn't valid
// hex. It exists so the MPI fixtures below can be written as plain hex
// strings instead of []byte literals.
func mustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoErrorf(t, err, "invalid hex fixture %q", s)
	return b
}

// TestScriptNumRoundTrip walks a table of (integer, canonical MPI encoding)
// pairs in both directions: scriptNum.Bytes() must reproduce the encoding,
// and feeding that encoding back through MakeScriptNum with the minimal-data
// flag set must reproduce the integer. The table includes magnitudes that
// spill into a second, third, and fourth byte, and a few values larger than
// any real opcode would push (consensus allows a wider scriptNumLen for
// intermediate arithmetic results) to pin down the sign-extension behavior
// at larger widths.
func TestScriptNumRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n       scriptNum
		mpiHex  string
		numLen  int
		skipEnc bool // only the decode direction is checked for this fixture
	}{
		{0, "", maxScriptNumLen, false},
		{1, "01", maxScriptNumLen, false},
		{-1, "81", maxScriptNumLen, false},
		{127, "7f", maxScriptNumLen, false},
		{-127, "ff", maxScriptNumLen, false},
		{128, "8000", maxScriptNumLen, false},
		{-128, "8080", maxScriptNumLen, false},
		{129, "8100", maxScriptNumLen, false},
		{-129, "8180", maxScriptNumLen, false},
		{256, "0001", maxScriptNumLen, false},
		{-256, "0081", maxScriptNumLen, false},
		{32767, "ff7f", maxScriptNumLen, false},
		{-32767, "ffff", maxScriptNumLen, false},
		{32768, "008000", maxScriptNumLen, false},
		{-32768, "008080", maxScriptNumLen, false},
		{65535, "ffff00", maxScriptNumLen, false},
		{-65535, "ffff80", maxScriptNumLen, false},
		{524288, "000008", maxScriptNumLen, false},
		{-524288, "000088", maxScriptNumLen, false},
		{7340032, "000070", maxScriptNumLen, false},
		{-7340032, "0000f0", maxScriptNumLen, false},
		{8388608, "00008000", maxScriptNumLen, false},
		{-8388608, "00008080", maxScriptNumLen, false},
		{2147483647, "ffffff7f", maxScriptNumLen, false},
		{-2147483647, "ffffffff", maxScriptNumLen, false},

		// Beyond int32 range: legal as an arithmetic intermediate but
		// never as a raw push for a 4-byte-limited opcode.
		{2147483648, "0000008000", 5, true},
		{-2147483648, "0000008080", 5, true},
		{4294967295, "ffffffff00", 5, true},
		{-4294967295, "ffffffff80", 5, true},
		{4294967296, "0000000001", 5, true},
		{281474976710655, "ffffffffffff00", 7, true},
		{9223372036854775807, "ffffffffffffff7f", 8, true},
		{-9223372036854775807, "ffffffffffffffff", 8, true},

		// cltvMaxScriptNumLen-width fixtures, the widest MakeScriptNum
		// is ever called with by OP_CHECKLOCKTIMEVERIFY/OP_CHECKSEQUENCEVERIFY.
		{549755813887, "ffffffff7f", cltvMaxScriptNumLen, false},
		{-549755813887, "ffffffffff", cltvMaxScriptNumLen, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(fmt.Sprintf("n=%d/len=%d", tc.n, tc.numLen), func(t *testing.T) {
			t.Parallel()

			want := mustDecodeHex(t, tc.mpiHex)

			if !tc.skipEnc {
				require.Equal(t, want, tc.n.Bytes())
			}

			got, err := MakeScriptNum(want, true, tc.numLen)
			require.NoError(t, err)
			require.Equal(t, tc.n, got)
		})
	}
}

// TestMakeScriptNumRejectsOversize ensures a minimally-encoded value that
// still exceeds the caller's declared scriptNumLen is rejected with
// ErrNumberTooBig rather than silently truncated or sign-extended.
func TestMakeScriptNumRejectsOversize(t *testing.T) {
	t.Parallel()

	oversize := []string{
		"0000008000",
		"0000008080",
		"ffffffff00",
		"ffffffff80",
		"0000000001",
		"0000000081",
		"ffffffffffff00",
		"ffffffffffffff00",
		"ffffffffffffff7f",
		"ffffffffffffffff",
	}

	for _, h := range oversize {
		h := h
		t.Run(h, func(t *testing.T) {
			t.Parallel()

			serialized := mustDecodeHex(t, h)
			_, err := MakeScriptNum(serialized, true, maxScriptNumLen)
			require.Error(t, err)
			require.NoError(t, tstCheckScriptError(err, scriptError(ErrNumberTooBig, "")))
		})
	}
}

// TestMakeScriptNumMinimalData exercises the requireMinimal flag: negative
// zero (0x80) and any encoding with a redundant leading zero byte must be
// rejected when requireMinimal is true, and accepted (decoding to the same
// integer a minimal encoding of the magnitude would) when it is false.
func TestMakeScriptNumMinimalData(t *testing.T) {
	t.Parallel()

	nonMinimal := []struct {
		serializedHex string
		decodedValue  scriptNum
	}{
		{"00", 0},
		{"0100", 1},
		{"7f00", 127},
		{"800000", 128},
		{"810000", 129},
		{"000100", 256},
		{"ff7f00", 32767},
		{"00800000", 32768},
		{"ffff0000", 65535},
		{"00000800", 524288},
		{"00007000", 7340032},
	}

	for _, tc := range nonMinimal {
		tc := tc
		t.Run(tc.serializedHex, func(t *testing.T) {
			t.Parallel()

			serialized := mustDecodeHex(t, tc.serializedHex)

			_, err := MakeScriptNum(serialized, true, maxScriptNumLen)
			require.Error(t, err, "non-minimal encoding must be rejected when requireMinimal is set")
			require.NoError(t, tstCheckScriptError(err, scriptError(ErrMinimalData, "")))

			got, err := MakeScriptNum(serialized, false, maxScriptNumLen)
			require.NoError(t, err, "the same bytes must decode fine once requireMinimal is cleared")
			require.Equal(t, tc.decodedValue, got)
		})
	}

	// Negative zero is rejected when requireMinimal is set; with it cleared
	// MakeScriptNum strips the sign bit and decodes it as zero.
	negZero := mustDecodeHex(t, "80")
	_, err := MakeScriptNum(negZero, true, maxScriptNumLen)
	require.Error(t, err)
	require.NoError(t, tstCheckScriptError(err, scriptError(ErrMinimalData, "")))
}

// TestScriptNumInt32 ensures Int32 saturates at the int32 bounds instead of
// wrapping the way a bare conversion would.
func TestScriptNumInt32(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   scriptNum
		want int32
	}{
		{0, 0},
		{1, 1},
		{-1, -1},
		{2147483647, 2147483647},
		{-2147483647, -2147483647},
		{-2147483648, -2147483648},

		// Out of int32 range: clamped, not wrapped.
		{2147483648, 2147483647},
		{-2147483649, -2147483648},
		{9223372036854775807, 2147483647},
		{-9223372036854775808, -2147483648},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(fmt.Sprintf("%d", tc.in), func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, tc.in.Int32())
		})
	}
}
