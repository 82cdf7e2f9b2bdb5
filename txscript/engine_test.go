// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/gosatsv/svcore/chainhash"
	"github.com/stretchr/testify/require"
)

// fixedSigHasher returns the same digest for every input, which is all a
// test that only cares about whether a signature verifies against a known
// digest needs.
type fixedSigHasher struct {
	hash chainhash.Hash
}

func (f fixedSigHasher) HashForSignature(int, []byte, SigHashType) (chainhash.Hash, error) {
	return f.hash, nil
}

func mustSign(t *testing.T, priv *secp256k1.PrivateKey, hash chainhash.Hash, hashType SigHashType) []byte {
	t.Helper()
	sig := ecdsa.Sign(priv, hash[:])
	der := sig.Serialize()
	return append(der, byte(hashType))
}

func TestTrivialPushOnlyScriptAccepted(t *testing.T) {
	t.Parallel()

	scriptSig := []byte{OP_1}
	scriptPubKey := []byte{OP_NOP, OP_1}

	err := CorrectlySpends(nil, 0, scriptSig, scriptPubKey, 0, nil, nil)
	require.NoError(t, err)
}

func TestDisabledOpcodeInDeadBranch(t *testing.T) {
	t.Parallel()

	scriptPubKey := []byte{OP_0, OP_IF, OP_CAT, OP_ENDIF, OP_1}

	err := CorrectlySpends(nil, 0, nil, scriptPubKey, 0, nil, nil)
	require.Error(t, err)
	require.True(t, IsErrorCode(err, ErrDisabledOpcode))
}

func TestCheckSigP2PKH(t *testing.T) {
	t.Parallel()

	priv := secp256k1.PrivKeyFromBytes([]byte{
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16,
		17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32,
	})
	pub := priv.PubKey().SerializeCompressed()

	var digest chainhash.Hash
	digest[0] = 0x42
	hasher := fixedSigHasher{hash: digest}

	sig := mustSign(t, priv, digest, SigHashAll)

	pkHash := Hash160(pub)
	scriptPubKey := append([]byte{OP_DUP, OP_HASH160, byte(len(pkHash))}, pkHash...)
	scriptPubKey = append(scriptPubKey, OP_EQUALVERIFY, OP_CHECKSIG)

	scriptSig := append(canonicalDataPush(sig), canonicalDataPush(pub)...)

	err := CorrectlySpends(hasher, 0, scriptSig, scriptPubKey, 0, nil, nil)
	require.NoError(t, err)

	// Flip a bit in the signature; verification must now fail.
	badSig := append([]byte(nil), sig...)
	badSig[5] ^= 0xff
	badScriptSig := append(canonicalDataPush(badSig), canonicalDataPush(pub)...)

	err = CorrectlySpends(hasher, 0, badScriptSig, scriptPubKey, 0, nil, nil)
	require.Error(t, err)
}

func TestCheckMultiSigP2SH(t *testing.T) {
	t.Parallel()

	seed := func(b byte) *secp256k1.PrivateKey {
		var raw [32]byte
		for i := range raw {
			raw[i] = b
		}
		return secp256k1.PrivKeyFromBytes(raw[:])
	}

	priv1, priv2, priv3 := seed(1), seed(2), seed(3)
	pub1 := priv1.PubKey().SerializeCompressed()
	pub2 := priv2.PubKey().SerializeCompressed()
	pub3 := priv3.PubKey().SerializeCompressed()

	// redeem = 2-of-3 multisig.
	redeem := []byte{OP_2}
	for _, pk := range [][]byte{pub1, pub2, pub3} {
		redeem = append(redeem, byte(len(pk)))
		redeem = append(redeem, pk...)
	}
	redeem = append(redeem, OP_3, OP_CHECKMULTISIG)

	redeemHash := Hash160(redeem)
	scriptPubKey := append([]byte{OP_HASH160, byte(len(redeemHash))}, redeemHash...)
	scriptPubKey = append(scriptPubKey, OP_EQUAL)

	var digest chainhash.Hash
	digest[0] = 0x24
	hasher := fixedSigHasher{hash: digest}

	sig1 := mustSign(t, priv1, digest, SigHashAll)
	sig2 := mustSign(t, priv2, digest, SigHashAll)

	build := func(sigs ...[]byte) []byte {
		out := []byte{OP_0} // off-by-one dummy element
		for _, s := range sigs {
			out = append(out, canonicalDataPush(s)...)
		}
		out = append(out, canonicalDataPush(redeem)...)
		return out
	}

	scriptSig := build(sig1, sig2)

	err := CorrectlySpends(hasher, 0, scriptSig, scriptPubKey, ScriptVerifyP2SH, nil, nil)
	require.NoError(t, err)

	badSig2 := append([]byte(nil), sig2...)
	badSig2[3] ^= 0xff
	badScriptSig := build(sig1, badSig2)

	err = CorrectlySpends(hasher, 0, badScriptSig, scriptPubKey, ScriptVerifyP2SH, nil, nil)
	require.Error(t, err)
}
