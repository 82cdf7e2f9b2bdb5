// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "github.com/gosatsv/svcore/chainhash"

// SigHashType represents the hash type bits used near the end of a
// signature to specify what data the signature covers.
type SigHashType byte

const (
	SigHashAll          SigHashType = 0x1
	SigHashNone         SigHashType = 0x2
	SigHashSingle       SigHashType = 0x3
	SigHashAnyOneCanPay SigHashType = 0x80

	sigHashMask = 0x1f
)

// SigHasher is implemented by the transaction type the engine validates
// scripts for. The engine calls HashForSignature while evaluating
// OP_CHECKSIG/OP_CHECKMULTISIG; it does not implement signature hashing
// itself, since the wire encoding of a full transaction is outside the
// consensus core this package provides.
type SigHasher interface {
	// HashForSignature computes the digest that is signed for the input
	// at inputIndex, given the sub-script (the portion of the spent
	// output's script following the last executed OP_CODESEPARATOR,
	// with all occurrences of the signature's own serialized push
	// removed) and the requested hash type.
	HashForSignature(inputIndex int, subScript []byte, hashType SigHashType) (chainhash.Hash, error)
}
