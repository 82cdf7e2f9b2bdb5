// Copyright (c) 2015-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "github.com/decred/dcrd/dcrec/secp256k1/v4"

// parsePubKey parses a serialized compressed or uncompressed secp256k1
// public key.
func parsePubKey(raw []byte) (*secp256k1.PublicKey, error) {
	return secp256k1.ParsePubKey(raw)
}
