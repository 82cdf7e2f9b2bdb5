// Copyright (c) 2015-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"sync"

	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/gosatsv/svcore/chainhash"

	"github.com/decred/dcrd/lru"
)

// sigCacheEntry identifies a verified (sighash, signature, pubkey) triple.
// Caching on the sighash alone would conflate different signatures/keys
// that happen to share one, so the full triple is hashed into the key.
type sigCacheEntry struct {
	sigHash chainhash.Hash
	sig     string
	pubKey  string
}

// SigCache mirrors the reference client's signature cache: once an ECDSA
// signature has been verified to be valid for a given (sighash, sig,
// pubkey) triple, that fact is cached so a later encounter of the exact
// same triple (common when the same transaction is checked more than once,
// e.g. during reorg re-validation) skips the actual elliptic-curve math.
type SigCache struct {
	mu      sync.Mutex
	entries *lru.Map[sigCacheEntry, struct{}]
}

// NewSigCache creates a SigCache able to hold up to maxEntries verified
// signatures before it begins evicting the least recently used ones.
func NewSigCache(maxEntries uint) *SigCache {
	return &SigCache{
		entries: lru.NewMap[sigCacheEntry, struct{}](maxEntries),
	}
}

// Exists returns whether the (sigHash, sig, pubKey) triple is already
// known to be valid.
func (c *SigCache) Exists(sigHash chainhash.Hash, sig, pubKey []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries.Get(sigCacheEntry{sigHash, string(sig), string(pubKey)})
	return ok
}

// Add records that (sigHash, sig, pubKey) has been verified as valid.
func (c *SigCache) Add(sigHash chainhash.Hash, sig, pubKey []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Put(sigCacheEntry{sigHash, string(sig), string(pubKey)}, struct{}{})
}

// verifySignature checks a raw DER-encoded ECDSA signature (without its
// trailing sighash-type byte) against sigHash using pubKey, consulting and
// updating cache if non-nil.
func verifySignature(cache *SigCache, sigHash chainhash.Hash, rawSig, rawPubKey []byte) bool {
	if cache != nil && cache.Exists(sigHash, rawSig, rawPubKey) {
		return true
	}

	pubKey, err := parsePubKey(rawPubKey)
	if err != nil {
		return false
	}

	sig, err := ecdsa.ParseDERSignature(rawSig)
	if err != nil {
		return false
	}

	valid := sig.Verify(sigHash[:], pubKey)
	if valid && cache != nil {
		cache.Add(sigHash, rawSig, rawPubKey)
	}
	return valid
}
