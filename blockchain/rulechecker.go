// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "github.com/gosatsv/svcore/wire"

// HeaderCtx is the read-only view of a linked header a RuleChecker needs
// to evaluate retarget and timestamp rules: its own fields plus enough of
// the tree around it to walk ancestors. StoredBlock satisfies this
// interface; it is factored out so rule code never depends on the
// concrete node type directly, matching the split the teacher's
// difficulty.go keeps between HeaderCtx/ChainCtx and BlockChain.
type HeaderCtx interface {
	// Height is the header's distance from genesis.
	Height() int32

	// Bits is the header's compact-encoded difficulty target.
	Bits() uint32

	// Timestamp is the header's time field as Unix seconds.
	Timestamp() int64

	// RelativeAncestorCtx returns the ancestor distance blocks before
	// this one, or nil if none exists.
	RelativeAncestorCtx(distance int32) HeaderCtx
}

// ChainCtx is the read-only view of chain-wide parameters a RuleChecker
// needs: retarget cadence and timespan bounds, independent of any single
// header.
type ChainCtx interface {
	// BlocksPerRetarget is the number of blocks between difficulty
	// retargets.
	BlocksPerRetarget() int32

	// MinRetargetTimespan is the minimum allowed retarget timespan, in
	// seconds, after clamping.
	MinRetargetTimespan() int64

	// MaxRetargetTimespan is the maximum allowed retarget timespan, in
	// seconds, after clamping.
	MaxRetargetTimespan() int64
}

// RuleChecker evaluates the policy rules a candidate header must satisfy
// before the engine will link it into the tree, chiefly the required
// difficulty target. Proof-of-work self-consistency (hash <= target), the
// MTP-11 timestamp bound, the version supermajority, and agreement with
// Config.Checkpoints are checks the engine performs itself; the retarget
// policy is delegated here so callers can plug in mainnet, testnet, or
// regtest behavior without subclassing the engine.
type RuleChecker interface {
	// Check validates candidate against its parent and the chain ctx,
	// returning a RuleError describing the first violation found, or nil
	// if candidate is acceptable.
	Check(candidate HeaderCtx, parent HeaderCtx, ctx ChainCtx, header *wire.BlockHeader) error

	// NextWorkRequired returns the difficulty bits a header extending
	// lastNode at newBlockTime must carry.
	NextWorkRequired(lastNode HeaderCtx, newBlockTime int64, ctx ChainCtx) (uint32, error)
}

// RuleCheckerFactory builds a RuleChecker bound to a chain engine. It
// exists so a RuleChecker implementation can hold state derived from the
// engine (such as a checkpoint index) without the blockchain package
// importing chaincfg.
type RuleCheckerFactory interface {
	// NewRuleChecker returns a RuleChecker for use by a single BlockChain.
	NewRuleChecker() RuleChecker
}
