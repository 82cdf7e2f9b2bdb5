// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg supplies the per-network parameters the chain engine
// needs to validate a header chain: the genesis header, proof-of-work
// limits, retarget cadence, and hard-coded checkpoints. It also provides
// the reference RuleChecker the engine uses unless a caller supplies its
// own.
package chaincfg

import (
	"math/big"
	"time"

	"github.com/gosatsv/svcore/blockchain"
	"github.com/gosatsv/svcore/chainhash"
	"github.com/gosatsv/svcore/wire"
)

// Checkpoint identifies a block by height and hash that is hard-coded into
// a Params as known-good, guarding against a deep reorganize rewriting
// history before that point.
type Checkpoint struct {
	Height int32
	Hash   chainhash.Hash
}

// Params defines a network's consensus parameters for header validation.
type Params struct {
	// Name is the human-readable identifier for the network, e.g.
	// "mainnet".
	Name string

	// GenesisHeader is the first header of the chain, at height 0.
	GenesisHeader wire.BlockHeader

	// PowLimit is the highest proof-of-work target permitted on this
	// network, i.e. the lowest possible difficulty.
	PowLimit *big.Int

	// PowLimitBits is PowLimit in compact form.
	PowLimitBits uint32

	// BlocksPerRetarget is the number of blocks between difficulty
	// retargets.
	BlocksPerRetarget int32

	// TargetTimespan is the desired amount of time it should take to
	// find BlocksPerRetarget blocks.
	TargetTimespan time.Duration

	// RetargetAdjustmentFactor is the adjustment factor used to limit
	// the minimum and maximum amount of adjustment that can occur
	// between difficulty retargets.
	RetargetAdjustmentFactor int64

	// ReduceMinDifficulty defines whether the network allows minimum
	// difficulty blocks after a long block interval, as testnets
	// typically do.
	ReduceMinDifficulty bool

	// MinDiffReductionTime is the amount of time after which the minimum
	// difficulty rule, if enabled, may be applied.
	MinDiffReductionTime time.Duration

	// NoRetargeting defines whether the network has difficulty
	// retargeting enabled or not, as regression test networks typically
	// do not.
	NoRetargeting bool

	// Checkpoints is a list of known-good block hashes, ordered by
	// increasing height.
	Checkpoints []Checkpoint

	// BlockRejectNumRequired and BlockUpgradeNumToCheck configure the
	// BIP34/66-style rolling supermajority version check: once
	// BlockRejectNumRequired of the trailing BlockUpgradeNumToCheck
	// connected blocks carry a newer version than a candidate, that
	// candidate is rejected as obsolete. Left zero, the engine applies
	// its own defaults (950 out of 1000).
	BlockRejectNumRequired uint32
	BlockUpgradeNumToCheck uint32
}

// BlockChainConfig builds the blockchain.Config this Params implies: the
// reference RuleChecker, the genesis header, and the retarget/checkpoint
// values the engine needs directly. The caller still supplies the Store.
func (p *Params) BlockChainConfig(store blockchain.Store) blockchain.Config {
	checkpoints := make([]blockchain.Checkpoint, len(p.Checkpoints))
	for i, cp := range p.Checkpoints {
		checkpoints[i] = blockchain.Checkpoint{Height: cp.Height, Hash: cp.Hash}
	}

	return blockchain.Config{
		Store:                  store,
		RuleChecker:            NewRuleChecker(p),
		GenesisHeader:          p.GenesisHeader,
		PowLimit:               p.PowLimit,
		Checkpoints:            checkpoints,
		BlocksPerRetarget:      p.BlocksPerRetarget,
		MinRetargetTimespan:    p.minRetargetTimespan(),
		MaxRetargetTimespan:    p.maxRetargetTimespan(),
		BlockRejectNumRequired: p.BlockRejectNumRequired,
		BlockUpgradeNumToCheck: p.BlockUpgradeNumToCheck,
	}
}

// minRetargetTimespan returns the floor for the clamped retarget window.
func (p *Params) minRetargetTimespan() int64 {
	return (int64(p.TargetTimespan) / p.RetargetAdjustmentFactor) / int64(time.Second)
}

// maxRetargetTimespan returns the ceiling for the clamped retarget window.
func (p *Params) maxRetargetTimespan() int64 {
	return (int64(p.TargetTimespan) * p.RetargetAdjustmentFactor) / int64(time.Second)
}

// CheckpointAtHeight returns the hard-coded checkpoint at height, if one
// exists.
func (p *Params) CheckpointAtHeight(height int32) (Checkpoint, bool) {
	for _, c := range p.Checkpoints {
		if c.Height == height {
			return c, true
		}
	}
	return Checkpoint{}, false
}
