// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"
	"time"

	"github.com/gosatsv/svcore/blockchain"
	"github.com/gosatsv/svcore/blockchain/workmath"
	"github.com/gosatsv/svcore/wire"
)

// ruleChecker is the reference blockchain.RuleChecker implementation: it
// enforces the retarget cadence described by a Params (checkpoint
// agreement is checked by the engine itself, from Config.Checkpoints),
// the same retarget rules the teacher's difficulty.go computes directly
// against a live BlockChain, now expressed against the portable
// blockchain.HeaderCtx/ChainCtx views so it can be swapped out entirely.
type ruleChecker struct {
	params *Params
}

// NewRuleChecker returns the reference RuleChecker for params.
func NewRuleChecker(params *Params) blockchain.RuleChecker {
	return &ruleChecker{params: params}
}

// Check implements blockchain.RuleChecker.
func (r *ruleChecker) Check(candidate, parent blockchain.HeaderCtx, ctx blockchain.ChainCtx, header *wire.BlockHeader) error {
	if parent == nil {
		return nil
	}

	required, err := r.NextWorkRequired(parent, header.Timestamp.Unix(), ctx)
	if err != nil {
		return err
	}
	if header.Bits != required {
		return blockchain.RuleError{
			ErrorCode:   blockchain.ErrUnexpectedDifficulty,
			Description: "block difficulty does not match the value required by the retarget rule",
		}
	}

	if cp, ok := r.params.CheckpointAtHeight(candidate.Height()); ok {
		// The hash check happens in the engine, which is the only
		// place that actually has the candidate's own hash; the
		// checker only needs to confirm a checkpoint exists so the
		// engine knows to enforce it. The real comparison lives in
		// blockchain.BlockChain's checkCheckpoint, against the
		// checkpoints BlockChainConfig copies into blockchain.Config.
		_ = cp
	}

	return nil
}

// NextWorkRequired implements blockchain.RuleChecker.
func (r *ruleChecker) NextWorkRequired(lastNode blockchain.HeaderCtx, newBlockTime int64, ctx blockchain.ChainCtx) (uint32, error) {
	if r.params.NoRetargeting {
		return r.params.PowLimitBits, nil
	}

	if lastNode == nil || lastNode.Height() == 0 {
		return r.params.PowLimitBits, nil
	}

	// Only retarget at the configured cadence; every other block carries
	// forward the previous difficulty, possibly subject to the reduced
	// minimum-difficulty rule on networks that enable it.
	if (lastNode.Height()+1)%r.params.BlocksPerRetarget != 0 {
		if r.params.ReduceMinDifficulty {
			allowMinTime := newBlockTime - int64(r.params.MinDiffReductionTime/time.Second)
			if lastNode.Timestamp() < allowMinTime {
				return r.params.PowLimitBits, nil
			}
			return findPrevReducedDifficulty(lastNode, r.params), nil
		}
		return lastNode.Bits(), nil
	}

	firstNode := lastNode.RelativeAncestorCtx(r.params.BlocksPerRetarget - 1)
	if firstNode == nil {
		return 0, blockchain.AssertError("unable to obtain last retarget block")
	}

	actualTimespan := lastNode.Timestamp() - firstNode.Timestamp()
	adjustedTimespan := actualTimespan
	if actualTimespan < r.params.minRetargetTimespan() {
		adjustedTimespan = r.params.minRetargetTimespan()
	} else if actualTimespan > r.params.maxRetargetTimespan() {
		adjustedTimespan = r.params.maxRetargetTimespan()
	}

	oldTarget := workmath.CompactToBig(lastNode.Bits())
	newTarget := new(big.Int).Mul(oldTarget, big.NewInt(adjustedTimespan))
	targetTimespan := int64(r.params.TargetTimespan / time.Second)
	newTarget.Div(newTarget, big.NewInt(targetTimespan))

	if newTarget.Cmp(r.params.PowLimit) > 0 {
		newTarget.Set(r.params.PowLimit)
	}

	return workmath.BigToCompact(newTarget), nil
}

// findPrevReducedDifficulty searches backwards through the chain for the
// last block that was not produced under the reduced-difficulty exception,
// the way a testnet must to keep retargets anchored to real difficulty.
func findPrevReducedDifficulty(startNode blockchain.HeaderCtx, params *Params) uint32 {
	iterNode := startNode
	for iterNode != nil && iterNode.Height()%params.BlocksPerRetarget != 0 &&
		iterNode.Bits() == params.PowLimitBits {

		iterNode = iterNode.RelativeAncestorCtx(1)
	}

	if iterNode != nil {
		return iterNode.Bits()
	}
	return params.PowLimitBits
}
