// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"

	"github.com/gosatsv/svcore/blockchain/workmath"
	"github.com/gosatsv/svcore/chainhash"
	"github.com/gosatsv/svcore/wire"
)

// ChainInfo carries the values the chain engine derives for a header once
// it is linked into the tree: its height, the cumulative proof of work of
// the chain ending at it, and a running transaction count. Stores persist
// ChainInfo alongside the raw header so a restart does not need to replay
// the whole chain to recompute it.
type ChainInfo struct {
	// Height is the distance from the genesis block, which is height 0.
	Height int32

	// ChainWork is the total amount of work in the chain up to and
	// including this block.
	ChainWork *big.Int

	// ChainTxCount is the running count of transactions up to and
	// including this block, used to estimate the fraction of the chain
	// that has been downloaded during initial sync.
	ChainTxCount int64
}

// StoredBlock is the in-memory node of the chain engine's block tree. It
// pairs a wire.BlockHeader with the ChainInfo the engine derived for it and
// links to its parent, forming the tree that Add walks and that
// findSplit/handleNewBestChain traverse to pick the best chain.
type StoredBlock struct {
	parent *StoredBlock

	hash   chainhash.Hash
	header wire.BlockHeader
	info   ChainInfo
}

// NewStoredBlock builds a StoredBlock for header attached to parent. When
// parent is nil the resulting node is treated as a genesis block: its
// height is 0 and its chain work is just the header's own work.
func NewStoredBlock(header wire.BlockHeader, parent *StoredBlock) *StoredBlock {
	sb := &StoredBlock{
		parent: parent,
		hash:   header.BlockHash(),
		header: header,
	}

	work := workmath.CalcWork(header.Bits)
	if parent == nil {
		sb.info = ChainInfo{
			Height:       0,
			ChainWork:    work,
			ChainTxCount: 0,
		}
		return sb
	}

	sb.info = ChainInfo{
		Height:       parent.info.Height + 1,
		ChainWork:    new(big.Int).Add(parent.info.ChainWork, work),
		ChainTxCount: parent.info.ChainTxCount,
	}
	return sb
}

// restoreStoredBlock rebuilds a StoredBlock from a Record the store
// already validated and persisted, without recomputing ChainInfo. Used
// when the engine links a Store's existing head back into the in-memory
// tree at startup.
func restoreStoredBlock(header wire.BlockHeader, info ChainInfo, parent *StoredBlock) *StoredBlock {
	return &StoredBlock{
		parent: parent,
		hash:   header.BlockHash(),
		header: header,
		info:   info,
	}
}

// Hash returns the block identifier hash for this node.
func (sb *StoredBlock) Hash() chainhash.Hash { return sb.hash }

// Header returns a copy of the stored block header.
func (sb *StoredBlock) Header() wire.BlockHeader { return sb.header }

// ChainInfo returns the derived chain info for this node.
func (sb *StoredBlock) ChainInfo() ChainInfo { return sb.info }

// Parent returns the predecessor node in the tree, or nil for a genesis
// node.
func (sb *StoredBlock) Parent() *StoredBlock { return sb.parent }

// Height implements HeaderCtx.
func (sb *StoredBlock) Height() int32 { return sb.info.Height }

// Bits implements HeaderCtx.
func (sb *StoredBlock) Bits() uint32 { return sb.header.Bits }

// Timestamp implements HeaderCtx, returning the header time as Unix
// seconds the way the retarget math expects.
func (sb *StoredBlock) Timestamp() int64 { return sb.header.Timestamp.Unix() }

// RelativeAncestorCtx returns the ancestor of this node distance blocks
// before it in the chain, or nil if distance exceeds the node's height.
func (sb *StoredBlock) RelativeAncestorCtx(distance int32) HeaderCtx {
	n := sb.Ancestor(sb.info.Height - distance)
	if n == nil {
		return nil
	}
	return n
}

// Ancestor returns the ancestor node at the given height by walking
// parent links. It returns nil if no such ancestor exists.
func (sb *StoredBlock) Ancestor(height int32) *StoredBlock {
	if height < 0 || height > sb.info.Height {
		return nil
	}

	n := sb
	for n != nil && n.info.Height != height {
		n = n.parent
	}
	return n
}

// RelativeAncestor returns the ancestor node distance blocks before this
// node in the chain.
func (sb *StoredBlock) RelativeAncestor(distance int32) *StoredBlock {
	return sb.Ancestor(sb.info.Height - distance)
}

// CalcPastMedianTime calculates the median time of the previous few
// blocks prior to, and including, this node, per the MTP-11 rule used to
// bound acceptable header timestamps.
func (sb *StoredBlock) CalcPastMedianTime() int64 {
	timestamps := make([]int64, 0, medianTimeBlocks)
	iterNode := sb
	for i := 0; i < medianTimeBlocks && iterNode != nil; i++ {
		timestamps = append(timestamps, iterNode.Timestamp())
		iterNode = iterNode.parent
	}

	// Sort the timestamps (insertion sort; medianTimeBlocks is small).
	for i := 1; i < len(timestamps); i++ {
		for j := i; j > 0 && timestamps[j-1] > timestamps[j]; j-- {
			timestamps[j-1], timestamps[j] = timestamps[j], timestamps[j-1]
		}
	}

	return timestamps[len(timestamps)/2]
}

// medianTimeBlocks is the number of previous blocks examined to calculate
// the median past time used to validate block timestamps.
const medianTimeBlocks = 11
