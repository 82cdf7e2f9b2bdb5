// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"
	"time"

	"github.com/gosatsv/svcore/chainhash"
	"github.com/gosatsv/svcore/wire"
)

// mainGenesisMerkleRoot is the merkle root of the single coinbase
// transaction in the main network's genesis block.
var mainGenesisMerkleRoot = chainhash.Hash([chainhash.HashSize]byte{
	0x04, 0x66, 0xbc, 0xf2, 0x29, 0x9e, 0x92, 0xab,
	0x56, 0x85, 0x26, 0x62, 0x65, 0x80, 0x63, 0xde,
	0xfd, 0x6e, 0x20, 0x92, 0x3f, 0xf4, 0xb3, 0x04,
	0x53, 0xd1, 0x54, 0xb9, 0x88, 0x31, 0xfb, 0xdc,
})

// mainGenesisHeader is the first header of the main network chain.
var mainGenesisHeader = wire.BlockHeader{
	Version:    1,
	PrevBlock:  chainhash.Hash{},
	MerkleRoot: mainGenesisMerkleRoot,
	Timestamp:  time.Unix(1631485359, 0),
	Bits:       0x1f00ffff,
	Nonce:      2083385383,
}

// regTestGenesisMerkleRoot is shared by every non-production network this
// package defines.
var regTestGenesisMerkleRoot = mainGenesisMerkleRoot

// regTestGenesisHeader is the first header of the regression test chain.
var regTestGenesisHeader = wire.BlockHeader{
	Version:    1,
	PrevBlock:  chainhash.Hash{},
	MerkleRoot: regTestGenesisMerkleRoot,
	Timestamp:  time.Unix(1735376054, 0),
	Bits:       0x207fffff,
	Nonce:      2083236894,
}

// bigFromHex is a helper for defining a PowLimit as a readable hex literal.
func bigFromHex(hex string) *big.Int {
	n, ok := new(big.Int).SetString(hex, 16)
	if !ok {
		panic("chaincfg: invalid hex constant " + hex)
	}
	return n
}

// MainNetParams defines the network parameters for the main network.
var MainNetParams = Params{
	Name:                     "mainnet",
	GenesisHeader:            mainGenesisHeader,
	PowLimit:                 bigFromHex("0000ffff00000000000000000000000000000000000000000000000000000000"),
	PowLimitBits:             0x1f00ffff,
	BlocksPerRetarget:        2016,
	TargetTimespan:           time.Hour * 24 * 14,
	RetargetAdjustmentFactor: 4,
	ReduceMinDifficulty:      false,
	NoRetargeting:            false,
}

// RegressionNetParams defines the network parameters for the regression
// test network, which disables retargeting so every block carries the
// minimum difficulty, PowLimitBits.
var RegressionNetParams = Params{
	Name:                     "regtest",
	GenesisHeader:            regTestGenesisHeader,
	PowLimit:                 bigFromHex("7fffff0000000000000000000000000000000000000000000000000000000000"),
	PowLimitBits:             0x207fffff,
	BlocksPerRetarget:        2016,
	TargetTimespan:           time.Hour * 24 * 14,
	RetargetAdjustmentFactor: 4,
	ReduceMinDifficulty:      false,
	NoRetargeting:            true,
}

// TestNetParams defines the network parameters for the public test
// network, which allows minimum-difficulty blocks after a long gap between
// blocks.
var TestNetParams = Params{
	Name:                     "testnet",
	GenesisHeader:            regTestGenesisHeader,
	PowLimit:                 bigFromHex("7fffff0000000000000000000000000000000000000000000000000000000000"),
	PowLimitBits:             0x207fffff,
	BlocksPerRetarget:        2016,
	TargetTimespan:           time.Hour * 24 * 14,
	RetargetAdjustmentFactor: 4,
	ReduceMinDifficulty:      true,
	MinDiffReductionTime:     time.Minute * 20,
	NoRetargeting:            false,
}
