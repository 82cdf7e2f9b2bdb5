// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "github.com/gosatsv/svcore/chainhash"

// HashMerkleBranches takes two hashes, treated as the left and right tree
// nodes, and returns the hash of their concatenation. This is a helper
// function used to aid in the generation of a merkle tree.
func HashMerkleBranches(left, right *chainhash.Hash) chainhash.Hash {
	var buf [chainhash.HashSize * 2]byte
	copy(buf[:chainhash.HashSize], left[:])
	copy(buf[chainhash.HashSize:], right[:])
	return chainhash.DoubleHashH(buf[:])
}

// BuildMerkleTreeStore creates a merkle tree from a slice of transaction
// hashes and stores it using a linear array as described below, returning
// the resulting array. When an odd number of leaves remain at a level, the
// last one is duplicated to pair with itself, matching the reference
// algorithm.
//
// A merkle tree is a tree in which every non-leaf node is the hash of its
// child nodes. A diagram depicting how this works for a tree with 5
// transactions follows:
//
//	         root = h1234 + h5555
//	        /                     \
//	  h1234 = h12 + h34        h5555 = h55 + h55
//	   /            \             /
//	h12 = h1+h2  h34 = h3+h4  h55 = h5+h5
//	  /      \      /      \     /
//	h1      h2    h3      h4   h5
func BuildMerkleTreeStore(txHashes []chainhash.Hash) []*chainhash.Hash {
	if len(txHashes) == 0 {
		return nil
	}

	// Calculate the total number of nodes a fully realized tree would
	// have, accounting for the odd-leaf duplication at every level.
	nextPoT := nextPowerOfTwo(len(txHashes))
	arraySize := nextPoT*2 - 1
	merkles := make([]*chainhash.Hash, arraySize)

	for i, hash := range txHashes {
		h := hash
		merkles[i] = &h
	}

	offset := nextPoT
	for i := 0; i < arraySize-1; i += 2 {
		switch {
		case merkles[i] == nil:
			merkles[offset] = nil
		case merkles[i+1] == nil:
			newHash := HashMerkleBranches(merkles[i], merkles[i])
			merkles[offset] = &newHash
		default:
			newHash := HashMerkleBranches(merkles[i], merkles[i+1])
			merkles[offset] = &newHash
		}
		offset++
	}

	return merkles
}

// CalcMerkleRoot computes the merkle root over txHashes directly, without
// retaining the intermediate tree.
func CalcMerkleRoot(txHashes []chainhash.Hash) chainhash.Hash {
	if len(txHashes) == 0 {
		return chainhash.Hash{}
	}

	merkles := BuildMerkleTreeStore(txHashes)
	root := merkles[len(merkles)-1]
	if root == nil {
		return chainhash.Hash{}
	}
	return *root
}

// nextPowerOfTwo returns the next highest power of two from a given
// number if it is not already a power of two. This is a helper function
// used during the calculation of a merkle tree.
func nextPowerOfTwo(n int) int {
	if n&(n-1) == 0 {
		return n
	}

	exponent := 0
	for n > 0 {
		n >>= 1
		exponent++
	}
	return 1 << uint(exponent)
}
