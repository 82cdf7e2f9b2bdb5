// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"testing"

	"github.com/gosatsv/svcore/chainhash"
	"github.com/stretchr/testify/require"
)

// TestMerkleSingleLeaf verifies that a tree with one leaf has that leaf as
// its root.
func TestMerkleSingleLeaf(t *testing.T) {
	leaf := chainhash.HashH([]byte("only tx"))
	root := CalcMerkleRoot([]chainhash.Hash{leaf})
	require.Equal(t, leaf, root)
}

// TestMerkleOddDuplication verifies that an odd number of leaves duplicates
// the last leaf rather than leaving its sibling slot empty.
func TestMerkleOddDuplication(t *testing.T) {
	a := chainhash.HashH([]byte("a"))
	b := chainhash.HashH([]byte("b"))
	c := chainhash.HashH([]byte("c"))

	threeLeaf := CalcMerkleRoot([]chainhash.Hash{a, b, c})
	fourLeaf := CalcMerkleRoot([]chainhash.Hash{a, b, c, c})

	require.Equal(t, fourLeaf, threeLeaf)
}

// TestMerkleTreeStoreMatchesCalc verifies BuildMerkleTreeStore's root
// matches the one CalcMerkleRoot computes directly.
func TestMerkleTreeStoreMatchesCalc(t *testing.T) {
	hashes := makeHashes(5)

	tree := BuildMerkleTreeStore(hashes)
	root := CalcMerkleRoot(hashes)

	require.Equal(t, root, *tree[len(tree)-1])
}

func TestMerkleEmpty(t *testing.T) {
	require.Nil(t, BuildMerkleTreeStore(nil))
	require.Equal(t, chainhash.Hash{}, CalcMerkleRoot(nil))
}

func makeHashes(size int) []chainhash.Hash {
	hashes := make([]chainhash.Hash, size)
	for i := range hashes {
		hashes[i] = chainhash.HashH([]byte(fmt.Sprintf("leaf-%d", i)))
	}
	return hashes
}

func BenchmarkMerkle(b *testing.B) {
	sizes := []int{1000, 2000, 4000, 8000, 16000, 32000}

	for _, size := range sizes {
		hashes := makeHashes(size)
		name := fmt.Sprintf("%d", size)
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				BuildMerkleTreeStore(hashes)
			}
		})
	}
}
