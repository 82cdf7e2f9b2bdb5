// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"sync"
	"testing"
	"time"

	"github.com/gosatsv/svcore/blockchain/workmath"
	"github.com/gosatsv/svcore/chainhash"
	"github.com/gosatsv/svcore/wire"
	"github.com/stretchr/testify/require"
)

// memStore is a minimal in-memory Store used to exercise the chain engine
// without pulling in a real backing database, the way the teacher's
// test-only chainSetup helper built a throwaway database per test.
type memStore struct {
	mu      sync.Mutex
	records map[chainhash.Hash]Record
	head    chainhash.Hash
	hasHead bool
}

func newMemStore() *memStore {
	return &memStore{records: make(map[chainhash.Hash]Record)}
}

func (s *memStore) Get(hash chainhash.Hash) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[hash]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *memStore) Has(hash chainhash.Hash) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[hash]
	return ok, nil
}

func (s *memStore) Put(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Header.BlockHash()] = rec
	return nil
}

func (s *memStore) ChainHead() (chainhash.Hash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasHead {
		return chainhash.Hash{}, ErrNotFound
	}
	return s.head, nil
}

func (s *memStore) SetChainHead(hash chainhash.Hash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.head = hash
	s.hasHead = true
	return nil
}

func (s *memStore) Rollback(hash chainhash.Hash) error {
	return ErrUnsupported
}

// noopRuleChecker accepts every candidate and never changes difficulty,
// isolating the engine's own structural and sequencing logic from any
// particular retarget policy.
type noopRuleChecker struct{}

func (noopRuleChecker) Check(candidate, parent HeaderCtx, ctx ChainCtx, header *wire.BlockHeader) error {
	return nil
}

func (noopRuleChecker) NextWorkRequired(lastNode HeaderCtx, newBlockTime int64, ctx ChainCtx) (uint32, error) {
	return 0x207fffff, nil
}

// testBits is the easiest regtest-style target (about 2^255): roughly every
// other hash satisfies it, so nextHeader finds a valid nonce in a few tries,
// and each header still carries the same positive amount of work, so a
// longer chain always has more cumulative work. Mining a realistic target
// is not feasible in a unit test.
const testBits = uint32(0x207fffff)

var testPowLimit = workmath.CompactToBig(testBits)

func testGenesis() wire.BlockHeader {
	return wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{},
		MerkleRoot: chainhash.HashH([]byte("genesis")),
		Timestamp:  time.Unix(1735700000, 0),
		Bits:       testBits,
		Nonce:      1,
	}
}

func newTestChain(t *testing.T) (*BlockChain, *memStore) {
	t.Helper()

	store := newMemStore()
	chain, err := New(Config{
		Store:         store,
		RuleChecker:   noopRuleChecker{},
		GenesisHeader: testGenesis(),
		PowLimit:      testPowLimit,
	})
	require.NoError(t, err)
	return chain, store
}

// nextHeader builds a header extending parent with a distinguishing nonce
// so it hashes differently from its siblings, one second later than
// parent so it always clears the MTP-11 bound in these short test chains.
// The nonce field is then incremented until the header's hash satisfies
// testBits.
func nextHeader(parent wire.BlockHeader, nonce uint32) wire.BlockHeader {
	parentHash := parent.BlockHash()
	hdr := wire.BlockHeader{
		Version:    1,
		PrevBlock:  parentHash,
		MerkleRoot: chainhash.HashH([]byte{byte(nonce), byte(nonce >> 8), byte(nonce >> 16)}),
		Timestamp:  parent.Timestamp.Add(time.Second),
		Bits:       testBits,
		Nonce:      nonce,
	}
	for {
		hash := hdr.BlockHash()
		if workmath.HashToBig(&hash).Cmp(testPowLimit) <= 0 {
			return hdr
		}
		hdr.Nonce++
	}
}

// TestLinearExtension covers spec.md §8 scenario 1: a single valid child
// of genesis advances the head and fires exactly one new-block
// notification.
func TestLinearExtension(t *testing.T) {
	chain, _ := newTestChain(t)
	genesis := chain.ChainHead()

	var notified []*StoredBlock
	chain.AddNewBlockListener(func(b *StoredBlock) {
		notified = append(notified, b)
	}, nil)

	b1 := nextHeader(genesis.Header(), 1)
	res, err := chain.Add(b1)
	require.NoError(t, err)
	require.Equal(t, Accepted, res)

	require.Equal(t, b1.BlockHash(), chain.ChainHead().Hash())
	require.Equal(t, int32(1), chain.BestHeight())
	require.Len(t, notified, 1)
	require.Equal(t, int32(1), notified[0].Height())
}

// TestOrphanThenParent covers spec.md §8 scenario 2: a block fed before
// its parent is held as an orphan, then promoted once the parent connects,
// firing two ordered new-block notifications and no reorganize.
func TestOrphanThenParent(t *testing.T) {
	chain, _ := newTestChain(t)
	genesis := chain.ChainHead()

	b1 := nextHeader(genesis.Header(), 1)
	b2 := nextHeader(b1, 2)

	var newBlocks []*StoredBlock
	var reorgs int
	chain.AddNewBlockListener(func(b *StoredBlock) { newBlocks = append(newBlocks, b) }, nil)
	chain.AddReorganizeListener(func(split *StoredBlock, old, new []*StoredBlock) { reorgs++ }, nil)

	res, err := chain.Add(b2)
	require.NoError(t, err)
	require.Equal(t, Orphaned, res)
	require.True(t, chain.IsOrphan(b2.BlockHash()))

	res, err = chain.Add(b1)
	require.NoError(t, err)
	require.Equal(t, Accepted, res)

	require.Equal(t, b2.BlockHash(), chain.ChainHead().Hash())
	require.Equal(t, int32(2), chain.BestHeight())
	require.False(t, chain.IsOrphan(b2.BlockHash()))

	require.Equal(t, 0, reorgs)
	require.Len(t, newBlocks, 2)
	require.Equal(t, b1.BlockHash(), newBlocks[0].Hash())
	require.Equal(t, b2.BlockHash(), newBlocks[1].Hash())
}

// TestReorgOvertakesMainChain covers spec.md §8 scenario 3: a side chain
// accepted below the head's cumulative work sits idle until it grows past
// it, at which point a reorganize fires with the documented split/old/new
// shape and the head moves to the new tip. Every synthetic header here
// shares the same easy bits (mining a harder target is not feasible in a
// unit test), so "more work" is expressed as "more blocks": the side
// chain must reach one block deeper than the main chain to strictly
// exceed its cumulative work, per the engine's strict '>' tie-break.
func TestReorgOvertakesMainChain(t *testing.T) {
	chain, _ := newTestChain(t)
	genesis := chain.ChainHead()

	a := nextHeader(genesis.Header(), 1)
	_, err := chain.Add(a)
	require.NoError(t, err)

	bHdr := nextHeader(a, 2)
	_, err = chain.Add(bHdr)
	require.NoError(t, err)

	cHdr := nextHeader(bHdr, 3)
	_, err = chain.Add(cHdr)
	require.NoError(t, err)

	require.Equal(t, cHdr.BlockHash(), chain.ChainHead().Hash())

	// Side branch off A: accepted, head unchanged, less work than C.
	d := nextHeader(a, 10)
	res, err := chain.Add(d)
	require.NoError(t, err)
	require.Equal(t, Accepted, res)
	require.Equal(t, cHdr.BlockHash(), chain.ChainHead().Hash())

	// E matches C's height and so its work, which is not enough to
	// reorg under the strict '>' rule.
	e := nextHeader(d, 11)
	res, err = chain.Add(e)
	require.NoError(t, err)
	require.Equal(t, Accepted, res)
	require.Equal(t, cHdr.BlockHash(), chain.ChainHead().Hash())

	var splitSeen chainhash.Hash
	var oldChain, newChain []*StoredBlock
	chain.AddReorganizeListener(func(split *StoredBlock, old, new []*StoredBlock) {
		splitSeen = split.Hash()
		oldChain = old
		newChain = new
	}, nil)

	// F finally puts the side branch one block ahead of C.
	f := nextHeader(e, 12)
	res, err = chain.Add(f)
	require.NoError(t, err)
	require.Equal(t, Accepted, res)

	require.Equal(t, f.BlockHash(), chain.ChainHead().Hash())
	require.Equal(t, a.BlockHash(), splitSeen)

	require.Len(t, oldChain, 2)
	require.Equal(t, cHdr.BlockHash(), oldChain[0].Hash())
	require.Equal(t, bHdr.BlockHash(), oldChain[1].Hash())

	require.Len(t, newChain, 3)
	require.Equal(t, f.BlockHash(), newChain[0].Hash())
	require.Equal(t, e.BlockHash(), newChain[1].Hash())
	require.Equal(t, d.BlockHash(), newChain[2].Hash())
}

// TestDuplicateBlockIgnored covers spec.md §8 scenario 4: re-adding the
// current head is a no-op that fires no listener.
func TestDuplicateBlockIgnored(t *testing.T) {
	chain, _ := newTestChain(t)
	genesis := chain.ChainHead()

	b1 := nextHeader(genesis.Header(), 1)
	_, err := chain.Add(b1)
	require.NoError(t, err)

	fired := false
	chain.AddNewBlockListener(func(b *StoredBlock) { fired = true }, nil)

	res, err := chain.Add(b1)
	require.NoError(t, err)
	require.Equal(t, Accepted, res)
	require.False(t, fired)
}

// TestIdempotentAdd covers the invariant that add(b); add(b) leaves state
// identical to a single add(b), including for a side-chain block that
// never becomes head.
func TestIdempotentAdd(t *testing.T) {
	chain, _ := newTestChain(t)
	genesis := chain.ChainHead()

	a := nextHeader(genesis.Header(), 1)
	_, err := chain.Add(a)
	require.NoError(t, err)

	side := nextHeader(genesis.Header(), 99)
	_, err = chain.Add(side)
	require.NoError(t, err)
	headAfterFirst := chain.ChainHead().Hash()

	_, err = chain.Add(side)
	require.NoError(t, err)
	require.Equal(t, headAfterFirst, chain.ChainHead().Hash())
}

// TestHighHashRejected covers the PoW self-check: a header whose hash
// does not satisfy its own claimed target is rejected structurally,
// before any RuleChecker is consulted.
func TestHighHashRejected(t *testing.T) {
	chain, _ := newTestChain(t)
	genesis := chain.ChainHead()

	bad := nextHeader(genesis.Header(), 1)
	bad.Bits = 0x03000001 // an extremely low (hard) target almost no hash satisfies

	_, err := chain.Add(bad)
	require.Error(t, err)

	var re RuleError
	require.ErrorAs(t, err, &re)
	require.Equal(t, ErrHighHash, re.ErrorCode)
}

// TestHeightFutureResolves verifies HeightFuture completes once the head
// reaches the requested height, and resolves immediately if already past
// it.
func TestHeightFutureResolves(t *testing.T) {
	chain, _ := newTestChain(t)
	genesis := chain.ChainHead()

	already := chain.HeightFuture(0)
	select {
	case <-already.Done():
	default:
		t.Fatal("future for an already-reached height should resolve immediately")
	}

	future := chain.HeightFuture(2)
	require.False(t, isDone(future))

	b1 := nextHeader(genesis.Header(), 1)
	_, err := chain.Add(b1)
	require.NoError(t, err)
	require.False(t, isDone(future))

	b2 := nextHeader(b1, 2)
	_, err = chain.Add(b2)
	require.NoError(t, err)
	require.True(t, isDone(future))
}

func isDone(f *HeightFuture) bool {
	select {
	case <-f.Done():
		return true
	default:
		return false
	}
}

// TestEstimateBlockTimeLinear verifies the fixed 600s/block extrapolation
// from the current head, including for heights behind the head.
func TestEstimateBlockTimeLinear(t *testing.T) {
	chain, _ := newTestChain(t)
	genesis := chain.ChainHead()

	got := chain.EstimateBlockTime(genesis.Height() + 10)
	want := genesis.Header().Timestamp.Add(10 * 600 * time.Second)
	require.Equal(t, want, got)

	past := chain.EstimateBlockTime(genesis.Height() - 5)
	wantPast := genesis.Header().Timestamp.Add(-5 * 600 * time.Second)
	require.Equal(t, wantPast, past)
}
