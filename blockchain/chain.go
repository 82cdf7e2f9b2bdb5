// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockchain implements the consensus-critical chain engine: it
// ingests candidate headers, links them into a tree against a pluggable
// Store, tracks the best chain by cumulative proof of work, holds
// not-yet-connectable headers in an orphan pool, and performs
// reorganizations across forks. It never chooses a retarget policy
// itself; a RuleChecker supplied through Config encodes network rules.
package blockchain

import (
	"errors"
	"math/big"
	"sync"
	"time"

	"github.com/gosatsv/svcore/blockchain/workmath"
	"github.com/gosatsv/svcore/chainhash"
	"github.com/gosatsv/svcore/wire"
)

// AddResult reports the outcome of a successful Add call.
type AddResult int

const (
	// Accepted means the candidate was linked into the tree (or was
	// already the current head or already linked on some branch).
	Accepted AddResult = iota

	// Orphaned means the candidate's parent is not yet known; it was
	// placed in the orphan pool and will be retried once its parent
	// arrives.
	Orphaned
)

// String renders the result the way log lines and test failures expect.
func (r AddResult) String() string {
	if r == Orphaned {
		return "orphaned"
	}
	return "accepted"
}

// Checkpoint identifies a block by height and hash that is hard-coded as
// known-good, guarding a reorganize from rewriting history before it.
type Checkpoint struct {
	Height int32
	Hash   chainhash.Hash
}

// Config supplies everything the engine needs beyond the headers it is
// fed: the persistence boundary, the network's retarget/checkpoint rules,
// and the genesis header to seed an empty store with. It replaces the
// teacher's inheritance-based AbstractBlockChain hook methods with a
// single injected value, per spec.md §9's first Design Note: one concrete
// engine, multiple Store implementations.
type Config struct {
	// Store is the persistence boundary the engine validates headers
	// against and writes accepted ones to.
	Store Store

	// RuleChecker supplies the retarget policy and any other
	// network-specific context check. chaincfg.NewRuleChecker provides
	// the reference implementation.
	RuleChecker RuleChecker

	// GenesisHeader seeds an empty Store. Ignored if the Store already
	// has a chain head.
	GenesisHeader wire.BlockHeader

	// PowLimit is the easiest allowed proof-of-work target; a header
	// whose decoded target exceeds it is structurally invalid.
	PowLimit *big.Int

	// Checkpoints hard-codes known-good (height, hash) pairs.
	Checkpoints []Checkpoint

	// BlocksPerRetarget, MinRetargetTimespan, and MaxRetargetTimespan
	// are exposed to the RuleChecker through the ChainCtx interface the
	// engine itself implements.
	BlocksPerRetarget    int32
	MinRetargetTimespan  int64
	MaxRetargetTimespan  int64

	// BlockRejectNumRequired is the number of blocks, out of the
	// trailing BlockUpgradeNumToCheck window, that must carry a newer
	// version than a candidate before that candidate is rejected as
	// obsolete (BIP34/66-style supermajority). BlockUpgradeNumToCheck
	// defaults to 1000 and BlockRejectNumRequired to 950 when left zero.
	BlockRejectNumRequired uint32
	BlockUpgradeNumToCheck uint32
}

// BlockChain is the chain engine. A single exclusive lock serializes every
// Add/orphan/reorganize operation; a separate lock guards publication of
// the head pointer so readers never observe a torn value mid-reorganize.
type BlockChain struct {
	cfg Config

	chainLock sync.Mutex

	headLock sync.RWMutex
	head     *StoredBlock

	// index holds every header the engine has linked into the tree,
	// on the best chain or not, keyed by hash, so a side-branch
	// extension or a reorganize can find its parent without a Store
	// round trip. Orphans are not indexed here; they live in orphans.
	index map[chainhash.Hash]*StoredBlock

	orphans   *orphanPool
	listeners *listenerRegistry
	versions  *versionTally

	futuresMu sync.Mutex
	futures   map[int32][]*HeightFuture
}

// New constructs a BlockChain against cfg. If the Store is empty, the
// genesis header is written and set as chain head; otherwise the existing
// chain is loaded into the in-memory index.
func New(cfg Config) (*BlockChain, error) {
	if cfg.Store == nil {
		return nil, errors.New("blockchain: Config.Store is required")
	}
	if cfg.RuleChecker == nil {
		return nil, errors.New("blockchain: Config.RuleChecker is required")
	}
	if cfg.PowLimit == nil {
		return nil, errors.New("blockchain: Config.PowLimit is required")
	}
	if cfg.BlockUpgradeNumToCheck == 0 {
		cfg.BlockUpgradeNumToCheck = 1000
	}
	if cfg.BlockRejectNumRequired == 0 {
		cfg.BlockRejectNumRequired = 950
	}

	b := &BlockChain{
		cfg:       cfg,
		index:     make(map[chainhash.Hash]*StoredBlock),
		orphans:   newOrphanPool(),
		listeners: newListenerRegistry(),
		versions:  newVersionTally(int(cfg.BlockUpgradeNumToCheck)),
		futures:   make(map[int32][]*HeightFuture),
	}

	headHash, err := cfg.Store.ChainHead()
	switch {
	case errors.Is(err, ErrNotFound):
		genesis := NewStoredBlock(cfg.GenesisHeader, nil)
		if err := b.persist(genesis); err != nil {
			return nil, err
		}
		if err := cfg.Store.SetChainHead(genesis.Hash()); err != nil {
			return nil, err
		}
		b.index[genesis.Hash()] = genesis
		b.head = genesis

	case err != nil:
		return nil, err

	default:
		node, err := b.loadChain(headHash)
		if err != nil {
			return nil, err
		}
		b.head = node
	}

	return b, nil
}

// loadChain walks the Store from hash back to genesis, rebuilding the
// in-memory node tree, and returns the node for hash.
func (b *BlockChain) loadChain(hash chainhash.Hash) (*StoredBlock, error) {
	var records []Record
	cur := hash
	for {
		rec, err := b.cfg.Store.Get(cur)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
		if rec.Info.Height == 0 {
			break
		}
		cur = rec.Header.PrevBlock
	}

	var parent *StoredBlock
	for i := len(records) - 1; i >= 0; i-- {
		node := restoreStoredBlock(records[i].Header, records[i].Info, parent)
		b.index[node.Hash()] = node
		parent = node
	}
	return parent, nil
}

// ChainHead returns the current best-chain tip.
func (b *BlockChain) ChainHead() *StoredBlock {
	b.headLock.RLock()
	defer b.headLock.RUnlock()
	return b.head
}

// BestHeight returns the height of the current best-chain tip.
func (b *BlockChain) BestHeight() int32 {
	return b.ChainHead().Height()
}

func (b *BlockChain) setHead(n *StoredBlock) {
	b.headLock.Lock()
	b.head = n
	b.headLock.Unlock()
}

// EstimateBlockTime linearly extrapolates the timestamp of height from
// the current head at a fixed 600 seconds per block. Past heights are
// extrapolated the same way, not looked up, matching spec.md §4.1.
func (b *BlockChain) EstimateBlockTime(height int32) time.Time {
	head := b.ChainHead()
	delta := int64(height-head.Height()) * 600
	return head.Header().Timestamp.Add(time.Duration(delta) * time.Second)
}

// IsOrphan reports whether hash is currently held in the orphan pool.
func (b *BlockChain) IsOrphan(hash chainhash.Hash) bool {
	b.chainLock.Lock()
	defer b.chainLock.Unlock()
	return b.orphans.isOrphan(hash)
}

// DrainOrphans atomically removes and returns every orphan hash.
func (b *BlockChain) DrainOrphans() []chainhash.Hash {
	b.chainLock.Lock()
	defer b.chainLock.Unlock()
	return b.orphans.drainAll()
}

// OrphanRoot walks backward through the orphan pool starting at hash and
// returns the hash of the oldest orphan on that path: the orphan whose own
// parent is not in the pool. That orphan's PrevBlock is the header a peer
// still needs to supply before the chain beneath hash can connect. It
// returns false if hash is not an orphan.
func (b *BlockChain) OrphanRoot(hash chainhash.Hash) (chainhash.Hash, bool) {
	b.chainLock.Lock()
	defer b.chainLock.Unlock()

	if !b.orphans.isOrphan(hash) {
		return chainhash.Hash{}, false
	}
	return b.orphans.root(hash), true
}

// AddNewBlockListener registers l to run on executor (SameThreadExecutor
// if executor is nil) whenever a header is connected to the best chain,
// returning an id for RemoveNewBlockListener.
func (b *BlockChain) AddNewBlockListener(l NewBlockListener, executor Executor) int64 {
	return b.listeners.addNewBlockListener(l, executor)
}

// RemoveNewBlockListener unregisters a listener added by
// AddNewBlockListener.
func (b *BlockChain) RemoveNewBlockListener(id int64) {
	b.listeners.removeNewBlockListener(id)
}

// AddReorganizeListener registers l to run on executor (SameThreadExecutor
// if executor is nil) whenever the best chain changes to a different
// branch, returning an id for RemoveReorganizeListener.
func (b *BlockChain) AddReorganizeListener(l ReorganizeListener, executor Executor) int64 {
	return b.listeners.addReorganizeListener(l, executor)
}

// RemoveReorganizeListener unregisters a listener added by
// AddReorganizeListener.
func (b *BlockChain) RemoveReorganizeListener(id int64) {
	b.listeners.removeReorganizeListener(id)
}

// HeightFuture returns a future that resolves once the best-chain height
// reaches or exceeds targetHeight, completing on whichever thread's Add
// call crosses it. There is no timeout; callers wrap Wait in a context.
func (b *BlockChain) HeightFuture(targetHeight int32) *HeightFuture {
	b.futuresMu.Lock()
	defer b.futuresMu.Unlock()

	if height := b.ChainHead().Height(); height >= targetHeight {
		f := NewHeightFuture()
		f.Resolve(height)
		return f
	}

	f := NewHeightFuture()
	b.futures[targetHeight] = append(b.futures[targetHeight], f)
	return f
}

// resolveFutures satisfies every HeightFuture whose target height has now
// been reached or passed.
func (b *BlockChain) resolveFutures(height int32) {
	b.futuresMu.Lock()
	defer b.futuresMu.Unlock()

	for target, waiters := range b.futures {
		if target > height {
			continue
		}
		for _, f := range waiters {
			f.Resolve(height)
		}
		delete(b.futures, target)
	}
}

// ChainCtx implementation, consulted by RuleChecker implementations.

// BlocksPerRetarget implements ChainCtx.
func (b *BlockChain) BlocksPerRetarget() int32 { return b.cfg.BlocksPerRetarget }

// MinRetargetTimespan implements ChainCtx.
func (b *BlockChain) MinRetargetTimespan() int64 { return b.cfg.MinRetargetTimespan }

// MaxRetargetTimespan implements ChainCtx.
func (b *BlockChain) MaxRetargetTimespan() int64 { return b.cfg.MaxRetargetTimespan }

// Add ingests candidate, the chain engine's single entry point. It
// returns Accepted once the header is durably linked into the tree (on
// the best chain or a side branch) or Orphaned if its parent is not yet
// known.
func (b *BlockChain) Add(header wire.BlockHeader) (AddResult, error) {
	b.chainLock.Lock()
	defer b.chainLock.Unlock()

	hash := header.BlockHash()

	if head := b.ChainHead(); hash == head.Hash() {
		return Accepted, nil
	}
	if b.orphans.isOrphan(hash) {
		return Orphaned, nil
	}

	res, err := b.processCandidate(header)
	if err != nil || res == Orphaned {
		return res, err
	}

	b.tryConnectOrphans(hash)
	return Accepted, nil
}

// processCandidate performs the header self-check, parent lookup, rule
// check, and connect/side-branch/reorganize decision for a single
// candidate. It does not attempt to drain the orphan pool; callers that
// want orphan promotion after a successful connect call
// tryConnectOrphans separately. This keeps orphan promotion an iterative
// BFS over tryConnectOrphans rather than a reentrant call back into Add,
// which is the REDESIGN this engine makes of spec.md §4.1's
// try_connecting=false recursive-call note (§9 closing remarks): the
// recursion-avoidance the spec flags is structural here instead of a
// runtime flag.
func (b *BlockChain) processCandidate(header wire.BlockHeader) (AddResult, error) {
	hash := header.BlockHash()

	if err := b.checkProofOfWork(&header); err != nil {
		return 0, err
	}

	parent, ok := b.index[header.PrevBlock]
	if !ok {
		b.orphans.add(header)
		return Orphaned, nil
	}

	if _, ok := b.index[hash]; ok {
		log.Debugf("duplicate block %s ignored", hash)
		return Accepted, nil
	}

	candidate := NewStoredBlock(header, parent)

	if err := b.cfg.RuleChecker.Check(candidate, parent, b, &header); err != nil {
		return 0, ruleCheckerError(err)
	}

	head := b.ChainHead()
	switch {
	case parent.Hash() == head.Hash():
		if err := b.connectToHead(candidate); err != nil {
			return 0, err
		}

	case candidate.ChainInfo().ChainWork.Cmp(head.ChainInfo().ChainWork) > 0:
		if err := b.persist(candidate); err != nil {
			return 0, err
		}
		b.index[hash] = candidate
		if err := b.handleNewBestChain(candidate, head); err != nil {
			return 0, err
		}

	default:
		if err := b.persist(candidate); err != nil {
			return 0, err
		}
		b.index[hash] = candidate
		log.Debugf("extended side chain %s at height %d", hash, candidate.Height())
	}

	return Accepted, nil
}

// connectToHead links candidate directly onto the current head: the
// checkpoint, MTP-11, and version-supermajority checks only apply on this
// path, per spec.md §4.1 step 8's first bullet.
func (b *BlockChain) connectToHead(candidate *StoredBlock) error {
	if err := b.checkCheckpoint(candidate); err != nil {
		return err
	}
	if err := b.checkMedianTime(candidate); err != nil {
		return err
	}
	if err := b.checkVersionTally(candidate); err != nil {
		return err
	}

	if err := b.persist(candidate); err != nil {
		return err
	}
	if err := b.cfg.Store.SetChainHead(candidate.Hash()); err != nil {
		b.notSettingChainHead(candidate.Hash())
		return ruleError(ErrStore, err.Error())
	}

	b.index[candidate.Hash()] = candidate
	b.versions.add(candidate.Header().Version)
	b.setHead(candidate)

	b.listeners.notifyNewBlock(candidate)
	b.resolveFutures(candidate.Height())
	return nil
}

// handleNewBestChain reorganizes the engine onto candidate's branch,
// which has already been persisted with greater cumulative work than the
// current head.
func (b *BlockChain) handleNewBestChain(candidate, oldHead *StoredBlock) error {
	split, err := findSplit(candidate, oldHead)
	if err != nil {
		b.notSettingChainHead(candidate.Hash())
		return err
	}

	if split.Hash() == candidate.Hash() {
		log.Debugf("duplicate block %s on main chain ignored", candidate.Hash())
		return nil
	}

	if cp := b.lastCheckpoint(); cp != nil && split.Height() < cp.Height {
		b.notSettingChainHead(candidate.Hash())
		return ruleError(ErrForkTooOld, "reorganize point is older than the last checkpoint")
	}

	oldChain := collectChain(oldHead, split)
	newChain := collectChain(candidate, split)

	if err := b.cfg.Store.SetChainHead(candidate.Hash()); err != nil {
		b.notSettingChainHead(candidate.Hash())
		return ruleError(ErrStore, err.Error())
	}

	for i := len(newChain) - 1; i >= 0; i-- {
		b.versions.add(newChain[i].Header().Version)
	}

	b.listeners.notifyReorganize(split, oldChain, newChain)

	b.setHead(candidate)
	b.resolveFutures(candidate.Height())
	return nil
}

// findSplit walks n and h backward, always advancing whichever cursor is
// deeper, until they meet at their most recent common ancestor. Walking
// past the root without finding one means the two chains share no
// ancestry, which is fatal.
func findSplit(n, h *StoredBlock) (*StoredBlock, error) {
	for n.Hash() != h.Hash() {
		switch {
		case n.Height() > h.Height():
			n = n.Parent()
		case h.Height() > n.Height():
			h = h.Parent()
		default:
			n = n.Parent()
			h = h.Parent()
		}
		if n == nil || h == nil {
			return nil, AssertError("orphan chain: candidate and head share no common ancestor")
		}
	}
	return n, nil
}

// collectChain walks from tip back to split (exclusive), returning the
// nodes tip-first, matching the ReorganizeListener's documented order.
func collectChain(tip, split *StoredBlock) []*StoredBlock {
	var chain []*StoredBlock
	for node := tip; node != nil && node.Hash() != split.Hash(); node = node.Parent() {
		chain = append(chain, node)
	}
	return chain
}

// tryConnectOrphans repeatedly drains orphans chained directly or
// transitively off parentHash, connecting each one it can, until no more
// can be promoted.
func (b *BlockChain) tryConnectOrphans(parentHash chainhash.Hash) {
	queue := []chainhash.Hash{parentHash}
	for len(queue) > 0 {
		ph := queue[0]
		queue = queue[1:]

		for _, child := range b.orphans.drain(ph) {
			res, err := b.processCandidate(child)
			if err != nil {
				log.Warnf("failed to connect orphan %s: %v", child.BlockHash(), err)
				continue
			}
			if res == Accepted {
				queue = append(queue, child.BlockHash())
			}
		}
	}
}

// checkProofOfWork is the engine's own structural self-check (spec.md
// §4.1 step 4): the candidate's target must be within the network-allowed
// range and its hash must satisfy that target. This is not delegated to
// the RuleChecker because it needs no chain context, only the header
// itself and the configured PowLimit.
func (b *BlockChain) checkProofOfWork(header *wire.BlockHeader) error {
	target := workmath.CompactToBig(header.Bits)
	if target.Sign() <= 0 {
		return ruleError(ErrHighHash, "block target difficulty is too low")
	}
	if target.Cmp(b.cfg.PowLimit) > 0 {
		return ruleError(ErrHighHash, "block target difficulty is higher than the network maximum")
	}

	hash := header.BlockHash()
	hashNum := workmath.HashToBig(&hash)
	if hashNum.Cmp(target) > 0 {
		return ruleError(ErrHighHash, "block hash does not satisfy the claimed proof of work")
	}
	return nil
}

// checkCheckpoint enforces any hard-coded checkpoint at candidate's
// height.
func (b *BlockChain) checkCheckpoint(candidate *StoredBlock) error {
	for _, cp := range b.cfg.Checkpoints {
		if cp.Height == candidate.Height() && cp.Hash != candidate.Hash() {
			return ruleError(ErrBadCheckpoint, "candidate conflicts with a hard-coded checkpoint")
		}
	}
	return nil
}

// lastCheckpoint returns the highest-height configured checkpoint, or nil
// if none are configured.
func (b *BlockChain) lastCheckpoint() *Checkpoint {
	var best *Checkpoint
	for i := range b.cfg.Checkpoints {
		cp := &b.cfg.Checkpoints[i]
		if best == nil || cp.Height > best.Height {
			best = cp
		}
	}
	return best
}

// checkMedianTime enforces the MTP-11 rule: candidate's timestamp must
// exceed the median of the previous 11 timestamps, including its parent.
func (b *BlockChain) checkMedianTime(candidate *StoredBlock) error {
	medianTime := candidate.Parent().CalcPastMedianTime()
	if candidate.Header().Timestamp.Unix() <= medianTime {
		return ruleError(ErrInvalidTimestamp, "block timestamp is not after the median of the last 11 blocks")
	}
	return nil
}

// checkVersionTally enforces BIP34/66-style supermajority version
// upgrades: once the rolling window is full and a majority-reject
// fraction of it carries a newer version than candidate, candidate is
// rejected as obsolete.
func (b *BlockChain) checkVersionTally(candidate *StoredBlock) error {
	if b.versions.size() < int(b.cfg.BlockUpgradeNumToCheck) {
		return nil
	}
	if b.versions.countNewerThan(candidate.Header().Version) >= b.cfg.BlockRejectNumRequired {
		return ruleError(ErrBadVersion, "block version is obsolete: a supermajority of recent blocks use a newer version")
	}
	return nil
}

// persist writes candidate's Record to the Store, wrapping any failure as
// a fatal ErrStore RuleError.
func (b *BlockChain) persist(candidate *StoredBlock) error {
	if err := b.cfg.Store.Put(Record{Header: candidate.Header(), Info: candidate.ChainInfo()}); err != nil {
		return ruleError(ErrStore, err.Error())
	}
	return nil
}

// notSettingChainHead is the store-side transaction-abort hook: called
// when the engine has decided a candidate will not become (or remain) the
// chain head after already persisting it, so a Store that supports
// rollback can undo the write. Stores that only append return
// ErrUnsupported, which is not itself an error here.
func (b *BlockChain) notSettingChainHead(hash chainhash.Hash) {
	if err := b.cfg.Store.Rollback(hash); err != nil && !errors.Is(err, ErrUnsupported) {
		log.Warnf("store rollback after aborted verification failed: %v", err)
	}
}

// ruleCheckerError normalizes an error returned by a RuleChecker into a
// RuleError, tagging it ErrRuleChecker unless it already carries its own
// ErrorCode.
func ruleCheckerError(err error) error {
	var re RuleError
	if errors.As(err, &re) {
		return re
	}
	return ruleError(ErrRuleChecker, err.Error())
}
