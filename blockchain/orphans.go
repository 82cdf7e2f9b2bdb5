// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"time"

	"github.com/gosatsv/svcore/chainhash"
	"github.com/gosatsv/svcore/wire"
)

// orphanExpiration is the age after which removeExpired treats an orphan
// header as stale. The engine does not call removeExpired itself; orphans
// leave the pool when their parent connects or when DrainOrphans clears
// it.
const orphanExpiration = time.Hour

type orphanBlock struct {
	header     wire.BlockHeader
	expiration time.Time
}

// orphanPool holds headers whose parent is not yet known to the engine,
// indexed by both their own hash and their parent's hash so a newly linked
// header can cheaply pull in any orphans waiting on it.
type orphanPool struct {
	byHash       map[chainhash.Hash]*orphanBlock
	byPrevious   map[chainhash.Hash][]chainhash.Hash
}

func newOrphanPool() *orphanPool {
	return &orphanPool{
		byHash:     make(map[chainhash.Hash]*orphanBlock),
		byPrevious: make(map[chainhash.Hash][]chainhash.Hash),
	}
}

// isOrphan reports whether hash is currently held as an orphan.
func (p *orphanPool) isOrphan(hash chainhash.Hash) bool {
	_, ok := p.byHash[hash]
	return ok
}

// add stores header as an orphan, indexed under its previous block hash.
func (p *orphanPool) add(header wire.BlockHeader) {
	hash := header.BlockHash()
	if _, ok := p.byHash[hash]; ok {
		return
	}

	ob := &orphanBlock{
		header:     header,
		expiration: time.Now().Add(orphanExpiration),
	}
	p.byHash[hash] = ob
	p.byPrevious[header.PrevBlock] = append(p.byPrevious[header.PrevBlock], hash)
}

// removeExpired evicts every orphan whose expiration has passed, relative
// to now.
func (p *orphanPool) removeExpired(now time.Time) {
	for hash, ob := range p.byHash {
		if now.After(ob.expiration) {
			p.remove(hash)
		}
	}
}

// remove deletes hash from both indexes.
func (p *orphanPool) remove(hash chainhash.Hash) {
	ob, ok := p.byHash[hash]
	if !ok {
		return
	}
	delete(p.byHash, hash)

	siblings := p.byPrevious[ob.header.PrevBlock]
	for i, h := range siblings {
		if h == hash {
			siblings = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	if len(siblings) == 0 {
		delete(p.byPrevious, ob.header.PrevBlock)
	} else {
		p.byPrevious[ob.header.PrevBlock] = siblings
	}
}

// drain removes and returns every orphan directly chained off
// parentHash, in no particular order. The caller is expected to attempt to
// connect each of them, which may in turn free further orphans chained off
// those.
func (p *orphanPool) drain(parentHash chainhash.Hash) []wire.BlockHeader {
	hashes := p.byPrevious[parentHash]
	if len(hashes) == 0 {
		return nil
	}

	headers := make([]wire.BlockHeader, 0, len(hashes))
	for _, h := range hashes {
		if ob, ok := p.byHash[h]; ok {
			headers = append(headers, ob.header)
		}
	}
	for _, h := range hashes {
		p.remove(h)
	}
	return headers
}

// drainAll removes and returns every orphan hash currently held, clearing
// the pool. Used by DrainOrphans when the network layer has exhausted its
// filter and wants to re-request every pending header from scratch.
func (p *orphanPool) drainAll() []chainhash.Hash {
	hashes := make([]chainhash.Hash, 0, len(p.byHash))
	for h := range p.byHash {
		hashes = append(hashes, h)
	}
	p.byHash = make(map[chainhash.Hash]*orphanBlock)
	p.byPrevious = make(map[chainhash.Hash][]chainhash.Hash)
	return hashes
}

// root walks from hash through the orphan chain back to the first header
// whose parent is not itself an orphan, returning that header's hash. That
// header's PrevBlock is the deepest missing ancestor, so a caller can ask
// its peer for exactly the headers needed to connect the chain.
func (p *orphanPool) root(hash chainhash.Hash) chainhash.Hash {
	best := hash
	for {
		ob, ok := p.byHash[best]
		if !ok {
			break
		}
		if _, parentIsOrphan := p.byHash[ob.header.PrevBlock]; !parentIsOrphan {
			return best
		}
		best = ob.header.PrevBlock
	}
	return best
}
