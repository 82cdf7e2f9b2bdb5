// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "sync"

// versionTally tracks the block version of the most recent window of
// connected-to-head blocks so the engine can enforce BIP34/66-style
// supermajority upgrades: once enough recent blocks carry a newer version
// than a candidate, the candidate is rejected as obsolete.
type versionTally struct {
	mu      sync.Mutex
	window  []int32
	counts  map[int32]uint32
	maxSize int
}

func newVersionTally(maxSize int) *versionTally {
	return &versionTally{
		counts:  make(map[int32]uint32),
		maxSize: maxSize,
	}
}

// add records version as the newest entry in the rolling window, evicting
// the oldest entry once the window is full.
func (v *versionTally) add(version int32) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.window = append(v.window, version)
	v.counts[version]++

	if len(v.window) > v.maxSize {
		old := v.window[0]
		v.window = v.window[1:]
		v.counts[old]--
		if v.counts[old] == 0 {
			delete(v.counts, old)
		}
	}
}

// size returns the number of blocks currently tallied.
func (v *versionTally) size() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.window)
}

// countNewerThan returns how many blocks in the rolling window carry a
// version strictly greater than version.
func (v *versionTally) countNewerThan(version int32) uint32 {
	v.mu.Lock()
	defer v.mu.Unlock()

	var n uint32
	for ver, c := range v.counts {
		if ver > version {
			n += c
		}
	}
	return n
}
