// Copyright (c) 2015-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import svlog "github.com/gosatsv/svcore/log"

// log is the package-level subsystem logger. It defaults to a disabled
// sink so importing this package has no side effects until a caller wires
// up real output via UseLogger, the same convention the rest of this
// module's packages follow.
var log svlog.Logger = svlog.Disabled

// UseLogger sets the package-wide logger used by the chain engine.
func UseLogger(logger svlog.Logger) {
	log = logger
}
