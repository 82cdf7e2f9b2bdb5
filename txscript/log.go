// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import svlog "github.com/gosatsv/svcore/log"

// log is the package-level logger used by the script engine. It is
// disabled by default; callers that care about script-level tracing wire
// one in with UseLogger, mirroring blockchain.UseLogger.
var log svlog.Logger = svlog.Disabled

// UseLogger sets the package-wide logger used by txscript.
func UseLogger(logger svlog.Logger) {
	log = logger
}
