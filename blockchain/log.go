// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "github.com/btcsuite/btclog"

// log is a package-level logger used by this package. It is disabled by
// default so importers who don't care about our internal logging don't get
// spammed and it doesn't need to be initialized in order to avoid panics.
// The caller is responsible for wiring up a backend via UseLogger.
var log = btclog.Disabled

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(logger btclog.Logger) {
	log = logger
}
