// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockchain implements the proof-of-stake-time kernel: stake
// modifier generation, coinstake kernel hash verification, stake-time
// factored weight, and stake-modifier checksums/checkpoints.
//
// The package does not maintain a block index, a UTXO set, or any
// on-disk state of its own. Callers provide those through the
// ChainView interface; this package only computes.
package blockchain
