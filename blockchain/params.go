// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// Coin is the number of base units per whole coin. Coin-day arithmetic in
// this package (§4.7/§4.8/§4.12) scales raw output values by this constant.
const Coin = 1000000

// Cent is one hundredth of Coin, used by the GetCoinAge coin-day
// accumulator, which the reference implementation expresses in
// cent-seconds before rescaling to coin-days.
const Cent = Coin / 100

// Params holds the consensus parameters this package needs, one instance
// per network. This mirrors btcsuite/btcd/chaincfg's per-network Params
// convention rather than the teacher's bare package constants (ppcutil.go's
// protocol-version switch-time pairs) — see DESIGN.md.
type Params struct {
	// Name identifies the network, e.g. "mainnet" or "testnet".
	Name string

	// GenesisHash is the hash of the height-0 block.
	GenesisHash chainhash.Hash

	// StakeMinAge is the minimum UTXO age, in seconds, required for
	// staking and for modifier-selection participation.
	StakeMinAge int64

	// ModifierInterval is the alignment period, in seconds, between
	// successive stake modifiers.
	ModifierInterval int64

	// ModifierIntervalRatio shapes the geometric section lengths of
	// §4.1. The reference value is 3.
	ModifierIntervalRatio int64

	// TargetSpacing is the expected number of seconds between blocks.
	TargetSpacing int64

	// LastPOWBlock is the height at or below which blocks are treated
	// as proof-of-work for the purposes of selection and the kernel
	// check.
	LastPOWBlock int32

	// ForkHeight2 is the height at and above which GetPoSKernelPS
	// clamps its per-block time delta to be non-negative (§4.6).
	ForkHeight2 int32

	// StakeModifierCheckpoints is a hard-coded height to expected
	// checksum map (§4.10, §9). A missing height means "no check".
	StakeModifierCheckpoints map[int32]uint32
}

// MainNetParams are the consensus parameters for the main network. The
// stake-modifier checkpoint at height 0 (0x0fd11f4e7) is taken verbatim from
// the reference implementation's mapStakeModifierCheckpoints.
var MainNetParams = Params{
	Name:                  "mainnet",
	StakeMinAge:           60 * 60 * 24 * 30, // 30 days
	ModifierInterval:      10240,
	ModifierIntervalRatio: 3,
	TargetSpacing:         60,
	LastPOWBlock:          60,
	ForkHeight2:           100000,
	StakeModifierCheckpoints: map[int32]uint32{
		0: 0x0fd11f4e7,
	},
}

// TestNetParams are the consensus parameters for the test network. The
// stake-modifier checkpoint at height 0 (0) is taken verbatim from the
// reference implementation's mapStakeModifierCheckpointsTestNet.
var TestNetParams = Params{
	Name:                  "testnet",
	StakeMinAge:           60 * 60 * 24, // 1 day
	ModifierInterval:      10240,
	ModifierIntervalRatio: 3,
	TargetSpacing:         60,
	LastPOWBlock:          60,
	ForkHeight2:           1,
	StakeModifierCheckpoints: map[int32]uint32{
		0: 0,
	},
}
