// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// getLastStakeModifier walks Prev pointers starting at pindex until it finds
// a block with its GeneratedStakeModifier flag set, returning that block's
// modifier and generation time (§4.4 step 2). Ported from
// peercoin-btcd/blockchain/kernel.go's getLastStakeModifier.
func getLastStakeModifier(pindex *BlockIndex) (modifier uint64, modifierTime int64, err error) {
	if pindex == nil {
		return 0, 0, errors.New("getLastStakeModifier: nil pindex")
	}
	for pindex.Prev != nil && !pindex.GeneratedStakeModifier() {
		pindex = pindex.Prev
	}
	if !pindex.GeneratedStakeModifier() {
		return 0, 0, errors.New("getLastStakeModifier: no generated stake modifier found back to genesis")
	}
	return pindex.StakeModifier, pindex.Time, nil
}

// ComputeNextStakeModifier implements §4.4: it derives the stake modifier
// carried by cur, given cur.Prev's ancestry. Genesis (cur.Prev == nil)
// always returns (0, true). If the previous interval boundary has not been
// crossed since the last generated modifier, the existing modifier is
// returned unchanged with generated=false. Otherwise one round of
// SelectBlockFromCandidates per candidate, at most 64, assembles a fresh
// modifier one entropy bit at a time; bits for rounds beyond the candidate
// count stay zero.
//
// Ported from peercoin-btcd/blockchain/kernel.go's computeNextStakeModifier
// and original_source/src/kernel.cpp's ComputeNextStakeModifier.
func ComputeNextStakeModifier(params *Params, cur *BlockIndex) (modifier uint64, generated bool, err error) {
	prev := cur.Prev
	if prev == nil {
		return 0, true, nil
	}

	stakeModifier, modifierTime, err := getLastStakeModifier(prev)
	if err != nil {
		return 0, false, fmt.Errorf("ComputeNextStakeModifier: %w", err)
	}

	log.Debugf("ComputeNextStakeModifier: prev modifier=%#016x time=%d", stakeModifier, modifierTime)

	if modifierTime/params.ModifierInterval >= prev.Time/params.ModifierInterval {
		log.Debugf("ComputeNextStakeModifier: no new interval, keep modifier: height=%d time=%d",
			prev.Height, prev.Time)
		return stakeModifier, false, nil
	}

	candidates := BuildCandidates(params, prev)

	stop := selectionIntervalStart(params, prev.Time)
	selected := make(map[chainhash.Hash]bool)

	rounds := len(candidates)
	if rounds > 64 {
		rounds = 64
	}

	var newModifier uint64
	for round := 0; round < rounds; round++ {
		stop += getStakeModifierSelectionIntervalSection(params, round)

		pindex, hash, ok := SelectBlockFromCandidates(params, candidates, selected, stop, stakeModifier)
		if !ok {
			return 0, false, fmt.Errorf("ComputeNextStakeModifier: unable to select block at round %d", round)
		}

		newModifier |= uint64(pindex.StakeEntropyBit()) << uint(round)
		selected[hash] = true

		log.Debugf("ComputeNextStakeModifier: round %d stop=%d height=%d bit=%d modifier=%#016x",
			round, stop, pindex.Height, pindex.StakeEntropyBit(), newModifier)
	}

	log.Debugf("ComputeNextStakeModifier: new modifier=%#016x height=%d", newModifier, cur.Height)
	modifiersGenerated.Inc()
	return newModifier, true, nil
}
