// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

// getStakeModifierSelectionIntervalSection returns the length, in seconds,
// of round n's candidate window (§4.1). Ported verbatim from
// peercoin-btcd/blockchain/kernel.go's
// getStakeModifierSelectionIntervalSection: signed 64-bit arithmetic with
// truncating division, consensus-visible.
func getStakeModifierSelectionIntervalSection(params *Params, n int) int64 {
	return params.ModifierInterval * 63 / (63 + ((63 - int64(n)) * (params.ModifierIntervalRatio - 1)))
}

// getStakeModifierSelectionInterval returns the total selection window W,
// the sum of all 64 section lengths (§4.1).
func getStakeModifierSelectionInterval(params *Params) int64 {
	var total int64
	for n := 0; n < 64; n++ {
		total += getStakeModifierSelectionIntervalSection(params, n)
	}
	return total
}

// selectionIntervalStart returns the lower bound of the candidate window
// anchored at a block with timestamp prevTime (§4.2's "start"): the most
// recent modifier-interval boundary at or before prevTime, minus the full
// selection window W. Ported from peercoin-btcd/blockchain/kernel.go's
// computeNextStakeModifier: nSelectionIntervalStart = (prevTime /
// ModifierInterval) * ModifierInterval - nSelectionInterval.
func selectionIntervalStart(params *Params, prevTime int64) int64 {
	return prevTime/params.ModifierInterval*params.ModifierInterval - getStakeModifierSelectionInterval(params)
}
