// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// GetKernelStakeModifier implements §4.5: it resolves the stake modifier
// that governs the kernel hash of a UTXO confirmed in the block identified
// by hashBlockFrom. It walks forward on the active chain (never Prev) until
// the recorded block time is at least one full selection interval past
// hashBlockFrom's own time, returning the modifier carried by the block it
// lands on, along with the height and time of whichever traversed block most
// recently generated a modifier.
//
// This implements the reference's single unified GetKernelStakeModifier
// (original_source/src/kernel.cpp), not the teacher's historical v0.3/v0.5
// dual-branch dispatcher (kernel.go's getKernelStakeModifierV03 /
// getKernelStakeModifierV05) — see DESIGN.md.
func GetKernelStakeModifier(view ChainView, params *Params, hashBlockFrom chainhash.Hash) (modifier uint64, height int32, modifierTime int64, err error) {
	source, ok := view.IndexByHash(hashBlockFrom)
	if !ok {
		return 0, 0, 0, ruleError(ErrUnknownModifierSource,
			fmt.Sprintf("GetKernelStakeModifier: block not indexed (%s)", hashBlockFrom))
	}

	height = source.Height
	modifierTime = source.Time
	targetTime := source.Time + getStakeModifierSelectionInterval(params)

	pindex := source
	for modifierTime < targetTime {
		next, ok := view.ActiveChainNext(pindex)
		if !ok {
			return 0, 0, 0, fmt.Errorf(
				"GetKernelStakeModifier: reached best block %s at height %d from block %s",
				pindex.Hash, pindex.Height, hashBlockFrom)
		}
		pindex = next
		if pindex.GeneratedStakeModifier() {
			height = pindex.Height
			modifierTime = pindex.Time
		}
	}

	return pindex.StakeModifier, height, modifierTime, nil
}
