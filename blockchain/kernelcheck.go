// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"bytes"
	"fmt"
	"math/big"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// chainHeightFor derives the "current chain height" GetAverageStakeWeight's
// height-floor check needs from the tip's predecessor: pindexPrev is one
// block short of the tip by construction (§4.8's "P (tip's predecessor)"),
// so the active chain height is pindexPrev.Height+1. At genesis pindexPrev
// is nil and the chain height is 0.
func chainHeightFor(pindexPrev *BlockIndex) int32 {
	if pindexPrev == nil {
		return 0
	}
	return pindexPrev.Height + 1
}

// CheckStakeTimeKernelHash implements §4.8: it builds the coinstake kernel
// hash for a UTXO confirmed in blockFrom and compares it against a target
// scaled by the stake-time factored weight. Once the hash has been computed,
// both the hash and the target are returned whether the comparison accepts
// or rejects, so a caller can log both; a failure before that point returns
// the hash (and, if the target was not yet built, the target) as zero.
//
// Ported from peercoin-btcd/blockchain/kernel.go's checkStakeKernelHash and
// original_source/src/kernel.cpp's CheckStakeTimeKernelHash.
func CheckStakeTimeKernelHash(view ChainView, params *Params, nBits uint32, blockFrom *BlockIndex, nTxOffset uint32, txPrev PrevOutput, prevout wire.OutPoint, nTimeTx int64, pindexPrev *BlockIndex) (hashProofOfStake chainhash.Hash, targetProofOfStake chainhash.Hash, ok bool, err error) {
	started := time.Now()
	defer func() { observeKernelCheck(ok, err, started) }()

	if nTimeTx < txPrev.Timestamp() {
		return hashProofOfStake, targetProofOfStake, false, ruleError(ErrStakeTimeViolation,
			"CheckStakeTimeKernelHash: nTime violation")
	}

	nTimeBlockFrom := blockFrom.Time
	if nTimeBlockFrom+params.StakeMinAge > nTimeTx {
		return hashProofOfStake, targetProofOfStake, false, ruleError(ErrMinAgeViolation,
			"CheckStakeTimeKernelHash: min age violation")
	}

	targetPerCoinDay := CompactToBig(nBits)

	valueIn, err := txPrev.OutputValue(prevout.Index)
	if err != nil {
		return hashProofOfStake, targetProofOfStake, false, err
	}

	timeWeight := GetWeight(params, txPrev.Timestamp(), nTimeTx)
	coinDayWeight := valueIn * timeWeight / Coin / (24 * 60 * 60)

	chainHeight := chainHeightFor(pindexPrev)
	factoredTimeWeight := GetStakeTimeFactoredWeight(view, params, timeWeight, coinDayWeight, chainHeight, pindexPrev)

	stakeTimeWeight := new(big.Int).Mul(big.NewInt(valueIn), big.NewInt(factoredTimeWeight))
	stakeTimeWeight.Div(stakeTimeWeight, big.NewInt(Coin))
	stakeTimeWeight.Div(stakeTimeWeight, big.NewInt(24*60*60))

	targetInt := new(big.Int).Mul(stakeTimeWeight, targetPerCoinDay)
	targetProofOfStake = bigToHash(targetInt)

	modifier, modifierHeight, modifierTime, err := GetKernelStakeModifier(view, params, blockFrom.Hash)
	if err != nil {
		return hashProofOfStake, targetProofOfStake, false, err
	}

	var buf bytes.Buffer
	if err := writeElement(&buf, modifier); err != nil {
		return hashProofOfStake, targetProofOfStake, false, err
	}
	if err := writeElement(&buf, uint32(nTimeBlockFrom)); err != nil {
		return hashProofOfStake, targetProofOfStake, false, err
	}
	if err := writeElement(&buf, nTxOffset); err != nil {
		return hashProofOfStake, targetProofOfStake, false, err
	}
	if err := writeElement(&buf, uint32(txPrev.Timestamp())); err != nil {
		return hashProofOfStake, targetProofOfStake, false, err
	}
	if err := writeElement(&buf, prevout.Index); err != nil {
		return hashProofOfStake, targetProofOfStake, false, err
	}
	if err := writeElement(&buf, uint32(nTimeTx)); err != nil {
		return hashProofOfStake, targetProofOfStake, false, err
	}

	hashProofOfStake = doubleHash(buf.Bytes())

	log.Debugf("CheckStakeTimeKernelHash: modifier=%#016x height=%d time=%d blockFrom height=%d time=%d "+
		"timeWeight=%d coinDayWeight=%d hashProof=%s targetProof=%s",
		modifier, modifierHeight, modifierTime, blockFrom.Height, nTimeBlockFrom,
		timeWeight, coinDayWeight, hashProofOfStake, targetProofOfStake)

	if blockFrom.IsProofOfStake(params) {
		if HashToBig(&hashProofOfStake).Cmp(HashToBig(&targetProofOfStake)) > 0 {
			return hashProofOfStake, targetProofOfStake, false, ruleError(ErrKernelTargetNotMet,
				"CheckStakeTimeKernelHash: hash proof of stake exceeds target")
		}
	}

	return hashProofOfStake, targetProofOfStake, true, nil
}

// CheckProofOfStake implements §4.9: the top-level validator entry point.
// It resolves the coinstake's kernel input through the chain adapter, reads
// the confirming block, and delegates to CheckStakeTimeKernelHash.
//
// Ported from peercoin-btcd/blockchain/kernel.go's checkTxProofOfStake and
// original_source/src/kernel.cpp's CheckProofOfStake.
func CheckProofOfStake(view ChainView, params *Params, tx StakeTx, nBits uint32, pindexPrev *BlockIndex) (hashProofOfStake chainhash.Hash, targetProofOfStake chainhash.Hash, ok bool, err error) {
	if !tx.IsCoinStake() {
		return hashProofOfStake, targetProofOfStake, false, ruleError(ErrNotCoinstake,
			"CheckProofOfStake: called on non-coinstake transaction")
	}

	inputs := tx.Inputs()
	if len(inputs) == 0 {
		return hashProofOfStake, targetProofOfStake, false, ruleError(ErrNotCoinstake,
			"CheckProofOfStake: coinstake has no inputs")
	}
	kernelInput := inputs[0]

	txPrev, containingBlockHash, offset, err := view.LookupTransaction(kernelInput.Hash)
	if err != nil {
		return hashProofOfStake, targetProofOfStake, false, err
	}
	// nTxOffset += 80: the block-header size, since LookupTransaction
	// reports an offset relative to the transactions area only (§4.9/§9).
	nTxOffset := offset + 80

	blockFrom, ok := view.IndexByHash(containingBlockHash)
	if !ok {
		return hashProofOfStake, targetProofOfStake, false,
			fmt.Errorf("CheckProofOfStake: containing block %s not indexed", containingBlockHash)
	}

	if _, err := view.ReadFullBlock(blockFrom); err != nil {
		return hashProofOfStake, targetProofOfStake, false,
			fmt.Errorf("CheckProofOfStake: read block failed: %w", err)
	}

	return CheckStakeTimeKernelHash(view, params, nBits, blockFrom, nTxOffset, txPrev, kernelInput, tx.Timestamp(), pindexPrev)
}
