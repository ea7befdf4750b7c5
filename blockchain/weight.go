// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// posInterval is the number of past proof-of-stake blocks GetPoSKernelPS
// averages over (§4.6).
const posInterval = 72

// maxStakeTimeWeight caps the timeWeight GetStakeTime feeds into the
// factored-weight function at 30 days (§4.12), matching the reference's
// "2.0.2 restriction" comment in original_source/src/kernel.cpp's
// GetStakeTime.
const maxStakeTimeWeight = 30 * 24 * 60 * 60

// averageStakeWeightCache is the single-slot, process-wide cache §4.6/§5/§9
// call for: at most one (height, average) pair, guarded by a mutex so
// concurrent validation threads don't race on it. Grounded on
// original_source/src/kernel.cpp's nAverageStakeWeightHeightCached /
// dAverageStakeWeightCached globals, expressed as a struct instead of two
// package-level variables so the mutex plainly owns both fields together.
type averageStakeWeightCache struct {
	mu     sync.Mutex
	height int32
	valid  bool
	value  float64
}

func (c *averageStakeWeightCache) get(height int32) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid && c.height == height {
		return c.value, true
	}
	return 0, false
}

func (c *averageStakeWeightCache) set(height int32, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.height = height
	c.value = value
	c.valid = true
}

// invalidate clears the cache. Callers should invoke this on a reorg that
// rolls the active chain back past the cached height (§9).
func (c *averageStakeWeightCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}

var stakeWeightCache averageStakeWeightCache

// InvalidateAverageStakeWeightCache clears the single-slot cache used by
// GetAverageStakeWeight. Callers should invoke this after a reorg rolls the
// active chain back past the block height the cache was last computed for.
func InvalidateAverageStakeWeightCache() {
	stakeWeightCache.invalidate()
}

// GetPoSKernelPS implements §4.6's kernels-per-second estimator: it walks up
// to posInterval proof-of-stake blocks back from pindexPrev, summing scaled
// difficulty and the time gaps between them, and returns
// sum_difficulty/sum_time (or 0 if no time has elapsed).
//
// Ported from original_source/src/kernel.cpp's GetPoSKernelPS. The
// fork-gated sign-clamp on the time delta (ForkHeight2) and the raw
// pre-fork signed subtraction are both preserved verbatim per §4.6/§9 —
// this is a consensus quirk, not a bug to fix.
func GetPoSKernelPS(view ChainView, params *Params, pindexPrev *BlockIndex) float64 {
	var sumDifficulty float64
	var sumTime int64
	handled := 0

	var prevStake *BlockIndex
	pindex := pindexPrev
	for pindex != nil && handled < posInterval {
		if pindex.IsProofOfStake(params) {
			sumDifficulty += view.Difficulty(pindex) * 4294967296.0

			var delta int64
			if prevStake != nil {
				delta = prevStake.Time - pindex.Time
			}
			if pindex.Height >= params.ForkHeight2 {
				if delta < 0 {
					delta = 0
				}
			}
			sumTime += delta

			prevStake = pindex
			handled++
		}
		pindex = pindex.Prev
	}

	if sumTime == 0 {
		return 0
	}
	return sumDifficulty / float64(sumTime)
}

// GetAverageStakeWeight implements §4.6: the rolling 60-block mean of
// GetPoSKernelPS, plus a constant 21 offset, cached against the height of
// pindexPrev so repeated calls within the same tip are free.
//
// Ported from original_source/src/kernel.cpp's GetAverageStakeWeight.
func GetAverageStakeWeight(view ChainView, params *Params, chainHeight int32, pindexPrev *BlockIndex) float64 {
	if chainHeight < 1 {
		return 0
	}

	if v, ok := stakeWeightCache.get(pindexPrev.Height); ok {
		return v
	}

	var weightSum float64
	i := 0
	for pindex := pindexPrev; pindex != nil && i < 60; pindex, i = pindex.Prev, i+1 {
		weightSum += GetPoSKernelPS(view, params, pindex)
	}

	average := weightSum/float64(i) + 21

	stakeWeightCache.set(pindexPrev.Height, average)
	averageStakeWeightGauge.Set(average)
	return average
}

// GetStakeTimeFactoredWeight implements §4.7: the cosine-squared damping
// function that scales a UTXO's raw timeWeight down as its coin-day weight
// grows relative to the network-wide average stake weight, with a hard
// floor above a 0.45 fraction that collapses oversized stakes to
// effectively no advantage.
//
// Ported from original_source/src/kernel.cpp's GetStakeTimeFactoredWeight.
// The floating-point cos/pow calls are a real bit-exactness hazard across
// implementations; see DESIGN.md and SPEC_FULL.md §9 for the open question
// this repository does not attempt to resolve without reference vectors.
func GetStakeTimeFactoredWeight(view ChainView, params *Params, timeWeight, coinDayWeight int64, chainHeight int32, pindexPrev *BlockIndex) int64 {
	average := GetAverageStakeWeight(view, params, chainHeight, pindexPrev)
	fraction := (float64(coinDayWeight) + 1) / average

	if fraction > 0.45 {
		return params.StakeMinAge + 1
	}

	factor := math.Pow(math.Cos(math.Pi*fraction), 2.0)
	return int64(factor * float64(timeWeight))
}

// GetWeight returns the raw time span between two timestamps minus
// StakeMinAge (§9's "GetWeight subtracts stake_min_age" note). This can be
// negative for a freshly confirmed UTXO — deliberately not clamped, per
// §9: such kernels simply cannot pass the target.
func GetWeight(params *Params, intervalBeginning, intervalEnd int64) int64 {
	return intervalEnd - intervalBeginning - params.StakeMinAge
}

// qualifyingInput resolves one of tx's previous outputs through the chain
// adapter, checked for the timestamp-monotonicity rule GetCoinAge and
// GetStakeTime both enforce, and reports whether the input clears the
// stake_min_age floor. Factored out of GetCoinAge/GetStakeTime since both
// walk the same input-resolution shape in original_source/src/kernel.cpp.
func qualifyingInput(view ChainView, params *Params, tx StakeTx, outpointHash chainhash.Hash, outpointIndex uint32) (prevValue int64, prevTime int64, qualifies bool, err error) {
	txPrev, containingBlock, _, err := view.LookupTransaction(outpointHash)
	if err != nil {
		return 0, 0, false, err
	}

	prevTime = txPrev.Timestamp()
	if tx.Timestamp() < prevTime {
		return 0, 0, false, ruleError(ErrStakeTimeViolation,
			"nTime violation: transaction predates the output it spends")
	}

	blockIdx, ok := view.IndexByHash(containingBlock)
	if !ok {
		return 0, 0, false, fmt.Errorf("qualifyingInput: containing block %s not indexed", containingBlock)
	}
	if blockIdx.Time+params.StakeMinAge > tx.Timestamp() {
		return 0, 0, false, nil
	}

	prevValue, err = txPrev.OutputValue(outpointIndex)
	if err != nil {
		return 0, 0, false, err
	}
	return prevValue, prevTime, true, nil
}

// GetCoinAge implements §4.12's supplemented GetCoinAge: total coin-age
// spent by tx, in coin-days, over inputs meeting the stake_min_age
// requirement. The reference marks this "Never called(?)" and it is not
// consulted by any consensus rule in this package (§4.3-§4.10); it is kept
// only for parity with the reward-accounting code paths spec.md §9 asks an
// implementation mirroring the surface to provide.
//
// Ported from original_source/src/kernel.cpp's GetCoinAge.
func GetCoinAge(view ChainView, params *Params, tx StakeTx) (coinAge uint64, err error) {
	if tx.IsCoinBase() {
		return 0, nil
	}

	centSecond := new(big.Int)
	for _, outpoint := range tx.Inputs() {
		value, prevTime, qualifies, lookupErr := qualifyingInput(view, params, tx, outpoint.Hash, outpoint.Index)
		if lookupErr != nil {
			return 0, lookupErr
		}
		if !qualifies {
			continue
		}

		delta := new(big.Int).Mul(big.NewInt(value), big.NewInt(tx.Timestamp()-prevTime))
		delta.Div(delta, big.NewInt(Cent))
		centSecond.Add(centSecond, delta)
	}

	coinDay := new(big.Int).Mul(centSecond, big.NewInt(Cent))
	coinDay.Div(coinDay, big.NewInt(Coin))
	coinDay.Div(coinDay, big.NewInt(24*60*60))

	if !coinDay.IsUint64() {
		return 0, errors.New("GetCoinAge: coin-day accumulator overflowed uint64")
	}
	return coinDay.Uint64(), nil
}

// GetStakeTime implements the operation exposed at SPEC_FULL.md §6/§4.12:
// per-transaction stake-time for reward accounting, summed over qualifying
// inputs as value * factored_weight in coin-day units. timeWeight is capped
// at 30 days per input before it reaches GetStakeTimeFactoredWeight.
//
// Ported from original_source/src/kernel.cpp's GetStakeTime.
func GetStakeTime(view ChainView, params *Params, chainHeight int32, tx StakeTx, pindexPrev *BlockIndex) (stakeTime uint64, err error) {
	if tx.IsCoinBase() {
		return 0, nil
	}

	total := new(big.Int)
	for _, outpoint := range tx.Inputs() {
		value, prevTime, qualifies, lookupErr := qualifyingInput(view, params, tx, outpoint.Hash, outpoint.Index)
		if lookupErr != nil {
			return 0, lookupErr
		}
		if !qualifies {
			continue
		}

		timeWeight := tx.Timestamp() - prevTime
		if timeWeight > maxStakeTimeWeight {
			timeWeight = maxStakeTimeWeight
		}

		coinDay := value * timeWeight / Coin / (24 * 60 * 60)
		factored := GetStakeTimeFactoredWeight(view, params, timeWeight, coinDay, chainHeight, pindexPrev)

		delta := new(big.Int).Mul(big.NewInt(value), big.NewInt(factored))
		delta.Div(delta, big.NewInt(Coin))
		delta.Div(delta, big.NewInt(24*60*60))
		total.Add(total, delta)
	}

	if !total.IsUint64() {
		return 0, errors.New("GetStakeTime: accumulator overflowed uint64")
	}
	return total.Uint64(), nil
}
