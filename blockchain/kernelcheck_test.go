// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/btcsuite/btcd/wire"
)

// buildKernelChain assembles a small chain whose tip is far enough past
// StakeMinAge and the modifier selection interval for CheckStakeTimeKernelHash
// to have everything it needs: a resolvable stake modifier, a confirmed
// UTXO, and a properly aged coinstake candidate.
func buildKernelChain(t *testing.T, params *Params) (*fakeChain, *BlockIndex, *BlockIndex) {
	t.Helper()
	InvalidateAverageStakeWeightCache()

	chain := newFakeChain()
	interval := getStakeModifierSelectionInterval(params)

	genesis := &BlockIndex{Hash: mustHash(1), Height: 0, Time: 0, Bits: 0x1e0fffff}
	genesis.SetGeneratedStakeModifier(true)
	chain.addActive(genesis)

	blockFrom := &BlockIndex{
		Hash:   mustHash(2),
		Height: params.LastPOWBlock + 1,
		Time:   interval + 1000,
		Bits:   0x1e0fffff,
		Prev:   genesis,
	}
	blockFrom.SetGeneratedStakeModifier(true)
	chain.addActive(blockFrom)

	tip := &BlockIndex{
		Hash:   mustHash(3),
		Height: params.LastPOWBlock + 2,
		Time:   blockFrom.Time + 2*interval,
		Bits:   0x1e0fffff,
		Prev:   blockFrom,
	}
	tip.SetGeneratedStakeModifier(true)
	chain.addActive(tip)

	return chain, blockFrom, tip
}

// requireHashComputed fails the test unless err is nil or a
// ErrKernelTargetNotMet RuleError: this repository has no reference chain to
// assert a specific accept/reject outcome against (see DESIGN.md), so tests
// that only care that the hash was computed accept either outcome of the
// target comparison and fail on anything else (a violation that should have
// been caught earlier, or a plumbing error).
func requireHashComputed(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		return
	}
	if re, ok := err.(RuleError); ok && re.ErrorCode == ErrKernelTargetNotMet {
		return
	}
	t.Fatalf("unexpected error: %v", err)
}

func TestCheckStakeTimeKernelHashRejectsFutureSpend(t *testing.T) {
	params := &TestNetParams
	chain, blockFrom, tip := buildKernelChain(t, params)

	txPrev := fakePrevOutput{value: 1000 * Coin, time: blockFrom.Time + 100}
	prevout := wire.OutPoint{Hash: mustHash(9), Index: 0}

	_, _, _, err := CheckStakeTimeKernelHash(chain, params, tip.Bits, blockFrom, 0,
		txPrev, prevout, txPrev.time-1, tip.Prev)
	if err == nil {
		t.Fatalf("CheckStakeTimeKernelHash: expected an nTime-violation error")
	}
	if re, ok := err.(RuleError); !ok || re.ErrorCode != ErrStakeTimeViolation {
		t.Errorf("CheckStakeTimeKernelHash: expected ErrStakeTimeViolation, got %v", err)
	}
}

// TestCheckStakeTimeKernelHashRejectsMinAge checks spec.md §8 scenario 6: a
// UTXO one second short of stake_min_age is rejected on age, never reaching
// the hash comparison.
func TestCheckStakeTimeKernelHashRejectsMinAge(t *testing.T) {
	params := &TestNetParams
	chain, blockFrom, tip := buildKernelChain(t, params)

	txPrev := fakePrevOutput{value: 1000 * Coin, time: blockFrom.Time}
	prevout := wire.OutPoint{Hash: mustHash(9), Index: 0}
	nTimeTx := blockFrom.Time + params.StakeMinAge - 1

	_, _, _, err := CheckStakeTimeKernelHash(chain, params, tip.Bits, blockFrom, 0,
		txPrev, prevout, nTimeTx, tip.Prev)
	if err == nil {
		t.Fatalf("CheckStakeTimeKernelHash: expected a min-age violation error")
	}
	if re, ok := err.(RuleError); !ok || re.ErrorCode != ErrMinAgeViolation {
		t.Errorf("CheckStakeTimeKernelHash: expected ErrMinAgeViolation, got %v", err)
	}
}

// TestCheckStakeTimeKernelHashComputesDeterministically checks that two
// calls with identical inputs produce the same hash and target, and that a
// well-aged UTXO clears validation up through the hash computation without
// error (spec.md §8's determinism property).
func TestCheckStakeTimeKernelHashComputesDeterministically(t *testing.T) {
	params := &TestNetParams
	chain, blockFrom, tip := buildKernelChain(t, params)

	txPrev := fakePrevOutput{value: 1000 * Coin, time: blockFrom.Time}
	prevout := wire.OutPoint{Hash: mustHash(9), Index: 0}
	nTimeTx := blockFrom.Time + params.StakeMinAge + 86400

	hash1, target1, _, err := CheckStakeTimeKernelHash(chain, params, tip.Bits, blockFrom, 0,
		txPrev, prevout, nTimeTx, tip.Prev)
	requireHashComputed(t, err)

	hash2, target2, _, err := CheckStakeTimeKernelHash(chain, params, tip.Bits, blockFrom, 0,
		txPrev, prevout, nTimeTx, tip.Prev)
	requireHashComputed(t, err)

	if hash1 != hash2 || target1 != target2 {
		t.Errorf("CheckStakeTimeKernelHash: expected deterministic output across calls\nfirst:  hash=%s target=%s\nsecond: hash=%s target=%s",
			hash1, target1, hash2, target2)
	}
}

func TestCheckProofOfStakeRejectsNonCoinstake(t *testing.T) {
	chain := newFakeChain()
	tx := fakeStakeTx{coinstake: false}

	_, _, _, err := CheckProofOfStake(chain, &TestNetParams, tx, 0x1e0fffff, nil)
	if err == nil {
		t.Fatalf("CheckProofOfStake: expected an error for a non-coinstake transaction")
	}
	if re, ok := err.(RuleError); !ok || re.ErrorCode != ErrNotCoinstake {
		t.Errorf("CheckProofOfStake: expected ErrNotCoinstake, got %v", err)
	}
}

func TestCheckProofOfStakeEndToEnd(t *testing.T) {
	params := &TestNetParams
	chain, blockFrom, tip := buildKernelChain(t, params)

	kernelTxHash := mustHash(9)
	chain.addTx(kernelTxHash, fakeTx{
		value:           1000 * Coin,
		time:            blockFrom.Time,
		containingBlock: blockFrom.Hash,
		offset:          20,
	})

	coinstake := fakeStakeTx{
		coinstake: true,
		time:      blockFrom.Time + params.StakeMinAge + 86400,
		inputs:    []wire.OutPoint{{Hash: kernelTxHash, Index: 0}},
	}

	_, _, _, err := CheckProofOfStake(chain, params, coinstake, tip.Bits, tip)
	requireHashComputed(t, err)
}

func TestChainHeightFor(t *testing.T) {
	if got := chainHeightFor(nil); got != 0 {
		t.Errorf("chainHeightFor(nil) = %d, want 0", got)
	}
	pindexPrev := &BlockIndex{Height: 41}
	if got := chainHeightFor(pindexPrev); got != 42 {
		t.Errorf("chainHeightFor(...) = %d, want 42", got)
	}
}
