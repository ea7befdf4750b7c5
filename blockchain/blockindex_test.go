// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

func TestBlockIndexFlags(t *testing.T) {
	b := &BlockIndex{}

	if b.GeneratedStakeModifier() {
		t.Errorf("GeneratedStakeModifier: expected false on zero value")
	}
	b.SetGeneratedStakeModifier(true)
	if !b.GeneratedStakeModifier() {
		t.Errorf("GeneratedStakeModifier: expected true after set")
	}
	b.SetGeneratedStakeModifier(false)
	if b.GeneratedStakeModifier() {
		t.Errorf("GeneratedStakeModifier: expected false after clear")
	}

	if b.StakeEntropyBit() != 0 {
		t.Errorf("StakeEntropyBit: expected 0 on zero value")
	}
	b.SetStakeEntropyBit(1)
	if b.StakeEntropyBit() != 1 {
		t.Errorf("StakeEntropyBit: expected 1 after set")
	}
	b.SetStakeEntropyBit(0)
	if b.StakeEntropyBit() != 0 {
		t.Errorf("StakeEntropyBit: expected 0 after clear")
	}
}

// TestBlockIndexFlagsIndependent checks the two flag bits don't clobber
// each other.
func TestBlockIndexFlagsIndependent(t *testing.T) {
	b := &BlockIndex{}
	b.SetStakeEntropyBit(1)
	b.SetGeneratedStakeModifier(true)

	if b.StakeEntropyBit() != 1 {
		t.Errorf("StakeEntropyBit: expected 1 to survive setting the other flag")
	}
	if !b.GeneratedStakeModifier() {
		t.Errorf("GeneratedStakeModifier: expected true to survive setting the other flag")
	}
}

func TestIsProofOfStake(t *testing.T) {
	params := &TestNetParams

	pow := &BlockIndex{Height: params.LastPOWBlock}
	if pow.IsProofOfStake(params) {
		t.Errorf("IsProofOfStake: height == LastPOWBlock should still be proof-of-work")
	}

	pos := &BlockIndex{Height: params.LastPOWBlock + 1}
	if !pos.IsProofOfStake(params) {
		t.Errorf("IsProofOfStake: height == LastPOWBlock+1 should be proof-of-stake")
	}
}

// TestComputeStakeEntropyBit checks the entropy bit is the low-order bit of
// the hash read as a 256-bit big-endian integer, agreeing with HashToBig.
func TestComputeStakeEntropyBit(t *testing.T) {
	var evenHash chainhash.Hash
	evenHash[0] = 0x02 // least significant byte, low bit clear
	if got := ComputeStakeEntropyBit(evenHash); got != 0 {
		t.Errorf("ComputeStakeEntropyBit(evenHash) = %d, want 0", got)
	}

	var oddHash chainhash.Hash
	oddHash[0] = 0x03 // low bit set
	if got := ComputeStakeEntropyBit(oddHash); got != 1 {
		t.Errorf("ComputeStakeEntropyBit(oddHash) = %d, want 1", got)
	}
}
