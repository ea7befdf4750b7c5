// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// Flag bits packed into BlockIndex.Flags. Grounded on peercoin-btcd's
// blockchain/ppc.go flag helpers (setMetaStakeEntropyBit,
// setGeneratedStakeModifier), trimmed to exactly the two bits spec.md §3
// names; the teacher's wider flag set (proof-of-stake marker,
// duplicate-stake bits) belongs to functionality this package drops — see
// DESIGN.md.
const (
	// FlagStakeEntropyBit holds the single entropy bit contributed by
	// this block to any stake modifier it participates in selecting.
	FlagStakeEntropyBit uint32 = 1 << 0

	// FlagGeneratedStakeModifier is set once StakeModifier has been
	// computed by ComputeNextStakeModifier and is this block's own
	// emitted value, as opposed to an inherited ancestor value.
	FlagGeneratedStakeModifier uint32 = 1 << 1
)

// BlockIndex is the logical record this package consumes for each block on
// a chain. Storage, construction, and persistence of these records belongs
// to the surrounding node; this package only reads and writes the fields
// below through its exported operations.
//
// Prev is a direct pointer rather than an arena index (§9's "back-pointer
// chain" note describes an arena-of-records design motivated by C++
// ownership rules that don't apply under Go's garbage collector) — see
// DESIGN.md.
type BlockIndex struct {
	Hash   chainhash.Hash
	Height int32
	Time   int64
	Bits   uint32
	Prev   *BlockIndex

	Flags                 uint32
	StakeModifier         uint64
	HashProofOfStake      chainhash.Hash
	StakeModifierChecksum uint32
}

// IsProofOfStake reports whether this block is treated as proof-of-stake
// for the purposes of selection (§4.3) and the kernel check (§4.8): any
// block above the network's last PoW block.
func (b *BlockIndex) IsProofOfStake(params *Params) bool {
	return b.Height > params.LastPOWBlock
}

// GeneratedStakeModifier reports whether StakeModifier holds a value this
// block itself emitted (as opposed to one inherited from an ancestor).
func (b *BlockIndex) GeneratedStakeModifier() bool {
	return b.Flags&FlagGeneratedStakeModifier != 0
}

// SetGeneratedStakeModifier sets or clears the generated-stake-modifier
// flag bit.
func (b *BlockIndex) SetGeneratedStakeModifier(generated bool) {
	if generated {
		b.Flags |= FlagGeneratedStakeModifier
	} else {
		b.Flags &^= FlagGeneratedStakeModifier
	}
}

// StakeEntropyBit returns the single entropy bit (0 or 1) this block
// contributes to a stake modifier selecting it.
func (b *BlockIndex) StakeEntropyBit() uint32 {
	if b.Flags&FlagStakeEntropyBit != 0 {
		return 1
	}
	return 0
}

// SetStakeEntropyBit sets the entropy bit to 0 or 1.
func (b *BlockIndex) SetStakeEntropyBit(bit uint32) {
	if bit != 0 {
		b.Flags |= FlagStakeEntropyBit
	} else {
		b.Flags &^= FlagStakeEntropyBit
	}
}

// ComputeStakeEntropyBit derives the entropy bit contributed by a block
// from its own hash: the low-order bit of the hash read as a 256-bit
// big-endian integer. This is the teacher's post-v0.4 algorithm
// (ppcutil.go's getStakeEntropyBit, stripped of the pre-v0.4 protocol-
// version branch this package does not carry forward — see DESIGN.md).
func ComputeStakeEntropyBit(hash chainhash.Hash) uint32 {
	return uint32(HashToBig(&hash).Bit(0))
}
