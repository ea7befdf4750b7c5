// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// ChainView is the "chain adapter" this package consumes (§6). It is the
// only way this package reaches outside of the BlockIndex ancestry it is
// handed directly: resolving a hash to a BlockIndex, walking the active
// chain forward, reading a full block, and looking up a transaction's
// containing block.
//
// Grounded on the call shape of peercoin-btcd/blockchain/kernel.go's use of
// b.index.LookupNode, b.bestChain.Next and b.db.View, expressed as a small
// accepted interface rather than a concrete *BlockChain receiver, since this
// package owns no database or index of its own.
type ChainView interface {
	// IndexByHash resolves a block hash to its BlockIndex. ok is false
	// if the hash is unknown to the caller's view of the chain.
	IndexByHash(hash chainhash.Hash) (idx *BlockIndex, ok bool)

	// ActiveChainNext returns the block that follows idx on the
	// caller's active chain, if any.
	ActiveChainNext(idx *BlockIndex) (next *BlockIndex, ok bool)

	// ReadFullBlock reads the full block referenced by idx.
	ReadFullBlock(idx *BlockIndex) (Block, error)

	// LookupTransaction resolves a transaction hash to its projection,
	// the hash of its containing block, and its byte offset within that
	// block (relative to the transactions area, not including the
	// 80-byte header — callers of CheckProofOfStake add that themselves
	// per §4.9/§9).
	LookupTransaction(txHash chainhash.Hash) (tx PrevOutput, containingBlock chainhash.Hash, offset uint32, err error)

	// Difficulty returns the difficulty of idx, used by GetPoSKernelPS
	// (§4.6).
	Difficulty(idx *BlockIndex) float64

	// AdjustedTime returns the node's network-adjusted clock, in Unix
	// seconds.
	AdjustedTime() int64
}

// Block is the minimal projection of a full block the kernel check needs:
// its hash and its header timestamp.
type Block interface {
	Hash() chainhash.Hash
	Timestamp() int64
}

// PrevOutput is the minimal projection of a resolved previous transaction
// the kernel check and the GetCoinAge/GetStakeTime helpers need.
type PrevOutput interface {
	// Timestamp is the transaction's own nTime field.
	Timestamp() int64

	// OutputValue returns the value of output n.
	OutputValue(n uint32) (int64, error)
}

// StakeTx is the minimal projection of a candidate coinstake transaction
// (spec.md §3's "transaction view").
type StakeTx interface {
	IsCoinStake() bool
	IsCoinBase() bool
	Timestamp() int64

	// Inputs returns the transaction's previous-output references. Input
	// 0 is the kernel input consulted by CheckProofOfStake; all inputs
	// are consulted by GetCoinAge/GetStakeTime.
	Inputs() []wire.OutPoint
}
