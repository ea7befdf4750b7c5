// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/solarcoin/solarcoin-wallet-dev/blockchain"
)

// maxTargetBits is the loosest difficulty this simulation ever assigns a
// block, used only as the denominator for the Difficulty ratio below.
const maxTargetBits = 0x1e0fffff

// memChain is a minimal in-memory blockchain.ChainView built entirely from
// synthetic blocks, standing in for the real node database a validator would
// otherwise wire in. It exists only to give this demonstration something to
// call blockchain's exported operations against.
type memChain struct {
	byHash   map[chainhash.Hash]*blockchain.BlockIndex
	active   []*blockchain.BlockIndex
	txs      map[chainhash.Hash]memTx
	adjusted int64
}

// memTx is the recorded location and value of a synthetic transaction's
// single output, keyed by the transaction's own hash.
type memTx struct {
	value           int64
	time            int64
	containingBlock chainhash.Hash
	offset          uint32
}

func newMemChain(now int64) *memChain {
	return &memChain{
		byHash:   make(map[chainhash.Hash]*blockchain.BlockIndex),
		txs:      make(map[chainhash.Hash]memTx),
		adjusted: now,
	}
}

func (c *memChain) addBlock(b *blockchain.BlockIndex) {
	c.byHash[b.Hash] = b
	c.active = append(c.active, b)
}

func (c *memChain) addTx(hash chainhash.Hash, tx memTx) {
	c.txs[hash] = tx
}

func (c *memChain) IndexByHash(hash chainhash.Hash) (*blockchain.BlockIndex, bool) {
	idx, ok := c.byHash[hash]
	return idx, ok
}

func (c *memChain) ActiveChainNext(idx *blockchain.BlockIndex) (*blockchain.BlockIndex, bool) {
	for i, b := range c.active {
		if b.Hash == idx.Hash {
			if i+1 < len(c.active) {
				return c.active[i+1], true
			}
			return nil, false
		}
	}
	return nil, false
}

func (c *memChain) ReadFullBlock(idx *blockchain.BlockIndex) (blockchain.Block, error) {
	if _, ok := c.byHash[idx.Hash]; !ok {
		return nil, fmt.Errorf("memChain: block %s not found", idx.Hash)
	}
	return memBlock{hash: idx.Hash, time: idx.Time}, nil
}

func (c *memChain) LookupTransaction(txHash chainhash.Hash) (blockchain.PrevOutput, chainhash.Hash, uint32, error) {
	tx, ok := c.txs[txHash]
	if !ok {
		return nil, chainhash.Hash{}, 0, fmt.Errorf("memChain: transaction %s not found", txHash)
	}
	return memPrevOutput{value: tx.value, time: tx.time}, tx.containingBlock, tx.offset, nil
}

// Difficulty reports idx's difficulty as a ratio of the loosest target this
// simulation uses to idx's own target, the same shape btcd's
// GetDifficultyRatio reports for real chains.
func (c *memChain) Difficulty(idx *blockchain.BlockIndex) float64 {
	target := blockchain.CompactToBig(idx.Bits)
	if target.Sign() == 0 {
		return 0
	}
	maxTarget := blockchain.CompactToBig(maxTargetBits)
	ratio := new(big.Rat).SetFrac(maxTarget, target)
	f, _ := ratio.Float64()
	return f
}

func (c *memChain) AdjustedTime() int64 {
	return c.adjusted
}

// memBlock is the minimal blockchain.Block projection this simulation reads
// back out of memChain.ReadFullBlock.
type memBlock struct {
	hash chainhash.Hash
	time int64
}

func (b memBlock) Hash() chainhash.Hash { return b.hash }
func (b memBlock) Timestamp() int64     { return b.time }

// memPrevOutput is the minimal blockchain.PrevOutput projection of a
// resolved previous transaction.
type memPrevOutput struct {
	value int64
	time  int64
}

func (p memPrevOutput) Timestamp() int64 { return p.time }
func (p memPrevOutput) OutputValue(n uint32) (int64, error) {
	if n != 0 {
		return 0, fmt.Errorf("memPrevOutput: only output 0 exists")
	}
	return p.value, nil
}

// memStakeTx is the minimal blockchain.StakeTx projection of the
// hand-built coinstake this simulation feeds to CheckProofOfStake.
type memStakeTx struct {
	coinstake bool
	coinbase  bool
	time      int64
	inputs    []wire.OutPoint
}

func (t memStakeTx) IsCoinStake() bool        { return t.coinstake }
func (t memStakeTx) IsCoinBase() bool         { return t.coinbase }
func (t memStakeTx) Timestamp() int64         { return t.time }
func (t memStakeTx) Inputs() []wire.OutPoint  { return t.inputs }
