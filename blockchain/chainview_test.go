// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// fakeChain is a minimal in-memory ChainView used across this package's
// tests, standing in for a real node database.
type fakeChain struct {
	byHash map[chainhash.Hash]*BlockIndex
	active []*BlockIndex
	txs    map[chainhash.Hash]fakeTx
}

type fakeTx struct {
	value           int64
	time            int64
	containingBlock chainhash.Hash
	offset          uint32
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		byHash: make(map[chainhash.Hash]*BlockIndex),
		txs:    make(map[chainhash.Hash]fakeTx),
	}
}

func (c *fakeChain) addActive(b *BlockIndex) {
	c.byHash[b.Hash] = b
	c.active = append(c.active, b)
}

func (c *fakeChain) addTx(hash chainhash.Hash, tx fakeTx) {
	c.txs[hash] = tx
}

func (c *fakeChain) IndexByHash(hash chainhash.Hash) (*BlockIndex, bool) {
	idx, ok := c.byHash[hash]
	return idx, ok
}

func (c *fakeChain) ActiveChainNext(idx *BlockIndex) (*BlockIndex, bool) {
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

func (c *fakeChain) ReadFullBlock(idx *BlockIndex) (Block, error) {
	if _, ok := c.byHash[idx.Hash]; !ok {
		return nil, fmt.Errorf("fakeChain: block %s not found", idx.Hash)
	}
	return fakeBlock{hash: idx.Hash, time: idx.Time}, nil
}

func (c *fakeChain) LookupTransaction(txHash chainhash.Hash) (PrevOutput, chainhash.Hash, uint32, error) {
	tx, ok := c.txs[txHash]
	if !ok {
		return nil, chainhash.Hash{}, 0, fmt.Errorf("fakeChain: transaction %s not found", txHash)
	}
	return fakePrevOutput{value: tx.value, time: tx.time}, tx.containingBlock, tx.offset, nil
}

func (c *fakeChain) Difficulty(idx *BlockIndex) float64 {
	return 1.0
}

func (c *fakeChain) AdjustedTime() int64 {
	return 0
}

type fakeBlock struct {
	hash chainhash.Hash
	time int64
}

func (b fakeBlock) Hash() chainhash.Hash { return b.hash }
func (b fakeBlock) Timestamp() int64     { return b.time }

type fakePrevOutput struct {
	value int64
	time  int64
}

func (p fakePrevOutput) Timestamp() int64 { return p.time }
func (p fakePrevOutput) OutputValue(n uint32) (int64, error) {
	if n != 0 {
		return 0, fmt.Errorf("fakePrevOutput: only output 0 exists")
	}
	return p.value, nil
}

type fakeStakeTx struct {
	coinstake bool
	coinbase  bool
	time      int64
	inputs    []wire.OutPoint
}

func (t fakeStakeTx) IsCoinStake() bool       { return t.coinstake }
func (t fakeStakeTx) IsCoinBase() bool        { return t.coinbase }
func (t fakeStakeTx) Timestamp() int64        { return t.time }
func (t fakeStakeTx) Inputs() []wire.OutPoint { return t.inputs }
