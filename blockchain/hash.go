// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"

	btcdblockchain "github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// HashToBig and CompactToBig are consensus-critical compact-nBits <->
// 256-bit-big-integer conversions. Rather than re-deriving them on
// math/big, this package delegates to the real upstream
// github.com/btcsuite/btcd/blockchain package (the teacher's own module is,
// itself, that package's namesake fork, so these calls are unqualified
// there; here they are a genuine imported dependency instead — see
// DESIGN.md / SPEC_FULL.md §14).
var (
	HashToBig    = btcdblockchain.HashToBig
	CompactToBig = btcdblockchain.CompactToBig
)

// doubleHash returns chainhash.DoubleHashH(buf), matching the teacher's own
// chainhash.NewHash(chainhash.DoubleHashB(...)) call shape.
func doubleHash(buf []byte) chainhash.Hash {
	return chainhash.DoubleHashH(buf)
}

// bigToHash is the inverse of HashToBig: it left-pads n's big-endian byte
// representation to 32 bytes and reverses it into a chainhash.Hash's
// little-endian layout. Used by §4.8 to turn the computed big-integer
// target back into the chainhash.Hash CheckStakeTimeKernelHash returns.
func bigToHash(n *big.Int) chainhash.Hash {
	var hash chainhash.Hash
	buf := n.Bytes()
	if len(buf) > chainhash.HashSize {
		buf = buf[len(buf)-chainhash.HashSize:]
	}
	// buf is big-endian; place it right-aligned then reverse in place to
	// get chainhash's little-endian layout.
	copy(hash[chainhash.HashSize-len(buf):], buf)
	for i, j := 0, chainhash.HashSize-1; i < j; i, j = i+1, j-1 {
		hash[i], hash[j] = hash[j], hash[i]
	}
	return hash
}
