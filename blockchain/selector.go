// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"bytes"
	"math/big"
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// blockTimeHash pairs a candidate block's timestamp with its hash, the unit
// this package sorts and selects over (§4.2, §4.3).
type blockTimeHash struct {
	time  int64
	hash  chainhash.Hash
	index *BlockIndex
}

// byTimeHash implements sort.Interface, ascending by time, falling back to
// a numeric big-endian comparison of the hash on a timestamp tie. Ported
// from peercoin-btcd/blockchain/kernel.go's blockTimeHashSorter.Less: the
// tiebreak walks the hash bytes most-significant first, i.e. it compares the
// hashes as 256-bit big-endian integers rather than lexicographically as
// chainhash's own internal little-endian byte layout would give for free.
type byTimeHash []blockTimeHash

func (s byTimeHash) Len() int      { return len(s) }
func (s byTimeHash) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s byTimeHash) Less(i, j int) bool {
	if s[i].time != s[j].time {
		return s[i].time < s[j].time
	}
	for k := chainhash.HashSize - 1; k >= 0; k-- {
		if s[i].hash[k] != s[j].hash[k] {
			return s[i].hash[k] < s[j].hash[k]
		}
	}
	return false
}

// BuildCandidates walks back from tip over the selection window W (§4.1,
// §4.2) collecting every block whose timestamp falls in [start, tip.Time],
// where start is the most recent modifier-interval boundary at or before
// tip.Time minus W, sorted by (time, hash) per byTimeHash. Since this
// package is handed idx chains directly rather than resolving hashes through
// ChainView, "unknown block hash" (spec.md §4.3) cannot occur here; see
// DESIGN.md.
func BuildCandidates(params *Params, tip *BlockIndex) []blockTimeHash {
	lowerBound := selectionIntervalStart(params, tip.Time)

	var candidates []blockTimeHash
	for b := tip; b != nil && b.Time >= lowerBound; b = b.Prev {
		candidates = append(candidates, blockTimeHash{time: b.Time, hash: b.Hash, index: b})
	}
	sort.Sort(byTimeHash(candidates))
	return candidates
}

// SelectBlockFromCandidates scans candidates in ascending (time, hash)
// order, skipping any already present in selected, and returns whichever
// one's selection hash — biased per §4.3's PoW/PoS weighting — is
// numerically smallest among those seen before the scan passes
// selectionIntervalStop (§4.2).
//
// Ported from peercoin-btcd/blockchain/kernel.go's
// selectBlockFromCandidates, with one deliberate simplification: the
// teacher round-trips the shifted selection value back through a
// *chainhash.Hash via a bigToShaHash-style helper purely so it can feed the
// next comparison through HashToBig again; since both sides of that
// comparison are only ever used as big.Int magnitudes here, this version
// keeps the running "best" value in big.Int form throughout and never
// reconstructs a Hash from it — same comparison, one fewer conversion.
//
// The PoW/PoS discriminator is height, not the zero-ness of
// HashProofOfStake: original_source/src/kernel.cpp notes IsProofOfStake is
// not valid during header download and uses height instead, and the same
// height check (BlockIndex.IsProofOfStake) is what blockindex.go,
// kernelcheck.go and weight.go already use.
func SelectBlockFromCandidates(params *Params, candidates []blockTimeHash, selected map[chainhash.Hash]bool, selectionIntervalStop int64, stakeModifierPrev uint64) (pindexSelected *BlockIndex, hashSelected chainhash.Hash, hitFound bool) {
	var best *big.Int

	for _, c := range candidates {
		if hitFound && c.time > selectionIntervalStop {
			break
		}
		if selected[c.hash] {
			continue
		}

		// The selection hash is built from a block's own
		// proof-of-stake hash where one exists, falling back to the
		// block's own hash for blocks mined under proof-of-work.
		hashProof := c.hash
		if c.index.IsProofOfStake(params) {
			hashProof = c.index.HashProofOfStake
		}

		var buf bytes.Buffer
		buf.Write(hashProof[:])
		if err := writeElement(&buf, stakeModifierPrev); err != nil {
			continue
		}
		h := doubleHash(buf.Bytes())

		selectionValue := HashToBig(&h)
		if c.index.IsProofOfStake(params) {
			// Proof-of-stake candidates are favored over
			// proof-of-work ones by an energy-efficiency bias:
			// right-shift by 32 bits, making the value at most
			// 2^-32 of its proof-of-work-case magnitude.
			selectionValue = new(big.Int).Rsh(selectionValue, 32)
		}

		if !hitFound || selectionValue.Cmp(best) < 0 {
			hitFound = true
			best = selectionValue
			pindexSelected = c.index
			hashSelected = c.hash
		}
	}

	log.Debugf("SelectBlockFromCandidates: selection hash=%v", best)
	return pindexSelected, hashSelected, hitFound
}
