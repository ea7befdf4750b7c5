// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "bytes"

// GetStakeModifierChecksum implements §4.10: a 32-bit digest chained from a
// block's predecessor, its own flags, hash-proof-of-stake, and stake
// modifier. Genesis (b.Prev == nil) omits the chained prefix.
//
// Ported from peercoin-btcd/blockchain/kernel.go's getStakeModifierChecksum
// and original_source/src/kernel.cpp's GetStakeModifierChecksum.
func GetStakeModifierChecksum(b *BlockIndex) (uint32, error) {
	var buf bytes.Buffer

	if b.Prev != nil {
		if err := writeElement(&buf, b.Prev.StakeModifierChecksum); err != nil {
			return 0, err
		}
	}
	if err := writeElement(&buf, b.Flags); err != nil {
		return 0, err
	}
	if err := writeElement(&buf, b.HashProofOfStake); err != nil {
		return 0, err
	}
	if err := writeElement(&buf, b.StakeModifier); err != nil {
		return 0, err
	}

	digest := doubleHash(buf.Bytes())

	// Result is the upper 32 bits of the digest: a right shift by 224
	// bits on the digest read as a 256-bit big-endian integer.
	checksum := HashToBig(&digest)
	checksum.Rsh(checksum, 256-32)
	return uint32(checksum.Uint64()), nil
}

// CheckStakeModifierCheckpoints implements the second half of §4.10: a
// height not present in params.StakeModifierCheckpoints always passes;
// otherwise the checksum must match exactly.
//
// Ported from peercoin-btcd/blockchain/kernel.go's
// checkStakeModifierCheckpoints.
func CheckStakeModifierCheckpoints(params *Params, height int32, checksum uint32) bool {
	expected, ok := params.StakeModifierCheckpoints[height]
	if !ok {
		return true
	}
	return checksum == expected
}
