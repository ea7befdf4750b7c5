// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire holds the on-disk encoding this repository demonstrates for
// the block-index fields the blockchain package reads and writes but never
// persists itself (SPEC_FULL.md §6/§14).
package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// StakeMeta is the bit-exact disk encoding of the four BlockIndex fields
// §6 names as the surrounding storage layer's responsibility: stake
// modifier, hash-proof-of-stake, flags, and stake-modifier checksum.
//
// Grounded on the teacher's own little-endian writeElement idiom
// (peercoin-btcd/blockchain/kernel.go), the same primitive
// blockchain.writeElement in this repository is built from.
type StakeMeta struct {
	StakeModifier         uint64
	HashProofOfStake      chainhash.Hash
	Flags                 uint32
	StakeModifierChecksum uint32
}

// metaEncodedLen is StakeMeta's fixed wire size: 8 + 32 + 4 + 4 bytes.
const metaEncodedLen = 8 + chainhash.HashSize + 4 + 4

// Serialize writes m to w in the fixed little-endian layout: stake
// modifier, hash-proof-of-stake (raw bytes, already little-endian per
// chainhash.Hash's own convention), flags, checksum.
func (m *StakeMeta) Serialize(w io.Writer) error {
	var buf [metaEncodedLen]byte

	binary.LittleEndian.PutUint64(buf[0:8], m.StakeModifier)
	copy(buf[8:8+chainhash.HashSize], m.HashProofOfStake[:])
	off := 8 + chainhash.HashSize
	binary.LittleEndian.PutUint32(buf[off:off+4], m.Flags)
	binary.LittleEndian.PutUint32(buf[off+4:off+8], m.StakeModifierChecksum)

	_, err := w.Write(buf[:])
	return err
}

// Deserialize populates m by reading exactly metaEncodedLen bytes from r.
func (m *StakeMeta) Deserialize(r io.Reader) error {
	var buf [metaEncodedLen]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return fmt.Errorf("StakeMeta.Deserialize: %w", err)
	}

	m.StakeModifier = binary.LittleEndian.Uint64(buf[0:8])
	copy(m.HashProofOfStake[:], buf[8:8+chainhash.HashSize])
	off := 8 + chainhash.HashSize
	m.Flags = binary.LittleEndian.Uint32(buf[off : off+4])
	m.StakeModifierChecksum = binary.LittleEndian.Uint32(buf[off+4 : off+8])

	return nil
}
