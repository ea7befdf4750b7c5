// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// writeElement writes the little-endian representation of element to w.
// Ported from peercoin-btcd/blockchain/kernel.go's writeElement (itself
// adapted from wire/common.go): every integer this package feeds into a
// hash goes through here, unpadded, in its declared width, matching §6's
// "Serialization byte order" contract exactly.
func writeElement(w io.Writer, element interface{}) error {
	var scratch [8]byte

	switch e := element.(type) {
	case uint32:
		binary.LittleEndian.PutUint32(scratch[0:4], e)
		_, err := w.Write(scratch[0:4])
		return err

	case uint64:
		binary.LittleEndian.PutUint64(scratch[0:8], e)
		_, err := w.Write(scratch[0:8])
		return err

	case int64:
		binary.LittleEndian.PutUint64(scratch[0:8], uint64(e))
		_, err := w.Write(scratch[0:8])
		return err

	case chainhash.Hash:
		_, err := w.Write(e[:])
		return err
	}

	return binary.Write(w, binary.LittleEndian, element)
}
