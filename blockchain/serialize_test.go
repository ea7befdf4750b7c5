// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/davecgh/go-spew/spew"
)

func TestWriteElement(t *testing.T) {
	hash := mustHash(0x42)

	tests := []struct {
		name string
		in   interface{}
		want []byte
	}{
		{"uint32", uint32(0x01020304), []byte{0x04, 0x03, 0x02, 0x01}},
		{"uint64", uint64(0x0102030405060708), []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}},
		{"int64", int64(-1), []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
		{"hash", hash, hash[:]},
	}

	for _, test := range tests {
		var buf bytes.Buffer
		if err := writeElement(&buf, test.in); err != nil {
			t.Errorf("writeElement(%s) unexpected error: %v", test.name, err)
			continue
		}
		if !bytes.Equal(buf.Bytes(), test.want) {
			t.Errorf("writeElement(%s)\n got: %s\nwant: %s", test.name,
				spew.Sdump(buf.Bytes()), spew.Sdump(test.want))
		}
	}
}

func TestWriteElementHashType(t *testing.T) {
	var buf bytes.Buffer
	h := chainhash.Hash{}
	h[0] = 0xaa
	h[chainhash.HashSize-1] = 0xbb
	if err := writeElement(&buf, h); err != nil {
		t.Fatalf("writeElement: unexpected error: %v", err)
	}
	if buf.Len() != chainhash.HashSize {
		t.Fatalf("writeElement(hash): wrote %d bytes, want %d", buf.Len(), chainhash.HashSize)
	}
	if buf.Bytes()[0] != 0xaa || buf.Bytes()[chainhash.HashSize-1] != 0xbb {
		t.Errorf("writeElement(hash): bytes not written verbatim, got %s", spew.Sdump(buf.Bytes()))
	}
}
