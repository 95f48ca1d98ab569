// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
)

// Unpack decodes block using the table from the encoding session that produced it.  It strips the header and
// padding, then walks the code bits through the table one bit at a time, emitting a symbol whenever the
// accumulated bits form a complete codeword.
//
// Code bits left over at the end, or a run of bits that no codeword can match, fail with
// *TruncatedStreamError; a bad header fails with *CorruptPaddingError.  On failure no partial output is
// returned.
func Unpack(block Block, table *CodeTable) ([]byte, error) {
	_, encodedBits, err := block.Header()
	if err != nil {
		return nil, err
	}
	if len(block) == 0 {
		return []byte{}, nil
	}
	if table == nil || table.Len() == 0 {
		return nil, ErrEmptyAlphabet
	}

	r := bitio.NewReader(bytes.NewReader(block[1:]))
	out := make([]byte, 0, encodedBits)
	index := int32(decodeRoot)
	pending := 0

	for i := 0; i < encodedBits; i++ {
		bit, err := r.ReadBool()
		if err != nil {
			return nil, fmt.Errorf("huffman: reading code bits: %w", err)
		}

		var b uint8
		if bit {
			b = 1
		}
		next, ok := table.step(index, b)
		pending++
		if !ok {
			return nil, &TruncatedStreamError{PendingBits: pending, Offset: i + 1 - pending}
		}

		if node := table.decode[next]; node.leaf {
			out = append(out, byte(node.symbol))
			index = decodeRoot
			pending = 0
		} else {
			index = next
		}
	}

	if pending != 0 {
		return nil, &TruncatedStreamError{PendingBits: pending, Offset: encodedBits - pending}
	}

	log.Debugf("unpacked %d code bits into %d symbols", encodedBits, len(out))
	return out, nil
}
