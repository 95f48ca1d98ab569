// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
)

const (
	minPadding = 1
	maxPadding = 8
	headerBits = 8
)

// Block is a packed Huffman-coded body: one octet holding the padding length, the code bits, then that many
// zero bits.  The empty Block encodes the empty input.
type Block []byte

// paddingFor returns the number of zero bits that follow encodedBits of code.  It is never zero.
func paddingFor(encodedBits uint64) uint8 {
	return uint8(8 - encodedBits%8)
}

// Header validates the padding octet of b and returns the padding length and the number of code bits in the
// body.  The empty Block has neither.
func (b Block) Header() (padding int, encodedBits int, err error) {
	if len(b) == 0 {
		return 0, 0, nil
	}

	padding = int(b[0])
	bodyBits := (len(b) - 1) * 8
	if padding < minPadding || padding > maxPadding || padding > bodyBits {
		return 0, 0, &CorruptPaddingError{Padding: padding, BodyBits: bodyBits}
	}
	return padding, bodyBits - padding, nil
}

// Pack encodes input with table.  The result's length is always a whole number of octets, and at least two
// octets for non-empty input.  Any symbol with no codeword in table fails with *UnknownSymbolError, and no
// partial Block is returned.
func Pack(input []byte, table *CodeTable) (Block, error) {
	if len(input) == 0 {
		return Block{}, nil
	}
	if table == nil || table.Len() == 0 {
		return nil, ErrEmptyAlphabet
	}

	var encodedBits uint64
	for i, b := range input {
		code, ok := table.Code(Symbol(b))
		if !ok {
			return nil, &UnknownSymbolError{Symbol: Symbol(b), Offset: i}
		}
		encodedBits += uint64(code.BitLength)
	}
	padding := paddingFor(encodedBits)

	buf := new(bytes.Buffer)
	buf.Grow(int((headerBits + encodedBits + uint64(padding)) / 8))
	w := bitio.NewWriter(buf)
	if err := w.WriteByte(padding); err != nil {
		return nil, fmt.Errorf("huffman: writing header: %w", err)
	}
	for _, b := range input {
		if err := table.codes[b].writeTo(w); err != nil {
			return nil, fmt.Errorf("huffman: writing code bits: %w", err)
		}
	}
	if err := w.WriteBits(0, padding); err != nil {
		return nil, fmt.Errorf("huffman: writing padding: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("huffman: flushing block: %w", err)
	}

	log.Debugf("packed %d symbols into %d code bits, %d padding", len(input), encodedBits, padding)
	return Block(buf.Bytes()), nil
}
