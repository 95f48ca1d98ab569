// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyAlphabet         = errors.New("huffman: empty alphabet")
	ErrCodeTableInconsistent = errors.New("huffman: inconsistent code table")
	ErrCodeEmpty             = errors.New("huffman: empty code specified")
	ErrBadBitString          = errors.New("huffman: malformed bit string")
)

// UnknownSymbolError reports an input symbol that has no code in the encode table.  This only happens when a
// table is reused for input other than the one it was derived from.
type UnknownSymbolError struct {
	Symbol Symbol
	Offset int
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("huffman: no code for symbol %#02x at input offset %d", uint8(e.Symbol), e.Offset)
}

// TruncatedStreamError reports encoded bits that never completed a codeword.  Offset is the bit position
// within the encoded body at which the unmatched run began.
type TruncatedStreamError struct {
	PendingBits int
	Offset      int
}

func (e *TruncatedStreamError) Error() string {
	return fmt.Sprintf("huffman: %d unmatched code bits at bit offset %d", e.PendingBits, e.Offset)
}

// CorruptPaddingError reports a padding header outside [1,8] or larger than the block body.
type CorruptPaddingError struct {
	Padding  int
	BodyBits int
}

func (e *CorruptPaddingError) Error() string {
	if e.Padding < minPadding || e.Padding > maxPadding {
		return fmt.Sprintf("huffman: padding length %d outside [%d,%d]", e.Padding, minPadding, maxPadding)
	}
	return fmt.Sprintf("huffman: padding length %d exceeds %d body bits", e.Padding, e.BodyBits)
}
