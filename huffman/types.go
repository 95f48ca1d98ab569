// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

import (
	"strings"

	"github.com/icza/bitio"
)

// Symbol is one unit of the alphabet: a single byte of input.
type Symbol uint8

const totalSymbols = 256

// BitString represents a packed bit string.  Within each octet, bits are addressed most significant first.
//
// Invariants:
//   - 0 <= BitLength <= len(Packed)*8
//   - if BitLength%8 != 0, the low (8 - BitLength%8) bits of Packed[BitLength/8] are zero
type BitString struct {
	Packed    []uint8
	BitLength int
}

// ParseBitString builds a BitString from a string of '0' and '1' characters.
func ParseBitString(s string) (BitString, error) {
	var bs BitString
	for _, r := range s {
		switch r {
		case '0':
			bs = bs.Append(0)
		case '1':
			bs = bs.Append(1)
		default:
			return BitString{}, ErrBadBitString
		}
	}
	return bs, nil
}

// Bit returns the bit at position i, counting from the first (most significant) bit.
func (bs BitString) Bit(i int) uint8 {
	if !(0 <= i && i < bs.BitLength) {
		panic("huffman: bit index out of range")
	}
	return (bs.Packed[i/8] >> uint(7-i%8)) & 1
}

// Append returns a copy of bs with one more bit at the end.  bs itself is never modified, so paths built
// during a tree walk can share a common prefix safely.
func (bs BitString) Append(bit uint8) BitString {
	packed := make([]uint8, (bs.BitLength+8)/8)
	copy(packed, bs.Packed[:(bs.BitLength+7)/8])
	if bit != 0 {
		packed[bs.BitLength/8] |= 1 << uint(7-bs.BitLength%8)
	}
	return BitString{packed, bs.BitLength + 1}
}

// HasPrefix reports whether prefix is a prefix of bs.
func (bs BitString) HasPrefix(prefix BitString) bool {
	if prefix.BitLength > bs.BitLength {
		return false
	}
	for i := 0; i < prefix.BitLength; i++ {
		if bs.Bit(i) != prefix.Bit(i) {
			return false
		}
	}
	return true
}

// Equal reports whether bs and other hold the same bits.
func (bs BitString) Equal(other BitString) bool {
	return bs.BitLength == other.BitLength && bs.HasPrefix(other)
}

// writeTo writes every bit of bs to bw, one octet at a time.
func (bs BitString) writeTo(bw *bitio.Writer) error {
	for offset := 0; offset < bs.BitLength; offset += 8 {
		n := bs.BitLength - offset
		if n > 8 {
			n = 8
		}
		// Conversion safety: 0 < n <= 8.
		if err := bw.WriteBits(uint64(bs.Packed[offset/8]>>uint(8-n)), uint8(n)); err != nil {
			return err
		}
	}
	return nil
}

// check returns an error if any of the invariants are invalid for bs.
func (bs BitString) check() error {
	switch {
	case !(0 <= bs.BitLength):
		return ErrBadBitString
	case !(bs.BitLength <= len(bs.Packed)*8):
		return ErrBadBitString
	}

	if bs.BitLength%8 != 0 {
		// Conversion safety: 0 < bs.BitLength%8 <= 7.
		shift := uint(8 - bs.BitLength%8)
		lowBits := bs.Packed[bs.BitLength/8] & (uint8(1)<<shift - 1)
		if lowBits != 0 {
			return ErrBadBitString
		}
	}
	return nil
}

func (bs BitString) String() string {
	var sb strings.Builder
	sb.Grow(bs.BitLength)
	for i := 0; i < bs.BitLength; i++ {
		if bs.Bit(i) == 0 {
			sb.WriteByte('0')
		} else {
			sb.WriteByte('1')
		}
	}
	return sb.String()
}
