// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

import (
	"fmt"
	"strings"
)

const decodeRoot = 0

// decodeNode is one node of the decode arena.  A zero child means no child, since the root can never be one.
type decodeNode struct {
	next   [2]int32
	leaf   bool
	symbol Symbol
}

// CodeTable holds both directions of a Huffman code: symbol to codeword for encoding, and codeword to symbol
// for decoding.  The decode direction is kept as a binary arena so that a decoder can match one bit at a
// time.  A CodeTable can only be constructed from a prefix-free set of codewords, and is never modified
// afterwards.
type CodeTable struct {
	codes   [totalSymbols]BitString
	present [totalSymbols]bool
	size    int
	decode  []decodeNode
}

func newEmptyCodeTable() *CodeTable {
	return &CodeTable{decode: make([]decodeNode, 1)}
}

// insert adds one codeword to the decode arena, failing if it conflicts with an existing codeword in either
// prefix direction.
func (ct *CodeTable) insert(sym Symbol, code BitString) error {
	if code.BitLength == 0 {
		return ErrCodeEmpty
	}
	if ct.present[sym] {
		return ErrCodeTableInconsistent
	}

	index := int32(decodeRoot)
	for i := 0; i < code.BitLength; i++ {
		if ct.decode[index].leaf {
			return ErrCodeTableInconsistent
		}

		bit := code.Bit(i)
		next := ct.decode[index].next[bit]
		if next == 0 {
			next = int32(len(ct.decode))
			ct.decode = append(ct.decode, decodeNode{})
			ct.decode[index].next[bit] = next
		}
		index = next
	}

	node := &ct.decode[index]
	if node.leaf || node.next[0] != 0 || node.next[1] != 0 {
		return ErrCodeTableInconsistent
	}
	node.leaf = true
	node.symbol = sym

	ct.codes[sym] = code
	ct.present[sym] = true
	ct.size++
	return nil
}

// NewCodeTable derives the code table for tree by depth-first traversal, appending 0 for each left edge and
// 1 for each right edge.  A tree consisting of a single leaf gets the one-bit code "0", so that every symbol
// occupies at least one bit.  A nil tree gives an empty table.
func NewCodeTable(tree *Tree) *CodeTable {
	ct := newEmptyCodeTable()
	if tree == nil {
		return ct
	}

	var walk func(id NodeID, path BitString)
	walk = func(id NodeID, path BitString) {
		if tree.IsLeaf(id) {
			if path.BitLength == 0 {
				path = path.Append(0)
			}
			if err := ct.insert(tree.Symbol(id), path); err != nil {
				panic("huffman: tree produced " + err.Error())
			}
			return
		}

		left, right := tree.Children(id)
		walk(left, path.Append(0))
		walk(right, path.Append(1))
	}
	walk(tree.Root(), BitString{})

	return ct
}

// NewCodeTableFromCodes constructs a CodeTable from explicit codewords, or returns an error if the set of
// codewords is not prefix-free, contains an empty codeword, or violates BitString invariants.
func NewCodeTableFromCodes(codes map[Symbol]BitString) (*CodeTable, error) {
	ct := newEmptyCodeTable()
	for sym := 0; sym < totalSymbols; sym++ {
		code, ok := codes[Symbol(sym)]
		if !ok {
			continue
		}
		if err := code.check(); err != nil {
			return nil, err
		}
		if err := ct.insert(Symbol(sym), code); err != nil {
			return nil, err
		}
	}
	return ct, nil
}

// Len returns the number of symbols with a codeword.
func (ct *CodeTable) Len() int {
	return ct.size
}

// Code returns the codeword for sym.
func (ct *CodeTable) Code(sym Symbol) (BitString, bool) {
	return ct.codes[sym], ct.present[sym]
}

// Lookup returns the symbol whose codeword is exactly code.
func (ct *CodeTable) Lookup(code BitString) (Symbol, bool) {
	index := int32(decodeRoot)
	for i := 0; i < code.BitLength; i++ {
		var ok bool
		if index, ok = ct.step(index, code.Bit(i)); !ok {
			return 0, false
		}
	}
	node := ct.decode[index]
	return node.symbol, node.leaf && code.BitLength > 0
}

// step follows one bit from index in the decode arena.
func (ct *CodeTable) step(index int32, bit uint8) (int32, bool) {
	next := ct.decode[index].next[bit&1]
	return next, next != 0
}

// Codes returns a copy of the encode direction.
func (ct *CodeTable) Codes() map[Symbol]BitString {
	codes := make(map[Symbol]BitString, ct.size)
	for sym := 0; sym < totalSymbols; sym++ {
		if ct.present[sym] {
			codes[Symbol(sym)] = ct.codes[sym]
		}
	}
	return codes
}

// EncodedBits returns the number of code bits freqs would occupy under this table.  Symbols without a
// codeword are ignored.
func (ct *CodeTable) EncodedBits(freqs FrequencyMap) uint64 {
	var bits uint64
	for sym, count := range freqs {
		if ct.present[sym] {
			bits += count * uint64(ct.codes[sym].BitLength)
		}
	}
	return bits
}

func (ct *CodeTable) String() string {
	var parts []string
	for sym := 0; sym < totalSymbols; sym++ {
		if ct.present[sym] {
			parts = append(parts, fmt.Sprintf("\t%q: %v\n", byte(sym), ct.codes[sym]))
		}
	}
	return "CODES{\n" + strings.Join(parts, "") + "}"
}
