// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

// Compress runs the whole encoding pipeline over input and returns the Block along with the CodeTable and
// Tree it was coded with.  The CodeTable is what Decompress needs; a Block is meaningless without it.
//
// Empty input never reaches tree construction: it gives an empty Block, an empty CodeTable and a nil Tree.
func Compress(input []byte) (Block, *CodeTable, *Tree, error) {
	freqs := CountFrequencies(input)
	if freqs.Len() == 0 {
		log.Debugf("compress: empty input")
		return Block{}, newEmptyCodeTable(), nil, nil
	}

	tree, err := BuildTree(freqs)
	if err != nil {
		return nil, nil, nil, err
	}
	table := NewCodeTable(tree)

	block, err := Pack(input, table)
	if err != nil {
		return nil, nil, nil, err
	}

	log.Debugf("compress: %d bytes, %d distinct symbols -> %d bytes", len(input), freqs.Len(), len(block))
	return block, table, tree, nil
}

// Decompress decodes block with the table returned by the Compress call that produced it.
func Decompress(block Block, table *CodeTable) ([]byte, error) {
	out, err := Unpack(block, table)
	if err != nil {
		log.Debugf("decompress: %v", err)
		return nil, err
	}

	log.Debugf("decompress: %d bytes -> %d bytes", len(block), len(out))
	return out, nil
}
