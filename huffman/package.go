// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

/*
Package huffman implements a static Huffman coder for 256-symbol (byte) alphabets.

Compression analyzes the whole input before choosing a code: CountFrequencies builds a FrequencyMap,
BuildTree merges the two lightest nodes until one root remains, NewCodeTable walks the tree assigning 0 to
left edges and 1 to right edges, and Pack concatenates the per-symbol codes into a Block.  Compress runs the
whole pipeline.

A Block starts with one octet holding the padding length, followed by the code bits and that many zero bits
to reach an octet boundary.  The padding length is always in [1,8]: when the code bits already end on an
octet boundary, a full octet of padding is written.  An empty input produces an empty Block with no header
at all.

A raw Block carries no code table.  Unpack and Decompress need the CodeTable from the same encoding session.
For anything that has to cross a process boundary, use the Container form (Marshal and Unmarshal), which
records the frequency table and a digest over the whole container; since tree construction breaks frequency ties by
symbol order, the decoder rebuilds exactly the same code.

Nothing here is safe for concurrent mutation, but a finished CodeTable is read-only and may be shared by
concurrent decoders.
*/
package huffman

import (
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("huffman")
