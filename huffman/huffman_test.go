// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman_test

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"testing"

	"github.com/op/go-logging"

	"github.com/blanu/huffcodec/huffman"
)

type treeNode struct {
	symbol      int
	left, right *treeNode
}

const (
	randSeed   = 0x5a025ca11825a5e7
	iterations = 10
)

var rng *rand.Rand

func TestMain(m *testing.M) {
	logging.SetLevel(logging.WARNING, "")
	os.Exit(m.Run())
}

func randomHuffmanTree() *treeNode {
	nodes := make([]*treeNode, 256)
	for i := range nodes {
		nodes[i] = &treeNode{i, nil, nil}
	}

	var swap int
	for len(nodes) >= 2 {
		swap = rng.Intn(len(nodes))
		nodes[0], nodes[swap] = nodes[swap], nodes[0]
		swap = 1 + rng.Intn(len(nodes)-1)
		nodes[1], nodes[swap] = nodes[swap], nodes[1]
		nodes[1] = &treeNode{-1, nodes[0], nodes[1]}
		nodes = nodes[1:]
	}

	return nodes[0]
}

func (node treeNode) writeToCodeTable(table map[huffman.Symbol]huffman.BitString, prefix huffman.BitString) {
	if node.symbol >= 0 {
		table[huffman.Symbol(node.symbol)] = prefix
	} else {
		node.left.writeToCodeTable(table, prefix.Append(0))
		node.right.writeToCodeTable(table, prefix.Append(1))
	}
}

func randomCodes() map[huffman.Symbol]huffman.BitString {
	codes := make(map[huffman.Symbol]huffman.BitString, 256)
	tree := randomHuffmanTree()
	tree.writeToCodeTable(codes, huffman.BitString{})
	return codes
}

func TestRandomCodings(t *testing.T) {
	rng = rand.New(rand.NewSource(randSeed))

	for iteration := 0; iteration < iterations; iteration++ {
		codes := randomCodes()
		table, err := huffman.NewCodeTableFromCodes(codes)
		if err != nil {
			t.Errorf("valid coding #%d got: %v", iteration, err)
			continue
		}

		if table.Len() != 256 {
			t.Errorf("coding #%d has %d codes, want 256", iteration, table.Len())
		}
		for sym, code := range codes {
			got, ok := table.Lookup(code)
			if !ok || got != sym {
				t.Errorf("coding #%d: lookup %v = %d, %v; want %d", iteration, code, got, ok, sym)
			}
		}
	}
}

func showBinaryOctets(b []byte) string {
	parts := make([]string, len(b))
	for i, x := range b {
		parts[i] = fmt.Sprintf("%08b", x)
	}
	return strings.Join(parts, " ")
}

func TestLoopback(t *testing.T) {
	rng = rand.New(rand.NewSource(randSeed))

	for iteration := 0; iteration < iterations; iteration++ {
		table, err := huffman.NewCodeTableFromCodes(randomCodes())
		if err != nil {
			t.Errorf("valid coding #%d got: %v", iteration, err)
			continue
		}

		dataLen := rng.Intn(10)
		dataIn := make([]byte, dataLen)
		for i := range dataIn {
			dataIn[i] = uint8(rng.Int())
		}
		t.Logf("input: %s", showBinaryOctets(dataIn))

		huffed, err := huffman.Pack(dataIn, table)
		if err != nil {
			t.Fatalf("coding #%d pack: %v", iteration, err)
		}
		t.Logf("huffed: %s", showBinaryOctets(huffed))

		dataOut, err := huffman.Unpack(huffed, table)
		if err != nil {
			t.Fatalf("coding #%d unpack: %v", iteration, err)
		}
		t.Logf("looped: %s", showBinaryOctets(dataOut))

		if !bytes.Equal(dataOut, dataIn) {
			t.Fatalf("coding #%d failed to loop around %d -> %d -> %d bytes of data",
				iteration, dataLen, len(huffed), len(dataOut))
		}
	}
}

func TestInconsistentCodings(t *testing.T) {
	bits := func(s string) huffman.BitString {
		bs, err := huffman.ParseBitString(s)
		if err != nil {
			t.Fatal(err)
		}
		return bs
	}

	cases := []struct {
		name  string
		codes map[huffman.Symbol]huffman.BitString
		err   error
	}{
		{"prefix", map[huffman.Symbol]huffman.BitString{'a': bits("0"), 'b': bits("01")}, huffman.ErrCodeTableInconsistent},
		{"extension", map[huffman.Symbol]huffman.BitString{'a': bits("011"), 'b': bits("01")}, huffman.ErrCodeTableInconsistent},
		{"duplicate", map[huffman.Symbol]huffman.BitString{'a': bits("10"), 'b': bits("10")}, huffman.ErrCodeTableInconsistent},
		{"empty", map[huffman.Symbol]huffman.BitString{'a': {}}, huffman.ErrCodeEmpty},
		{"dirty", map[huffman.Symbol]huffman.BitString{'a': {Packed: []uint8{0x01}, BitLength: 1}}, huffman.ErrBadBitString},
	}

	for _, c := range cases {
		if _, err := huffman.NewCodeTableFromCodes(c.codes); err != c.err {
			t.Errorf("%s: got %v, want %v", c.name, err, c.err)
		}
	}
}
