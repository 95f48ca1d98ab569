// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

import (
	"container/heap"
	"fmt"
	"strings"
)

// NodeID is a handle to a node within a Tree.
type NodeID int32

// NoNode is the child handle of a leaf.
const NoNode NodeID = -1

type treeNode struct {
	freq     uint64
	symbol   Symbol
	leaf     bool
	children [2]NodeID
}

// Tree is a Huffman tree stored as an arena of nodes.  Leaves come first, in ascending symbol order, followed
// by internal nodes in the order they were merged; the root is always the last node.
type Tree struct {
	nodes []treeNode
	root  NodeID
}

type queueItem struct {
	id   NodeID
	freq uint64
}

// nodeQueue is a min-heap on frequency.  Ties go to the node created first, which is the node with the lower
// handle.
type nodeQueue []queueItem

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].freq != q[j].freq {
		return q[i].freq < q[j].freq
	}
	return q[i].id < q[j].id
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(queueItem)) }

func (q *nodeQueue) Pop() interface{} {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]
	return item
}

func (t *Tree) add(node treeNode) NodeID {
	t.nodes = append(t.nodes, node)
	return NodeID(len(t.nodes) - 1)
}

// BuildTree builds a Huffman tree by repeatedly merging the two lowest-frequency nodes.  The first node popped
// becomes the left child.  The result depends only on freqs, so an encoder and a decoder given the same
// frequency table build identical trees.
func BuildTree(freqs FrequencyMap) (*Tree, error) {
	if freqs.Len() == 0 {
		return nil, ErrEmptyAlphabet
	}

	symbols := freqs.Symbols()
	tree := &Tree{nodes: make([]treeNode, 0, 2*len(symbols)-1)}
	queue := make(nodeQueue, 0, len(symbols))
	for _, sym := range symbols {
		id := tree.add(treeNode{
			freq:     freqs[sym],
			symbol:   sym,
			leaf:     true,
			children: [2]NodeID{NoNode, NoNode},
		})
		queue = append(queue, queueItem{id, freqs[sym]})
	}

	heap.Init(&queue)
	for queue.Len() > 1 {
		a := heap.Pop(&queue).(queueItem)
		b := heap.Pop(&queue).(queueItem)
		id := tree.add(treeNode{
			freq:     a.freq + b.freq,
			children: [2]NodeID{a.id, b.id},
		})
		heap.Push(&queue, queueItem{id, a.freq + b.freq})
	}

	tree.root = heap.Pop(&queue).(queueItem).id
	return tree, nil
}

// Root returns the handle of the root node.
func (t *Tree) Root() NodeID {
	return t.root
}

// Len returns the total number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) IsLeaf(id NodeID) bool {
	return t.nodes[id].leaf
}

// Symbol returns the symbol held by a leaf.
func (t *Tree) Symbol(id NodeID) Symbol {
	if !t.nodes[id].leaf {
		panic("huffman: symbol of internal node")
	}
	return t.nodes[id].symbol
}

func (t *Tree) Frequency(id NodeID) uint64 {
	return t.nodes[id].freq
}

// Children returns the left and right children of id, or NoNode twice for a leaf.
func (t *Tree) Children(id NodeID) (left, right NodeID) {
	node := t.nodes[id]
	return node.children[0], node.children[1]
}

// EncodedBits returns the number of code bits needed for the input the tree was built from.  Every internal
// node adds one bit to each symbol occurrence beneath it, so this is the sum of internal frequencies.  A lone
// leaf is coded with one bit per occurrence.
func (t *Tree) EncodedBits() uint64 {
	if len(t.nodes) == 1 {
		return t.nodes[0].freq
	}

	var bits uint64
	for _, node := range t.nodes {
		if !node.leaf {
			bits += node.freq
		}
	}
	return bits
}

func (t *Tree) String() string {
	var sb strings.Builder
	var walk func(id NodeID, depth int)
	walk = func(id NodeID, depth int) {
		sb.WriteString(strings.Repeat("    ", depth))
		node := t.nodes[id]
		if node.leaf {
			fmt.Fprintf(&sb, "%q:%d\n", byte(node.symbol), node.freq)
			return
		}
		fmt.Fprintf(&sb, "*:%d\n", node.freq)
		walk(node.children[0], depth+1)
		walk(node.children[1], depth+1)
	}
	walk(t.root, 0)
	return sb.String()
}
