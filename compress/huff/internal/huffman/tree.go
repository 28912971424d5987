// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import "container/heap"

const noChild = -1

// node is either a leaf (left == noChild) or an internal node owning the
// nodes at index left and right.
type node struct {
	freq   uint64
	left   int32
	right  int32
	symbol byte
}

// Tree is a Huffman tree stored in an arena. Children always have a lower
// index than their parent and the root is the last node.
type Tree struct {
	nodes []node
}

type queueItem struct {
	freq uint64
	seq  int32 // arena index, doubles as insertion order
}

// nodeQueue orders by frequency, then by insertion order.
type nodeQueue []queueItem

func (q nodeQueue) Len() int { return len(q) }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].freq != q[j].freq {
		return q[i].freq < q[j].freq
	}
	return q[i].seq < q[j].seq
}
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(queueItem)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Build constructs the tree for t. Leaves enter the queue in table order and
// every merged node is queued after all existing ones, so equal frequencies
// always resolve the same way and the same table yields the same tree.
func Build(t *Table) (*Tree, error) {
	n := t.Len()
	if n == 0 {
		return nil, ErrEmptyTable
	}
	tree := &Tree{nodes: make([]node, 0, 2*n-1)}
	q := make(nodeQueue, 0, n)
	for _, e := range t.Entries() {
		idx := int32(len(tree.nodes))
		tree.nodes = append(tree.nodes, node{freq: uint64(e.Count), left: noChild, right: noChild, symbol: e.Symbol})
		q = append(q, queueItem{freq: uint64(e.Count), seq: idx})
	}
	heap.Init(&q)

	for q.Len() > 1 {
		left := heap.Pop(&q).(queueItem)
		right := heap.Pop(&q).(queueItem)
		idx := int32(len(tree.nodes))
		freq := left.freq + right.freq
		tree.nodes = append(tree.nodes, node{freq: freq, left: left.seq, right: right.seq})
		heap.Push(&q, queueItem{freq: freq, seq: idx})
	}
	return tree, nil
}

// Root returns the index of the root node.
func (t *Tree) Root() int32 {
	return int32(len(t.nodes) - 1)
}

// IsLeaf reports whether n holds a symbol.
func (t *Tree) IsLeaf(n int32) bool {
	return t.nodes[n].left == noChild
}

// Symbol returns the symbol of leaf n.
func (t *Tree) Symbol(n int32) byte {
	return t.nodes[n].symbol
}

// Freq returns the frequency of n, the sum of its leaves for internal nodes.
func (t *Tree) Freq(n int32) uint64 {
	return t.nodes[n].freq
}

// Child returns the right child of internal node n if bit is set, the left
// one otherwise.
func (t *Tree) Child(n int32, bit bool) int32 {
	if bit {
		return t.nodes[n].right
	}
	return t.nodes[n].left
}

// Leaves returns the number of leaves.
func (t *Tree) Leaves() int {
	return (len(t.nodes) + 1) / 2
}

// Depth returns the length of the longest root-to-leaf path.
func (t *Tree) Depth() int {
	// children precede parents, so walking from the root down visits
	// every parent before its children
	depth := make([]int, len(t.nodes))
	deepest := 0
	for i := len(t.nodes) - 1; i >= 0; i-- {
		nd := t.nodes[i]
		if nd.left == noChild {
			if depth[i] > deepest {
				deepest = depth[i]
			}
			continue
		}
		depth[nd.left] = depth[i] + 1
		depth[nd.right] = depth[i] + 1
	}
	return deepest
}
