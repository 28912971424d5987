// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import "sort"

// OptimalLengths returns the minimum-redundancy code length of every entry
// of t, in table order, without building a tree.
// It implements In-Place Calculation of Minimum-Redundancy Codes.
// Check http://hjemmesider.diku.dk/~jyrki/Paper/WADS95.pdf .
//
// Any optimal prefix code has the same weighted length, so
// sum(count * length) matches the payload size of the tree from Build.
func OptimalLengths(t *Table) []uint32 {
	entries := t.Entries()
	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return entries[order[i]].Count > entries[order[j]].Count
	})
	w := make([]uint64, len(order))
	for i, idx := range order {
		w[i] = uint64(entries[idx].Count)
	}

	codeLens(w)

	lens := make([]uint32, len(entries))
	for i, idx := range order {
		lens[idx] = uint32(w[i])
	}
	return lens
}

// WeightedLength returns sum(count * length) for the optimal lengths of t.
func WeightedLength(t *Table) (bits uint64) {
	lens := OptimalLengths(t)
	for i, e := range t.Entries() {
		bits += uint64(e.Count) * uint64(lens[i])
	}
	return bits
}

// codeLens replaces the weights in w, sorted in decreasing order, by their
// code lengths and returns the longest one.
func codeLens(w []uint64) uint64 {
	// phase 1
	n := len(w)
	if n == 0 {
		return 0
	}
	if n == 1 {
		w[0] = 1
		return 1
	}
	leaf := n - 1
	root := n - 1
	for next := n - 1; next >= 1; next-- {
		// find first child
		if leaf < 0 || (root > next && w[root] < w[leaf]) {
			// use internal node
			w[next] = w[root]
			w[root] = uint64(next)
			root--
		} else {
			// use leaf node
			w[next] = w[leaf]
			leaf--
		}

		// find second child
		if leaf < 0 || (root > next && w[root] < w[leaf]) {
			// use internal node
			w[next] += w[root]
			w[root] = uint64(next)
			root--
		} else {
			// use leaf node
			w[next] += w[leaf]
			leaf--
		}
	}
	// phase 2
	w[1] = 0
	for next := 2; next <= n-1; next++ {
		w[next] = w[w[next]] + 1
	}
	// phase 3
	avail := 1
	used := 0
	depth := 0
	root = 1
	next := 0
	for avail > 0 {
		// count internal nodes used at depth depth
		for ; root < n && w[root] == uint64(depth); root++ {
			used++
		}
		// assign as leaves any nodes that are not internal
		for ; avail > used; avail-- {
			w[next] = uint64(depth)
			next++
		}
		avail = 2 * used
		depth++
		used = 0
	}
	return w[n-1]
}
