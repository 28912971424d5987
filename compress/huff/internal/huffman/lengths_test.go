// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptimalLengths(t *testing.T) {
	table := tableOf("aaaabbbccd")
	lens := OptimalLengths(table)
	require.Equal(t, []uint32{1, 2, 3, 3}, lens)
	require.Equal(t, uint64(19), WeightedLength(table))

	require.Equal(t, []uint32{1}, OptimalLengths(tableOf("zzz")))
	require.Empty(t, OptimalLengths(&Table{}))
}

func TestOptimalLengthsMatchTree(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		table := randomTable(rnd, rnd.Intn(Symbols)+1)
		_, codes := mustCodes(t, table)
		require.Equal(t, codes.EncodedBits(table), WeightedLength(table))
	}
}

func BenchmarkBuild(b *testing.B) {
	table := randomTable(rand.New(rand.NewSource(4)), Symbols)
	for i := 0; i < b.N; i++ {
		tree, _ := Build(table)
		GenerateCodes(tree)
	}
}
