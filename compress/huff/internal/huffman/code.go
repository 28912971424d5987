// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import (
	"errors"
	"strings"
)

// MaxCodeLen is the longest code a CodeTable can hold.
const MaxCodeLen = 64

var ErrCodeTooLong = errors.New("huffman: code longer than 64 bits")

// Code is the path from the root to a leaf. The first edge is the most
// significant of the Len low bits of Bits; 0 is left and 1 is right.
type Code struct {
	Bits uint64
	Len  uint8
}

func (c Code) String() string {
	var sb strings.Builder
	for i := int(c.Len) - 1; i >= 0; i-- {
		if c.Bits>>uint(i)&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// HasPrefix reports whether p is a prefix of c.
func (c Code) HasPrefix(p Code) bool {
	if p.Len > c.Len {
		return false
	}
	return c.Bits>>(c.Len-p.Len) == p.Bits
}

// CodeTable maps every symbol to its code. Absent symbols have Len == 0.
type CodeTable [Symbols]Code

// GenerateCodes walks the tree and records the path to every leaf.
// A tree made of a single leaf gets the one bit code 0. A nil tree yields an
// empty table.
func GenerateCodes(t *Tree) (*CodeTable, error) {
	codes := &CodeTable{}
	if t == nil || len(t.nodes) == 0 {
		return codes, nil
	}
	root := t.Root()
	if t.IsLeaf(root) {
		codes[t.Symbol(root)] = Code{Bits: 0, Len: 1}
		return codes, nil
	}
	if err := generateCodes(codes, t, root, 0, 0); err != nil {
		return nil, err
	}
	return codes, nil
}

func generateCodes(codes *CodeTable, t *Tree, n int32, bits uint64, depth int) error {
	if t.IsLeaf(n) {
		codes[t.Symbol(n)] = Code{Bits: bits, Len: uint8(depth)}
		return nil
	}
	if depth == MaxCodeLen {
		return ErrCodeTooLong
	}
	if err := generateCodes(codes, t, t.Child(n, false), bits<<1, depth+1); err != nil {
		return err
	}
	return generateCodes(codes, t, t.Child(n, true), bits<<1|1, depth+1)
}

// EncodedBits returns the payload size in bits of the data t was counted
// from.
func (c *CodeTable) EncodedBits(t *Table) (bits uint64) {
	for _, e := range t.Entries() {
		bits += uint64(e.Count) * uint64(c[e.Symbol].Len)
	}
	return bits
}
