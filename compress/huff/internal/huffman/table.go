// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package huffman builds static Huffman trees and codes over the byte alphabet.
package huffman

import (
	"errors"
	"fmt"
)

// Symbols is the size of the alphabet.
const Symbols = 256

var (
	ErrEmptyTable     = errors.New("huffman: empty frequency table")
	ErrDuplicateEntry = errors.New("huffman: duplicate symbol in frequency table")
	ErrZeroCount      = errors.New("huffman: zero count in frequency table")
)

// Entry is the occurrence count of one symbol.
type Entry struct {
	Symbol byte
	Count  uint32
}

// Table is a frequency table. Only symbols seen at least once are present.
// The order of the entries is significant: it breaks ties between equal
// frequencies while the tree is built, so a decoder must keep the order in
// which the table was written.
type Table struct {
	entries []Entry
	present [Symbols]bool
}

// NewTable creates a table from entries, keeping their order.
func NewTable(entries []Entry) (*Table, error) {
	t := &Table{entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		if e.Count == 0 {
			return nil, fmt.Errorf("%w: symbol %#02x", ErrZeroCount, e.Symbol)
		}
		if t.present[e.Symbol] {
			return nil, fmt.Errorf("%w: symbol %#02x", ErrDuplicateEntry, e.Symbol)
		}
		t.present[e.Symbol] = true
		t.entries = append(t.entries, e)
	}
	return t, nil
}

// TableFromCounts creates a table in ascending symbol order from a histogram
// indexed by symbol. Zero counts are skipped.
func TableFromCounts(counts *[Symbols]uint32) *Table {
	t := &Table{}
	for sym, c := range counts {
		if c != 0 {
			t.entries = append(t.entries, Entry{Symbol: byte(sym), Count: c})
			t.present[sym] = true
		}
	}
	return t
}

// Len returns the number of distinct symbols.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the entries in table order. The slice must not be modified.
func (t *Table) Entries() []Entry {
	return t.entries
}

// Count returns the count of sym, zero when absent.
func (t *Table) Count(sym byte) uint32 {
	if !t.present[sym] {
		return 0
	}
	for _, e := range t.entries {
		if e.Symbol == sym {
			return e.Count
		}
	}
	return 0
}

// Total returns the sum of all counts.
func (t *Table) Total() (total uint64) {
	for _, e := range t.entries {
		total += uint64(e.Count)
	}
	return total
}
