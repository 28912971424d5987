// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huff

import (
	"io"
	"math"

	"github.com/intel/fasthuff/compress/huff/internal/huffman"
)

// FrequencyTable is the per-symbol occurrence count stored in a container
// header.
type FrequencyTable = huffman.Table

// Entry is one FrequencyTable record.
type Entry = huffman.Entry

const readBufferSize = 32 * 1024

// histogram counts byte occurrences.
type histogram [huffman.Symbols]uint64

func (h *histogram) add(input []byte) {
	for _, c := range input {
		h[c]++
	}
}

func (h *histogram) table() (*FrequencyTable, error) {
	var counts [huffman.Symbols]uint32
	for sym, c := range h {
		if c > math.MaxUint32 {
			return nil, ErrTooLarge
		}
		counts[sym] = uint32(c)
	}
	return huffman.TableFromCounts(&counts), nil
}

// CountFrequencies reads r to the end and counts every byte. It returns the
// table, in ascending symbol order, and the number of bytes read.
func CountFrequencies(r io.Reader) (*FrequencyTable, int64, error) {
	if r == nil {
		return nil, 0, ErrStreamNotOpen
	}
	var (
		hist histogram
		n    int64
	)
	buf := make([]byte, readBufferSize)
	for {
		num, err := r.Read(buf)
		hist.add(buf[:num])
		n += int64(num)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, n, ioError("count frequencies", err)
		}
	}
	t, err := hist.table()
	if err != nil {
		return nil, n, err
	}
	return t, n, nil
}

// NewFrequencyTable creates a table from entries in the given order.
func NewFrequencyTable(entries []Entry) (*FrequencyTable, error) {
	return huffman.NewTable(entries)
}
