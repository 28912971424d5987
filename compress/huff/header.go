// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/intel/fasthuff/compress/huff/internal/bitstream"
	"github.com/intel/fasthuff/compress/huff/internal/huffman"
)

// Container layout, all integers little-endian:
//
//	count   uint32            number of distinct symbols N
//	entries N * {u8, u32}     symbol and its count, in table order
//	payload uint32 words      codes packed most significant bit first,
//	                          last word zero padded
//	bits    uint32            exact number of payload bits
const (
	countSize   = 4
	entrySize   = 5
	trailerSize = 4
)

// Header describes a container.
type Header struct {
	Table         *FrequencyTable
	PayloadOffset int64  // first byte of the payload
	PayloadBits   uint32 // valid payload bits, padding excluded
	Size          int64  // total container size
}

// PayloadWords returns the number of words between the table and the trailer.
func (h *Header) PayloadWords() int64 {
	return (h.Size - h.PayloadOffset - trailerSize) / bitstream.WordSize
}

// Codes rebuilds the code table the container was written with.
func (h *Header) Codes() (*huffman.CodeTable, error) {
	tree, err := huffman.Build(h.Table)
	if err != nil {
		return nil, err
	}
	return huffman.GenerateCodes(tree)
}

func headerSize(symbols int) int64 {
	return countSize + int64(symbols)*entrySize
}

// CompressedSize returns the exact size of the container that holds data
// with frequencies t.
func CompressedSize(t *FrequencyTable) (int64, error) {
	if t.Len() == 0 {
		return 0, ErrEmptyInput
	}
	bits := huffman.WeightedLength(t)
	if bits > math.MaxUint32 {
		return 0, ErrTooLarge
	}
	return headerSize(t.Len()) + bitstream.Words(bits)*bitstream.WordSize + trailerSize, nil
}

func writeHeader(w io.Writer, t *FrequencyTable) error {
	buf := make([]byte, 0, headerSize(t.Len()))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(t.Len()))
	for _, e := range t.Entries() {
		buf = append(buf, e.Symbol)
		buf = binary.LittleEndian.AppendUint32(buf, e.Count)
	}
	_, err := w.Write(buf)
	return err
}

func writeTrailer(w io.Writer, bits uint32) error {
	var buf [trailerSize]byte
	binary.LittleEndian.PutUint32(buf[:], bits)
	_, err := w.Write(buf[:])
	return err
}

// ReadHeader reads the frequency table and the trailer of the container in
// r and leaves r positioned at the start of the payload.
func ReadHeader(r io.ReadSeeker) (*Header, error) {
	if r == nil {
		return nil, ErrStreamNotOpen
	}
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, ioError("read header", err)
	}

	var hdr [countSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, readError(0, "symbol count", err)
	}
	n := binary.LittleEndian.Uint32(hdr[:])
	if n == 0 || n > huffman.Symbols {
		return nil, corrupt(0, "invalid symbol count %d", n)
	}

	raw := make([]byte, int(n)*entrySize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, readError(countSize, "frequency table", err)
	}
	entries := make([]Entry, n)
	for i := range entries {
		entries[i].Symbol = raw[i*entrySize]
		entries[i].Count = binary.LittleEndian.Uint32(raw[i*entrySize+1:])
	}
	t, err := huffman.NewTable(entries)
	if err != nil {
		return nil, corrupt(countSize, "%v", err)
	}

	h := &Header{Table: t, PayloadOffset: headerSize(int(n))}
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, ioError("read header", err)
	}
	h.Size = end - start
	payload := h.Size - h.PayloadOffset - trailerSize
	if payload < 0 {
		return nil, corrupt(h.Size, "container of %d bytes too short for %d symbols", h.Size, n)
	}
	if payload%bitstream.WordSize != 0 {
		return nil, corrupt(h.PayloadOffset, "payload of %d bytes is not a whole number of words", payload)
	}

	if _, err := r.Seek(start+h.Size-trailerSize, io.SeekStart); err != nil {
		return nil, ioError("read trailer", err)
	}
	var tr [trailerSize]byte
	if _, err := io.ReadFull(r, tr[:]); err != nil {
		return nil, readError(h.Size-trailerSize, "trailer", err)
	}
	h.PayloadBits = binary.LittleEndian.Uint32(tr[:])

	if _, err := r.Seek(start+h.PayloadOffset, io.SeekStart); err != nil {
		return nil, ioError("read header", err)
	}
	return h, nil
}

func readError(offset int64, what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return corrupt(offset, "truncated %s", what)
	}
	return ioError(fmt.Sprintf("read %s", what), err)
}
