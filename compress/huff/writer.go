// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package huff implements a static Huffman codec with a self-describing
// container: the frequency table of the input, the codes of every input byte
// packed into 32-bit words, and the exact number of code bits.
package huff

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/intel/fasthuff/compress/huff/internal/bitstream"
	"github.com/intel/fasthuff/compress/huff/internal/huffman"
)

// Stats describes a finished compression.
type Stats struct {
	InputBytes  int64
	OutputBytes int64
	Symbols     int
	PayloadBits uint32
}

// Ratio returns the output size relative to the input size.
func (s Stats) Ratio() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.OutputBytes) / float64(s.InputBytes)
}

// countingWriter tracks how many bytes reached w.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// Compress reads src twice, once to count symbol frequencies and once to
// encode it, and writes the container to dst. src is left at the end of the
// data. Nothing is written when src is empty or too large for the format.
func Compress(dst io.Writer, src io.ReadSeeker) (Stats, error) {
	var st Stats
	if dst == nil || src == nil {
		return st, ErrStreamNotOpen
	}
	start, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return st, ioError("compress", err)
	}
	t, n, err := CountFrequencies(src)
	if err != nil {
		return st, err
	}
	if _, err := src.Seek(start, io.SeekStart); err != nil {
		return st, ioError("compress", err)
	}
	st.InputBytes = n

	enc, err := newEncoder(t)
	if err != nil {
		return st, err
	}
	cw := &countingWriter{w: dst}
	if err := enc.encode(cw, bufio.NewReaderSize(src, readBufferSize)); err != nil {
		return st, err
	}
	st.OutputBytes = cw.n
	st.Symbols = t.Len()
	st.PayloadBits = enc.bits
	return st, nil
}

// CompressBytes returns the container for data.
func CompressBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Compress(&buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type encoder struct {
	table *FrequencyTable
	codes *huffman.CodeTable
	bits  uint32
}

// newEncoder prepares the codes for t and checks the payload fits in the
// format.
func newEncoder(t *FrequencyTable) (*encoder, error) {
	tree, err := huffman.Build(t)
	if err != nil {
		if errors.Is(err, huffman.ErrEmptyTable) {
			return nil, fmt.Errorf("%w: %v", ErrEmptyInput, err)
		}
		return nil, err
	}
	codes, err := huffman.GenerateCodes(tree)
	if err != nil {
		return nil, err
	}
	bits := codes.EncodedBits(t)
	if bits > math.MaxUint32 {
		return nil, ErrTooLarge
	}
	return &encoder{table: t, codes: codes, bits: uint32(bits)}, nil
}

func (e *encoder) encode(dst io.Writer, src io.ByteReader) error {
	bw := bufio.NewWriter(dst)
	if err := writeHeader(bw, e.table); err != nil {
		return ioError("write header", err)
	}
	p := bitstream.NewPacker(bw)
	for {
		c, err := src.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ioError("compress", err)
		}
		code := e.codes[c]
		if code.Len == 0 {
			return fmt.Errorf("%w: symbol %#02x was not counted", ErrSourceChanged, c)
		}
		if err := p.WriteBits(code.Bits, code.Len); err != nil {
			return ioError("write payload", err)
		}
	}
	if err := p.Close(); err != nil {
		return ioError("write payload", err)
	}
	if p.Bits() != uint64(e.bits) {
		return fmt.Errorf("%w: encoded %d bits, expected %d", ErrSourceChanged, p.Bits(), e.bits)
	}
	if err := writeTrailer(bw, e.bits); err != nil {
		return ioError("write trailer", err)
	}
	if err := bw.Flush(); err != nil {
		return ioError("compress", err)
	}
	return nil
}

// Writer buffers everything written to it and writes the container when
// closed. The whole input is held in memory.
type Writer struct {
	err   error
	w     io.Writer
	buf   bytes.Buffer
	stats Stats
}

// NewWriter creates a Writer that writes the container to w on Close.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write buffers data.
func (w *Writer) Write(data []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	if w.w == nil {
		w.err = ErrStreamNotOpen
		return 0, w.err
	}
	return w.buf.Write(data)
}

// Close encodes the buffered data and writes the container.
// It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	w.stats, w.err = Compress(w.w, bytes.NewReader(w.buf.Bytes()))
	if w.err == nil {
		w.err = errWriterClosed
		return nil
	}
	return w.err
}

var errWriterClosed = errors.New("huff: writer closed")

// Stats returns the statistics of the last successful Close.
func (w *Writer) Stats() Stats {
	return w.stats
}

// Reset discards buffered data and errors and makes w write to under.
func (w *Writer) Reset(under io.Writer) {
	w.w = under
	w.err = nil
	w.buf.Reset()
	w.stats = Stats{}
}
