// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package bitstream

import (
	"encoding/binary"
	"io"
)

// WordSize is the size in bytes of a payload word.
const WordSize = 4

// Words returns the number of words needed to hold bits.
func Words(bits uint64) int64 {
	return int64((bits + WordSize*8 - 1) / (WordSize * 8))
}

// wordWriter receives bytes in bit order (most significant first) and writes
// every group of four as a little-endian uint32.
type wordWriter struct {
	w     io.Writer
	buf   [WordSize]byte
	n     int
	words int64
	err   error
}

func (ww *wordWriter) WriteByte(c byte) error {
	if ww.err != nil {
		return ww.err
	}
	ww.buf[ww.n] = c
	ww.n++
	if ww.n == WordSize {
		ww.flush()
	}
	return ww.err
}

func (ww *wordWriter) Write(p []byte) (n int, err error) {
	for _, c := range p {
		if err = ww.WriteByte(c); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// pad zero fills and writes a partially filled word.
func (ww *wordWriter) pad() error {
	if ww.err != nil || ww.n == 0 {
		return ww.err
	}
	for i := ww.n; i < WordSize; i++ {
		ww.buf[i] = 0
	}
	ww.flush()
	return ww.err
}

func (ww *wordWriter) flush() {
	var out [WordSize]byte
	binary.LittleEndian.PutUint32(out[:], binary.BigEndian.Uint32(ww.buf[:]))
	n, err := ww.w.Write(out[:])
	if err == nil && n != WordSize {
		err = io.ErrShortWrite
	}
	ww.err = err
	ww.n = 0
	ww.words++
}

// wordReader is the inverse of wordWriter: it reads little-endian uint32
// words and hands out their bytes most significant first.
type wordReader struct {
	r   io.Reader
	buf [WordSize]byte
	pos int
	err error
}

func (wr *wordReader) ReadByte() (byte, error) {
	if wr.pos == 0 {
		if wr.err != nil {
			return 0, wr.err
		}
		var in [WordSize]byte
		if _, err := io.ReadFull(wr.r, in[:]); err != nil {
			// a trailing fragment of a word is as bad as a missing word
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			wr.err = err
			return 0, err
		}
		binary.BigEndian.PutUint32(wr.buf[:], binary.LittleEndian.Uint32(in[:]))
	}
	c := wr.buf[wr.pos]
	wr.pos = (wr.pos + 1) % WordSize
	return c, nil
}

func (wr *wordReader) Read(p []byte) (n int, err error) {
	for n < len(p) {
		c, err := wr.ReadByte()
		if err != nil {
			return n, err
		}
		p[n] = c
		n++
	}
	return n, nil
}
