// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package bitstream packs Huffman codes into 32-bit little-endian words,
// most significant bit first, and reads them back.
package bitstream

import (
	"io"

	"github.com/icza/bitio"
)

// Packer writes bits into words. Full words are written as they fill up;
// Close writes the last, zero padded, word.
type Packer struct {
	ww   wordWriter
	bw   *bitio.Writer
	bits uint64
}

// NewPacker creates a Packer writing to w.
func NewPacker(w io.Writer) *Packer {
	p := &Packer{}
	p.ww.w = w
	p.bw = bitio.NewWriter(&p.ww)
	return p
}

// WriteBits writes the n low bits of bits, most significant first.
func (p *Packer) WriteBits(bits uint64, n uint8) error {
	if err := p.bw.WriteBits(bits, n); err != nil {
		return err
	}
	p.bits += uint64(n)
	return nil
}

// WriteBit writes a single bit.
func (p *Packer) WriteBit(bit bool) error {
	if err := p.bw.WriteBool(bit); err != nil {
		return err
	}
	p.bits++
	return nil
}

// Bits returns the number of data bits written so far, padding excluded.
func (p *Packer) Bits() uint64 {
	return p.bits
}

// Words returns the number of words written to the underlying writer.
func (p *Packer) Words() int64 {
	return p.ww.words
}

// Close pads the last word with zeros and writes it.
// It does not close the underlying writer.
func (p *Packer) Close() error {
	if err := p.bw.Close(); err != nil {
		return err
	}
	return p.ww.pad()
}

// Unpacker reads back exactly the number of bits a Packer wrote.
type Unpacker struct {
	wr        wordReader
	br        *bitio.Reader
	remaining uint64
}

// NewUnpacker creates an Unpacker reading total bits from r.
func NewUnpacker(r io.Reader, total uint64) *Unpacker {
	u := &Unpacker{remaining: total}
	u.wr.r = r
	u.br = bitio.NewReader(&u.wr)
	return u
}

// ReadBit returns the next bit. It returns io.EOF once all bits have been
// read, and io.ErrUnexpectedEOF if the words run out before that.
func (u *Unpacker) ReadBit() (bool, error) {
	if u.remaining == 0 {
		return false, io.EOF
	}
	bit, err := u.br.ReadBool()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return false, err
	}
	u.remaining--
	return bit, nil
}

// Remaining returns the number of bits left to read.
func (u *Unpacker) Remaining() uint64 {
	return u.remaining
}
