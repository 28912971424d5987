// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package bitstream

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackerWordLayout(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	p := NewPacker(buf)
	require.NoError(t, p.WriteBit(true))
	require.NoError(t, p.Close())

	// one set bit, most significant in the word, word stored little-endian
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x80}, buf.Bytes())
	require.Equal(t, uint64(1), p.Bits())
	require.Equal(t, int64(1), p.Words())
}

func TestPackerFullWords(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	p := NewPacker(buf)
	require.NoError(t, p.WriteBits(0xdeadbeef, 32))
	require.Equal(t, 4, buf.Len(), "a full word is written before Close")
	require.NoError(t, p.WriteBits(0b101, 3))
	require.NoError(t, p.Close())

	require.Equal(t, []byte{
		0xef, 0xbe, 0xad, 0xde,
		0x00, 0x00, 0x00, 0xa0,
	}, buf.Bytes())
	require.Equal(t, uint64(35), p.Bits())
}

func TestPackerEmpty(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	p := NewPacker(buf)
	require.NoError(t, p.Close())
	require.Zero(t, buf.Len())
	require.Zero(t, p.Bits())
}

func TestWords(t *testing.T) {
	for bits, words := range map[uint64]int64{0: 0, 1: 1, 31: 1, 32: 1, 33: 2, 64: 2, 65: 3} {
		require.Equal(t, words, Words(bits), "bits=%d", bits)
	}
}

func TestRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for total := 0; total < 300; total += 7 {
		bits := make([]bool, total)
		for i := range bits {
			bits[i] = rnd.Intn(2) == 1
		}
		buf := bytes.NewBuffer(nil)
		p := NewPacker(buf)
		for _, b := range bits {
			require.NoError(t, p.WriteBit(b))
		}
		require.NoError(t, p.Close())
		require.Equal(t, Words(uint64(total))*WordSize, int64(buf.Len()))

		u := NewUnpacker(buf, uint64(total))
		for i, want := range bits {
			got, err := u.ReadBit()
			require.NoError(t, err)
			require.Equal(t, want, got, "bit %d of %d", i, total)
		}
		_, err := u.ReadBit()
		require.Equal(t, io.EOF, err, "padding bits must not be read")
		require.Zero(t, u.Remaining())
	}
}

func TestRoundTripCodes(t *testing.T) {
	type code struct {
		bits uint64
		n    uint8
	}
	rnd := rand.New(rand.NewSource(2))
	codes := make([]code, 500)
	total := uint64(0)
	for i := range codes {
		n := uint8(rnd.Intn(64) + 1)
		codes[i] = code{bits: rnd.Uint64() >> (64 - n), n: n}
		total += uint64(n)
	}
	buf := bytes.NewBuffer(nil)
	p := NewPacker(buf)
	for _, c := range codes {
		require.NoError(t, p.WriteBits(c.bits, c.n))
	}
	require.NoError(t, p.Close())
	require.Equal(t, total, p.Bits())

	u := NewUnpacker(buf, total)
	for _, c := range codes {
		var got uint64
		for i := uint8(0); i < c.n; i++ {
			bit, err := u.ReadBit()
			require.NoError(t, err)
			got <<= 1
			if bit {
				got |= 1
			}
		}
		require.Equal(t, c.bits, got)
	}
}

func TestUnpackerTruncated(t *testing.T) {
	// claims two words but holds one and a half
	u := NewUnpacker(bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xff, 0x00, 0x00}), 64)
	for i := 0; i < 32; i++ {
		bit, err := u.ReadBit()
		require.NoError(t, err)
		require.True(t, bit)
	}
	_, err := u.ReadBit()
	require.Equal(t, io.ErrUnexpectedEOF, err)
}

type failWriter struct{ after int }

var errFail = errors.New("write failed")

func (w *failWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errFail
	}
	w.after--
	return len(p), nil
}

func TestPackerWriteError(t *testing.T) {
	p := NewPacker(&failWriter{after: 1})
	require.NoError(t, p.WriteBits(0, 32))
	require.NoError(t, p.WriteBits(0, 24))
	err := p.WriteBits(0, 8)
	require.ErrorIs(t, err, errFail)
}

func BenchmarkPacker(b *testing.B) {
	b.SetBytes(4096)
	for i := 0; i < b.N; i++ {
		p := NewPacker(io.Discard)
		for j := 0; j < 4096; j++ {
			p.WriteBits(uint64(j)&0x1f, 5)
		}
		p.Close()
	}
}
