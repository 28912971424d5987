// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huff

import (
	"bufio"
	"bytes"
	"io"

	"github.com/intel/fasthuff/compress/huff/internal/bitstream"
	"github.com/intel/fasthuff/compress/huff/internal/huffman"
)

// Decompress decodes the container in src and writes the original bytes to
// dst. The container is checked for consistency before anything is written;
// a container that fails the checks, or whose payload does not decode to
// exactly the counted symbols, yields an error matching ErrCorrupt.
func Decompress(dst io.Writer, src io.ReadSeeker) error {
	if dst == nil || src == nil {
		return ErrStreamNotOpen
	}
	h, err := ReadHeader(src)
	if err != nil {
		return err
	}
	tree, err := huffman.Build(h.Table)
	if err != nil {
		return corrupt(countSize, "%v", err)
	}
	codes, err := huffman.GenerateCodes(tree)
	if err != nil {
		return corrupt(countSize, "%v", err)
	}
	if words := bitstream.Words(uint64(h.PayloadBits)); words != h.PayloadWords() {
		return corrupt(h.PayloadOffset, "payload has %d words, %d bits need %d", h.PayloadWords(), h.PayloadBits, words)
	}
	if want := codes.EncodedBits(h.Table); want != uint64(h.PayloadBits) {
		return corrupt(h.Size-trailerSize, "trailer records %d bits, frequency table implies %d", h.PayloadBits, want)
	}

	payload := io.LimitReader(src, h.PayloadWords()*bitstream.WordSize)
	d := &decoder{
		tree: tree,
		in:   bitstream.NewUnpacker(bufio.NewReaderSize(payload, readBufferSize), uint64(h.PayloadBits)),
		out:  bufio.NewWriter(dst),
		base: h.PayloadOffset,
	}
	if err := d.run(); err != nil {
		return err
	}
	for _, e := range h.Table.Entries() {
		if d.counts[e.Symbol] != uint64(e.Count) {
			return corrupt(h.PayloadOffset, "decoded %d of symbol %#02x, table has %d", d.counts[e.Symbol], e.Symbol, e.Count)
		}
	}
	if err := d.out.Flush(); err != nil {
		return ioError("decompress", err)
	}
	return nil
}

// DecompressBytes returns the data stored in the container p.
func DecompressBytes(p []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := Decompress(&buf, bytes.NewReader(p)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decoder walks the tree one bit at a time, starting over at the root after
// every emitted symbol.
type decoder struct {
	tree   *huffman.Tree
	in     *bitstream.Unpacker
	out    *bufio.Writer
	base   int64
	read   uint64
	counts [huffman.Symbols]uint64
}

func (d *decoder) offset() int64 {
	return d.base + int64(d.read/8)
}

func (d *decoder) emit(sym byte) error {
	d.counts[sym]++
	if err := d.out.WriteByte(sym); err != nil {
		return ioError("decompress", err)
	}
	return nil
}

func (d *decoder) run() error {
	root := d.tree.Root()
	single := d.tree.IsLeaf(root)
	state := root
	for {
		bit, err := d.in.ReadBit()
		if err == io.EOF {
			break
		}
		if err != nil {
			return readError(d.offset(), "payload", err)
		}
		d.read++
		if single {
			if bit {
				return corrupt(d.offset(), "invalid code for single symbol table")
			}
			if err := d.emit(d.tree.Symbol(root)); err != nil {
				return err
			}
			continue
		}
		state = d.tree.Child(state, bit)
		if d.tree.IsLeaf(state) {
			if err := d.emit(d.tree.Symbol(state)); err != nil {
				return err
			}
			state = root
		}
	}
	if state != root {
		return corrupt(d.offset(), "payload ends inside a code")
	}
	return nil
}

// NewReader returns a reader that decodes the container read from r.
// The whole container is read and decoded on the first call to Read.
func NewReader(r io.Reader) io.ReadCloser {
	return &reader{r: r}
}

type reader struct {
	r       io.Reader
	out     *bytes.Reader
	err     error
	decoded bool
}

func (r *reader) Read(p []byte) (n int, err error) {
	if r.err != nil {
		return 0, r.err
	}
	if !r.decoded {
		r.decoded = true
		if r.err = r.decode(); r.err != nil {
			return 0, r.err
		}
	}
	return r.out.Read(p)
}

func (r *reader) decode() error {
	if r.r == nil {
		return ErrStreamNotOpen
	}
	var rs io.ReadSeeker
	if s, ok := r.r.(io.ReadSeeker); ok {
		rs = s
	} else {
		data, err := io.ReadAll(r.r)
		if err != nil {
			return ioError("decompress", err)
		}
		rs = bytes.NewReader(data)
	}
	var buf bytes.Buffer
	if err := Decompress(&buf, rs); err != nil {
		return err
	}
	r.out = bytes.NewReader(buf.Bytes())
	return nil
}

// Reset discards any state and makes r decode the container in under.
func (r *reader) Reset(under io.Reader) error {
	r.r = under
	r.out = nil
	r.err = nil
	r.decoded = false
	return nil
}

func (r *reader) Close() error {
	return nil
}

// Resetter resets a ReadCloser returned by NewReader to read a new container.
type Resetter interface {
	Reset(r io.Reader) error
}
