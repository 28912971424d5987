//go:build go1.18
// +build go1.18

package huff

import (
	"bytes"
	"testing"
)

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte("aaaabbbccd"))
	f.Add([]byte{0})
	f.Add(bytes.Repeat([]byte{0xff}, 33))
	f.Fuzz(func(t *testing.T, source []byte) {
		compressed, err := CompressBytes(source)
		if len(source) == 0 {
			if err == nil {
				t.Fatal("expected error for empty input")
			}
			return
		}
		if err != nil {
			t.Fatal(err)
		}
		data, err := DecompressBytes(compressed)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(data, source) {
			t.Fatal("round trip mismatch")
		}
	})
}

// FuzzDecompress checks arbitrary containers never panic and that whatever
// decodes successfully re-encodes to the same bytes.
func FuzzDecompress(f *testing.F) {
	for _, s := range []string{"aaaabbbccd", "x", "hello, world"} {
		c, _ := CompressBytes([]byte(s))
		f.Add(c)
	}
	f.Fuzz(func(t *testing.T, container []byte) {
		data, err := DecompressBytes(container)
		if err != nil {
			return
		}
		again, err := CompressBytes(data)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := DecompressBytes(again); err != nil {
			t.Fatal(err)
		}
	})
}
