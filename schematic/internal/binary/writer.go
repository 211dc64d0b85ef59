package binary

import (
	"bytes"
)

// Writer accumulates Sponge BlockData: unsigned LEB128 varints, one per
// block, with no length prefix.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a new Writer with room for n one-byte values.
func NewWriter(n int) *Writer {
	buf := &bytes.Buffer{}
	buf.Grow(n)
	return &Writer{buf: buf}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// WriteU32 writes an unsigned LEB128 encoded uint32.
func (w *Writer) WriteU32(v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf.WriteByte(b)
		if v == 0 {
			break
		}
	}
}
