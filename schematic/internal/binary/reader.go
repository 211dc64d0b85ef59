package binary

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrOverflow is returned when a varint exceeds 32 bits.
var ErrOverflow = errors.New("varint: overflow")

// Reader decodes Sponge BlockData varints with position tracking.
type Reader struct {
	r   *bytes.Reader
	pos int
}

// NewReader creates a Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{r: bytes.NewReader(data)}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return r.r.Len()
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, err
	}
	r.pos++
	return b, nil
}

// ReadU32 reads an unsigned LEB128 encoded uint32.
func (r *Reader) ReadU32() (uint32, error) {
	start := r.pos
	var result uint32
	var shift uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && r.pos > start {
				return 0, io.ErrUnexpectedEOF
			}
			return 0, err
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 35 {
			return 0, fmt.Errorf("at offset %d: %w", start, ErrOverflow)
		}
	}
}
