package layout

import (
	"fmt"

	"github.com/wippyai/romgen/errors"
)

// State is the binary marker placed at a coordinate.
type State uint8

const (
	Clear State = iota
	Set
)

func (s State) String() string {
	if s == Set {
		return "SET"
	}
	return "CLEAR"
}

// StateOf returns Set when bit b of v is 1.
func StateOf(v byte, b int) State {
	if v>>uint(b)&1 == 1 {
		return Set
	}
	return Clear
}

// Placement is one block to be written.
type Placement struct {
	Pos   Coord
	State State
	Addr  BitAddress
}

// Encoder converts normalized payloads to placements.
type Encoder struct {
	geom Geometry
}

// NewEncoder validates g and returns an Encoder for it.
func NewEncoder(g Geometry) (*Encoder, error) {
	if err := Validate(g); err != nil {
		return nil, err
	}
	return &Encoder{geom: g}, nil
}

// Geometry returns the encoder's layout parameters.
func (e *Encoder) Geometry() Geometry {
	return e.geom
}

// Encode returns one placement per bit, byte-major then bit-minor.
// The payload must be exactly MaxSize bytes.
func (e *Encoder) Encode(payload []byte) ([]Placement, error) {
	if len(payload) != e.geom.MaxSize {
		return nil, errors.InvalidData(errors.PhaseEncode, "",
			fmt.Sprintf("payload is %d bytes, encoder requires exactly %d", len(payload), e.geom.MaxSize))
	}

	out := make([]Placement, 0, e.geom.Bits())
	for i, v := range payload {
		for b := 0; b < BitsPerByte; b++ {
			out = append(out, Placement{
				Pos:   e.geom.AddressOf(i, b),
				State: StateOf(v, b),
				Addr:  BitAddress{Byte: i, Bit: b},
			})
		}
	}
	return out, nil
}
