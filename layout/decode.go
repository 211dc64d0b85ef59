package layout

import (
	"fmt"

	"github.com/wippyai/romgen/errors"
)

// Lookup reports the state stored at a coordinate.
type Lookup func(pos Coord) (State, bool)

// StateMap indexes placements by coordinate.
type StateMap map[Coord]State

// Index builds a StateMap from placements.
func Index(placements []Placement) StateMap {
	m := make(StateMap, len(placements))
	for _, p := range placements {
		m[p.Pos] = p.State
	}
	return m
}

// Lookup implements the Lookup signature.
func (m StateMap) Lookup(pos Coord) (State, bool) {
	s, ok := m[pos]
	return s, ok
}

// Decode reassembles MaxSize bytes by reading every bit address through
// lookup. A missing coordinate is an error.
func (g Geometry) Decode(lookup Lookup) ([]byte, error) {
	out := make([]byte, g.MaxSize)
	for i := range out {
		var v byte
		for b := 0; b < BitsPerByte; b++ {
			pos := g.AddressOf(i, b)
			s, ok := lookup(pos)
			if !ok {
				return nil, errors.InvalidData(errors.PhaseVerify, "",
					fmt.Sprintf("no block at %v for bit %v", pos, BitAddress{i, b}))
			}
			if s == Set {
				v |= 1 << uint(b)
			}
		}
		out[i] = v
	}
	return out, nil
}
