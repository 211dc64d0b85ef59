package layout

import "fmt"

// BitAddress identifies one bit of the payload. Bit is LSB-first.
type BitAddress struct {
	Byte int
	Bit  int
}

func (a BitAddress) String() string {
	return fmt.Sprintf("%d.%d", a.Byte, a.Bit)
}

// Locate returns the plane, length slot and pair offset of a byte.
func (g Geometry) Locate(byteIndex int) (plane, slot, pair int) {
	plane = byteIndex / g.PlaneWrap
	slot = (byteIndex % g.PlaneWrap) >> 1
	pair = byteIndex & 1
	return plane, slot, pair
}

// RowCoord returns the distance along the row axis for a bit.
func (g Geometry) RowCoord(byteIndex, bitIndex int) int {
	pair := byteIndex & 1
	return (bitIndex&0b1110)*g.RowMajorStep +
		(bitIndex&0b0001)*g.RowMinorStep +
		pair*g.RowMajorStep
}

// LengthCoord returns the distance along the length axis for a byte.
func (g Geometry) LengthCoord(byteIndex int) int {
	_, slot, _ := g.Locate(byteIndex)
	return slot * g.LengthStep
}

// VerticalCoord returns the distance along the vertical axis for a byte.
func (g Geometry) VerticalCoord(byteIndex int) int {
	plane, _, _ := g.Locate(byteIndex)
	return plane * g.VerticalStep
}

// AddressOf maps a bit address to its block coordinate.
func (g Geometry) AddressOf(byteIndex, bitIndex int) Coord {
	row := g.RowAxis.Scale(g.RowCoord(byteIndex, bitIndex))
	up := g.VerticalAxis.Scale(g.VerticalCoord(byteIndex))
	length := g.LengthAxis.Scale(g.LengthCoord(byteIndex))
	return g.Origin.Add(row.Add(up).Add(length))
}

// Bounds returns the inclusive corners of the region covered by all addresses.
func (g Geometry) Bounds() (lo, hi Coord) {
	first := true
	for i := 0; i < g.MaxSize; i++ {
		for b := 0; b < BitsPerByte; b++ {
			p := g.AddressOf(i, b)
			if first {
				lo, hi = p, p
				first = false
				continue
			}
			lo = Coord{min(lo.X, p.X), min(lo.Y, p.Y), min(lo.Z, p.Z)}
			hi = Coord{max(hi.X, p.X), max(hi.Y, p.Y), max(hi.Z, p.Z)}
		}
	}
	return lo, hi
}
