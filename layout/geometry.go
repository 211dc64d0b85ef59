package layout

import (
	"fmt"

	"github.com/wippyai/romgen/errors"
)

const (
	// MaxSize is the ROM capacity in bytes.
	MaxSize = 256
	// PlaneWrap is the number of bytes stored in one vertical plane.
	PlaneWrap = 32
	// BitsPerByte is the number of placements produced per payload byte.
	BitsPerByte = 8
)

// Coord is an integer block position.
type Coord struct {
	X, Y, Z int
}

// Add returns c + o.
func (c Coord) Add(o Coord) Coord {
	return Coord{c.X + o.X, c.Y + o.Y, c.Z + o.Z}
}

// Scale returns c * k.
func (c Coord) Scale(k int) Coord {
	return Coord{c.X * k, c.Y * k, c.Z * k}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z)
}

// Common axis directions.
var (
	AxisX    = Coord{1, 0, 0}
	AxisY    = Coord{0, 1, 0}
	AxisZ    = Coord{0, 0, 1}
	AxisDown = Coord{0, -1, 0}
)

// Geometry holds the fixed parameters of a ROM layout. It is a value type;
// an Encoder keeps its own copy.
type Geometry struct {
	Origin       Coord
	RowAxis      Coord // bit columns
	LengthAxis   Coord // byte-pair slots
	VerticalAxis Coord // plane stacking
	RowMajorStep int
	RowMinorStep int
	LengthStep   int
	VerticalStep int
	PlaneWrap    int
	MaxSize      int
}

// DefaultGeometry returns the layout the ROM reader circuit is built against.
func DefaultGeometry() Geometry {
	return Geometry{
		Origin:       Coord{},
		RowAxis:      AxisX,
		LengthAxis:   AxisZ,
		VerticalAxis: AxisDown,
		RowMajorStep: 4,
		RowMinorStep: 2,
		LengthStep:   6,
		VerticalStep: 2,
		PlaneWrap:    PlaneWrap,
		MaxSize:      MaxSize,
	}
}

// Planes returns the number of vertical planes needed for MaxSize bytes.
func (g Geometry) Planes() int {
	return (g.MaxSize + g.PlaneWrap - 1) / g.PlaneWrap
}

// Bits returns the total number of placements for a full payload.
func (g Geometry) Bits() int {
	return g.MaxSize * BitsPerByte
}

// Validate checks the geometry parameters and verifies that no two bit
// addresses share a coordinate.
func Validate(g Geometry) error {
	switch {
	case g.MaxSize <= 0:
		return errors.InvalidGeometry("max size %d must be positive", g.MaxSize)
	case g.PlaneWrap <= 0:
		return errors.InvalidGeometry("plane wrap %d must be positive", g.PlaneWrap)
	case g.PlaneWrap%2 != 0:
		return errors.InvalidGeometry("plane wrap %d must be even", g.PlaneWrap)
	case g.RowMajorStep <= 0, g.RowMinorStep <= 0, g.LengthStep <= 0, g.VerticalStep <= 0:
		return errors.InvalidGeometry("step sizes must be positive (row %d/%d, length %d, vertical %d)",
			g.RowMajorStep, g.RowMinorStep, g.LengthStep, g.VerticalStep)
	}

	axes := []struct {
		name string
		dir  Coord
	}{
		{"row", g.RowAxis},
		{"length", g.LengthAxis},
		{"vertical", g.VerticalAxis},
	}
	var used [3]bool
	for _, a := range axes {
		dim, ok := unitDim(a.dir)
		if !ok {
			return errors.InvalidGeometry("%s axis %v is not a unit vector", a.name, a.dir)
		}
		if used[dim] {
			return errors.InvalidGeometry("%s axis %v is parallel to another axis", a.name, a.dir)
		}
		used[dim] = true
	}

	return checkCollisions(g)
}

// unitDim returns the index of the single non-zero component of a unit vector.
func unitDim(c Coord) (int, bool) {
	comps := [3]int{c.X, c.Y, c.Z}
	dim := -1
	for i, v := range comps {
		switch v {
		case 0:
		case 1, -1:
			if dim >= 0 {
				return 0, false
			}
			dim = i
		default:
			return 0, false
		}
	}
	return dim, dim >= 0
}

func checkCollisions(g Geometry) error {
	seen := make(map[Coord]BitAddress, g.Bits())
	for i := 0; i < g.MaxSize; i++ {
		for b := 0; b < BitsPerByte; b++ {
			pos := g.AddressOf(i, b)
			if prev, ok := seen[pos]; ok {
				return errors.New(errors.PhaseLayout, errors.KindCollision).
					Value(pos).
					Detail("bits %v and %v both map to %v", prev, BitAddress{i, b}, pos).
					Build()
			}
			seen[pos] = BitAddress{i, b}
		}
	}
	return nil
}
