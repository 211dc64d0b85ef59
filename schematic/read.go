package schematic

import (
	"fmt"
	"io"
	"os"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"

	"github.com/wippyai/romgen/errors"
	"github.com/wippyai/romgen/layout"
	"github.com/wippyai/romgen/schematic/internal/binary"
)

// ReadFile decodes the schematic stored at path.
func ReadFile(path string) (*Schematic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseVerify, errors.KindInputUnreadable, err, path)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a gzip-compressed Sponge v2 schematic. Every cell of the
// region is materialized, air included, at its absolute coordinate.
func Decode(r io.Reader) (*Schematic, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, invalid("gzip: %v", err)
	}
	defer gz.Close()

	var doc spongeSchematic
	name, err := nbt.NewDecoder(gz).Decode(&doc)
	if err != nil {
		return nil, invalid("decode nbt: %v", err)
	}
	if name != rootName {
		return nil, invalid("root tag %q, want %q", name, rootName)
	}
	if doc.Version != formatVersion {
		return nil, invalid("format version %d, want %d", doc.Version, formatVersion)
	}
	if len(doc.Offset) != 3 {
		return nil, invalid("offset has %d components", len(doc.Offset))
	}

	names := make(map[int32]string, len(doc.Palette))
	for n, id := range doc.Palette {
		names[id] = n
	}

	origin := layout.Coord{X: int(doc.Offset[0]), Y: int(doc.Offset[1]), Z: int(doc.Offset[2])}
	width, height, length := int(doc.Width), int(doc.Height), int(doc.Length)

	s := New()
	s.dataVersion = doc.DataVersion
	data := binary.NewReader(doc.BlockData)
	for y := 0; y < height; y++ {
		for z := 0; z < length; z++ {
			for x := 0; x < width; x++ {
				id, err := data.ReadU32()
				if err != nil {
					return nil, invalid("block data at offset %d: %v", data.Position(), err)
				}
				n, ok := names[int32(id)]
				if !ok {
					return nil, invalid("palette index %d not defined", id)
				}
				if err := s.Place(origin.Add(layout.Coord{X: x, Y: y, Z: z}), n); err != nil {
					return nil, invalid("%v", err)
				}
			}
		}
	}
	if data.Remaining() != 0 {
		return nil, invalid("%d trailing bytes in block data", data.Remaining())
	}
	return s, nil
}

func invalid(format string, args ...any) error {
	return errors.InvalidData(errors.PhaseVerify, "", fmt.Sprintf(format, args...))
}
