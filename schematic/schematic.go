package schematic

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/wippyai/romgen/errors"
	"github.com/wippyai/romgen/layout"
	"github.com/wippyai/romgen/schematic/internal/binary"
)

const (
	// Air fills every cell of the region without a placed block.
	Air = "minecraft:air"
	// Ext is appended to destinations that have no extension.
	Ext = ".schem"

	formatVersion = 2
	rootName      = "Schematic"
)

type spongeSchematic struct {
	Version     int32            `nbt:"Version"`
	DataVersion int32            `nbt:"DataVersion"`
	Width       int16            `nbt:"Width"`
	Height      int16            `nbt:"Height"`
	Length      int16            `nbt:"Length"`
	Offset      []int32          `nbt:"Offset"`
	PaletteMax  int32            `nbt:"PaletteMax"`
	Palette     map[string]int32 `nbt:"Palette"`
	BlockData   []byte           `nbt:"BlockData"`
	Metadata    metadata         `nbt:"Metadata"`
}

type metadata struct {
	WEOffsetX int32 `nbt:"WEOffsetX"`
	WEOffsetY int32 `nbt:"WEOffsetY"`
	WEOffsetZ int32 `nbt:"WEOffsetZ"`
}

// Schematic is a sparse set of blocks keyed by absolute coordinate.
type Schematic struct {
	blocks      map[layout.Coord]string
	names       []string // distinct non-air blocks in first-placed order
	dataVersion int32
}

// New creates an empty Schematic.
func New() *Schematic {
	return &Schematic{blocks: make(map[layout.Coord]string)}
}

// Place sets block at pos. Placing a different block at an occupied
// coordinate is an error; placing the same block again is a no-op.
func (s *Schematic) Place(pos layout.Coord, block string) error {
	if block == "" {
		return fmt.Errorf("empty block identifier at %v", pos)
	}
	if prev, ok := s.blocks[pos]; ok {
		if prev == block {
			return nil
		}
		return fmt.Errorf("conflicting blocks at %v: %s and %s", pos, prev, block)
	}
	s.blocks[pos] = block
	if block != Air && !containsName(s.names, block) {
		s.names = append(s.names, block)
	}
	return nil
}

func containsName(names []string, n string) bool {
	for _, v := range names {
		if v == n {
			return true
		}
	}
	return false
}

// Block returns the block at pos. Cells inside a decoded region report air.
func (s *Schematic) Block(pos layout.Coord) (string, bool) {
	b, ok := s.blocks[pos]
	return b, ok
}

// Len returns the number of stored blocks, including decoded air.
func (s *Schematic) Len() int {
	return len(s.blocks)
}

// DataVersion returns the data version read by Decode, or 0 for a
// schematic that was built in memory.
func (s *Schematic) DataVersion() int32 {
	return s.dataVersion
}

// Bounds returns the inclusive corners of the placed blocks.
func (s *Schematic) Bounds() (lo, hi layout.Coord, ok bool) {
	for p := range s.blocks {
		if !ok {
			lo, hi, ok = p, p, true
			continue
		}
		lo = layout.Coord{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
		hi = layout.Coord{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
	}
	return lo, hi, ok
}

// OutputPath returns the file Save writes for a destination.
func OutputPath(dest string) string {
	if filepath.Ext(dest) == "" {
		return dest + Ext
	}
	return dest
}

// Finalize implements emit.Writer.
func (s *Schematic) Finalize(path, version string) error {
	_, err := s.Save(path, version)
	return err
}

// Save writes the schematic to OutputPath(dest) and returns that path. The
// file is written to a temporary sibling and renamed into place, so a failed
// save leaves no file at the destination.
func (s *Schematic) Save(dest, version string) (string, error) {
	dv, err := DataVersion(version)
	if err != nil {
		return "", err
	}
	path := OutputPath(dest)

	tmp, err := os.CreateTemp(filepath.Dir(path), ".romgen-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := s.Encode(tmp, dv); err != nil {
		return "", err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return "", fmt.Errorf("chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		tmp = nil
		return "", fmt.Errorf("rename: %w", err)
	}
	tmp = nil

	Logger().Debug("schematic saved",
		zap.String("path", path),
		zap.Int32("data_version", dv),
		zap.Int("blocks", len(s.blocks)))
	return path, nil
}

// Encode writes the gzip-compressed NBT form of s to w.
func (s *Schematic) Encode(w io.Writer, dataVersion int32) error {
	lo, hi, ok := s.Bounds()
	if !ok {
		return errors.InvalidData(errors.PhaseEmit, "", "schematic has no blocks")
	}
	width, height, length := hi.X-lo.X+1, hi.Y-lo.Y+1, hi.Z-lo.Z+1
	if width > math.MaxInt16 || height > math.MaxInt16 || length > math.MaxInt16 {
		return errors.InvalidData(errors.PhaseEmit, "",
			fmt.Sprintf("region %dx%dx%d exceeds the schematic size limit", width, height, length))
	}

	palette := make(map[string]int32, len(s.names)+1)
	palette[Air] = 0
	for i, n := range s.names {
		palette[n] = int32(i + 1)
	}

	data := binary.NewWriter(width * height * length)
	for y := 0; y < height; y++ {
		for z := 0; z < length; z++ {
			for x := 0; x < width; x++ {
				b, ok := s.blocks[lo.Add(layout.Coord{X: x, Y: y, Z: z})]
				if !ok {
					data.WriteU32(0)
					continue
				}
				data.WriteU32(uint32(palette[b]))
			}
		}
	}

	doc := spongeSchematic{
		Version:     formatVersion,
		DataVersion: dataVersion,
		Width:       int16(width),
		Height:      int16(height),
		Length:      int16(length),
		Offset:      []int32{int32(lo.X), int32(lo.Y), int32(lo.Z)},
		PaletteMax:  int32(len(palette)),
		Palette:     palette,
		BlockData:   data.Bytes(),
		Metadata: metadata{
			WEOffsetX: int32(lo.X),
			WEOffsetY: int32(lo.Y),
			WEOffsetZ: int32(lo.Z),
		},
	}

	gz := gzip.NewWriter(w)
	if err := nbt.NewEncoder(gz).Encode(doc, rootName); err != nil {
		gz.Close()
		return fmt.Errorf("encode nbt: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("gzip: %w", err)
	}
	return nil
}
