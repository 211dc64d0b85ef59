package emit

import (
	"fmt"

	"github.com/wippyai/romgen/layout"
)

// MemoryWriter is an in-memory Writer. It keeps placements in call order
// and records each Finalize call instead of touching storage.
type MemoryWriter struct {
	Blocks    map[layout.Coord]string
	Order     []layout.Coord
	Finalized []FinalizeCall
}

// FinalizeCall records the arguments of one Finalize.
type FinalizeCall struct {
	Path    string
	Version string
}

// NewMemoryWriter creates an empty MemoryWriter.
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{Blocks: make(map[layout.Coord]string)}
}

// Place records block at pos. Re-placing a coordinate with a different block
// is an error.
func (m *MemoryWriter) Place(pos layout.Coord, block string) error {
	if prev, ok := m.Blocks[pos]; ok {
		if prev != block {
			return fmt.Errorf("coordinate %v already holds %s", pos, prev)
		}
		return nil
	}
	m.Blocks[pos] = block
	m.Order = append(m.Order, pos)
	return nil
}

// Finalize records the call.
func (m *MemoryWriter) Finalize(path, version string) error {
	m.Finalized = append(m.Finalized, FinalizeCall{Path: path, Version: version})
	return nil
}

// States converts recorded blocks back to states using palette. Blocks that
// are neither palette entry are skipped.
func (m *MemoryWriter) States(palette Palette) layout.StateMap {
	out := make(layout.StateMap, len(m.Blocks))
	for pos, b := range m.Blocks {
		switch b {
		case palette.On:
			out[pos] = layout.Set
		case palette.Off:
			out[pos] = layout.Clear
		}
	}
	return out
}
