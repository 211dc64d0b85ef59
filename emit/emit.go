package emit

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/romgen/errors"
	"github.com/wippyai/romgen/layout"
)

// Default block identifiers.
const (
	DefaultOnBlock  = "minecraft:redstone_block"
	DefaultOffBlock = "minecraft:blue_ice"
)

// Writer is a block container that accepts placements and persists them.
type Writer interface {
	// Place registers block at pos.
	Place(pos layout.Coord, block string) error
	// Finalize persists all placed blocks to path in the given version.
	Finalize(path, version string) error
}

// Palette maps placement states to block identifiers.
type Palette struct {
	On  string
	Off string
}

// DefaultPalette returns the redstone block / blue ice palette.
func DefaultPalette() Palette {
	return Palette{On: DefaultOnBlock, Off: DefaultOffBlock}
}

// Block returns the identifier for s.
func (p Palette) Block(s layout.State) string {
	if s == layout.Set {
		return p.On
	}
	return p.Off
}

// Validate requires two distinct non-empty identifiers.
func (p Palette) Validate() error {
	switch {
	case p.On == "" || p.Off == "":
		return errors.InvalidArguments("block identifiers must not be empty")
	case p.On == p.Off:
		return errors.InvalidArguments(fmt.Sprintf("on and off blocks are both %q", p.On))
	}
	return nil
}

// Emit places every placement in w and then finalizes w once. Any writer
// failure is returned as an output_write_failure wrapping the writer's error;
// Finalize is not called after a failed Place.
func Emit(w Writer, placements []layout.Placement, palette Palette, path, version string) error {
	if err := palette.Validate(); err != nil {
		return err
	}

	for _, p := range placements {
		if err := w.Place(p.Pos, palette.Block(p.State)); err != nil {
			return errors.New(errors.PhaseEmit, errors.KindOutputWriteFailure).
				Path(path).
				Value(p.Pos).
				Detail("place bit %v at %v", p.Addr, p.Pos).
				Cause(err).
				Build()
		}
	}
	Logger().Debug("placements registered",
		zap.Int("count", len(placements)),
		zap.String("on", palette.On),
		zap.String("off", palette.Off))

	if err := w.Finalize(path, version); err != nil {
		return errors.OutputWriteFailure(path, err)
	}
	Logger().Debug("container finalized", zap.String("path", path), zap.String("version", version))
	return nil
}
