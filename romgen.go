package romgen

import (
	"bytes"
	"fmt"
	"io"

	"github.com/wippyai/romgen/emit"
	"github.com/wippyai/romgen/errors"
	"github.com/wippyai/romgen/layout"
	"github.com/wippyai/romgen/payload"
	"github.com/wippyai/romgen/schematic"
)

// Options configures one generator run.
type Options struct {
	Input   string
	Output  string
	Version string // schematic version tag; empty selects schematic.DefaultVersion
	Palette emit.Palette
	// Geometry defaults to layout.DefaultGeometry when MaxSize is zero.
	Geometry layout.Geometry
	// Verify reads the written schematic back and compares it with the payload.
	Verify bool
	// Writer defaults to a new schematic.Schematic.
	Writer emit.Writer
	// Progress receives user-facing status lines. Nil discards them.
	Progress io.Writer
}

func (o *Options) defaults() {
	if o.Geometry.MaxSize == 0 {
		o.Geometry = layout.DefaultGeometry()
	}
	if o.Palette == (emit.Palette{}) {
		o.Palette = emit.DefaultPalette()
	}
	if o.Version == "" {
		o.Version = schematic.DefaultVersion
	}
	if o.Progress == nil {
		o.Progress = io.Discard
	}
}

// Result is the outcome of Prepare and Write.
type Result struct {
	Geometry   layout.Geometry
	Payload    []byte
	Placements []layout.Placement
	// OutputPath is the file written by Write. Empty until Write succeeds.
	OutputPath string
}

// Generate loads, encodes and writes the ROM described by opts.
func Generate(opts Options) (*Result, error) {
	res, err := Prepare(opts)
	if err != nil {
		return nil, err
	}
	if err := Write(res, opts); err != nil {
		return res, err
	}
	return res, nil
}

// Prepare loads opts.Input and encodes it. Nothing is written.
func Prepare(opts Options) (*Result, error) {
	opts.defaults()

	enc, err := layout.NewEncoder(opts.Geometry)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(opts.Progress, "Generating ROM schematic...")
	data, err := payload.Load(opts.Input, opts.Geometry.MaxSize)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(opts.Progress, "Opened file %s\n", opts.Input)

	placements, err := enc.Encode(data)
	if err != nil {
		return nil, err
	}
	return &Result{
		Geometry:   opts.Geometry,
		Payload:    data,
		Placements: placements,
	}, nil
}

// Write emits res to opts.Output and optionally verifies the written file.
func Write(res *Result, opts Options) error {
	opts.defaults()

	w := opts.Writer
	path := opts.Output
	if w == nil {
		w = schematic.New()
	}
	if _, ok := w.(*schematic.Schematic); ok {
		path = schematic.OutputPath(opts.Output)
	}

	if err := emit.Emit(w, res.Placements, opts.Palette, path, opts.Version); err != nil {
		return err
	}
	res.OutputPath = path
	fmt.Fprintln(opts.Progress, "Schematic generated")

	if opts.Verify {
		if err := Verify(path, res.Geometry, opts.Palette, res.Payload); err != nil {
			return err
		}
		fmt.Fprintf(opts.Progress, "Verified %d bytes\n", len(res.Payload))
	}
	return nil
}

// Verify decodes the schematic at path through geom and checks that it
// holds want.
func Verify(path string, geom layout.Geometry, palette emit.Palette, want []byte) error {
	s, err := schematic.ReadFile(path)
	if err != nil {
		return err
	}

	lookup := func(pos layout.Coord) (layout.State, bool) {
		b, ok := s.Block(pos)
		switch {
		case !ok:
			return 0, false
		case b == palette.On:
			return layout.Set, true
		case b == palette.Off:
			return layout.Clear, true
		}
		return 0, false
	}
	got, err := geom.Decode(lookup)
	if err != nil {
		return err
	}

	if len(got) != len(want) {
		return errors.New(errors.PhaseVerify, errors.KindMismatch).
			Path(path).
			Detail("schematic holds %d bytes, want %d", len(got), len(want)).
			Build()
	}
	if !bytes.Equal(got, want) {
		i := firstDiff(got, want)
		return errors.New(errors.PhaseVerify, errors.KindMismatch).
			Path(path).
			Value(i).
			Detail("byte %d reads 0x%02x, want 0x%02x", i, got[i], want[i]).
			Build()
	}
	return nil
}

func firstDiff(a, b []byte) int {
	for i := range a {
		if a[i] != b[i] {
			return i
		}
	}
	return len(a)
}
