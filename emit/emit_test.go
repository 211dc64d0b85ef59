package emit

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/wippyai/romgen/errors"
	"github.com/wippyai/romgen/layout"
)

type failingWriter struct {
	failAt      int
	failFinal   bool
	places      int
	finalizeHit bool
}

var errDisk = stderrors.New("disk full")

func (f *failingWriter) Place(layout.Coord, string) error {
	f.places++
	if f.failAt > 0 && f.places == f.failAt {
		return errDisk
	}
	return nil
}

func (f *failingWriter) Finalize(string, string) error {
	f.finalizeHit = true
	if f.failFinal {
		return errDisk
	}
	return nil
}

func encode(t *testing.T, payload []byte) []layout.Placement {
	t.Helper()
	enc, err := layout.NewEncoder(layout.DefaultGeometry())
	if err != nil {
		t.Fatal(err)
	}
	ps, err := enc.Encode(payload)
	if err != nil {
		t.Fatal(err)
	}
	return ps
}

func TestEmitMemoryWriter(t *testing.T) {
	payload := make([]byte, layout.MaxSize)
	payload[0] = 0x01
	payload[200] = 0x80
	ps := encode(t, payload)

	w := NewMemoryWriter()
	if err := Emit(w, ps, DefaultPalette(), "rom.schem", "JE_1_19"); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	if len(w.Blocks) != len(ps) {
		t.Errorf("got %d blocks, want %d", len(w.Blocks), len(ps))
	}
	if len(w.Finalized) != 1 || w.Finalized[0] != (FinalizeCall{"rom.schem", "JE_1_19"}) {
		t.Errorf("Finalized = %v", w.Finalized)
	}
	if got := w.Blocks[layout.Coord{}]; got != DefaultOnBlock {
		t.Errorf("origin block = %q, want %q", got, DefaultOnBlock)
	}
	for i, pos := range w.Order {
		if pos != ps[i].Pos {
			t.Fatalf("placement %d out of order", i)
		}
	}

	decoded, err := layout.DefaultGeometry().Decode(w.States(DefaultPalette()).Lookup)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded, payload) {
		t.Error("round trip through MemoryWriter changed the payload")
	}
}

func TestEmitPlaceFailure(t *testing.T) {
	ps := encode(t, make([]byte, layout.MaxSize))
	w := &failingWriter{failAt: 10}

	err := Emit(w, ps, DefaultPalette(), "rom.schem", "JE_1_19")
	if !stderrors.Is(err, errors.ErrOutputWriteFailure) {
		t.Fatalf("got %v, want output_write_failure", err)
	}
	if !stderrors.Is(err, errDisk) {
		t.Error("writer error not preserved as cause")
	}
	if w.finalizeHit {
		t.Error("Finalize called after Place failed")
	}
	if w.places != 10 {
		t.Errorf("Place called %d times, want 10", w.places)
	}
}

func TestEmitFinalizeFailure(t *testing.T) {
	ps := encode(t, make([]byte, layout.MaxSize))
	w := &failingWriter{failFinal: true}

	err := Emit(w, ps, DefaultPalette(), "rom.schem", "JE_1_19")
	if !stderrors.Is(err, errors.ErrOutputWriteFailure) {
		t.Fatalf("got %v, want output_write_failure", err)
	}
	if w.places != len(ps) {
		t.Errorf("Place called %d times, want %d", w.places, len(ps))
	}
}

func TestPaletteValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       Palette
		wantErr bool
	}{
		{"default", DefaultPalette(), false},
		{"custom", Palette{On: "minecraft:gold_block", Off: "minecraft:glass"}, false},
		{"empty on", Palette{Off: "minecraft:glass"}, true},
		{"same", Palette{On: "minecraft:stone", Off: "minecraft:stone"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMemoryWriterConflict(t *testing.T) {
	w := NewMemoryWriter()
	pos := layout.Coord{X: 1}
	if err := w.Place(pos, "a"); err != nil {
		t.Fatal(err)
	}
	if err := w.Place(pos, "a"); err != nil {
		t.Errorf("same block twice: %v", err)
	}
	if err := w.Place(pos, "b"); err == nil {
		t.Error("expected conflict error")
	}
}
