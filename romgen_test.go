package romgen

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/wippyai/romgen/emit"
	"github.com/wippyai/romgen/errors"
	"github.com/wippyai/romgen/layout"
	"github.com/wippyai/romgen/schematic"
)

func writeInput(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenerateWritesVerifiedSchematic(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "prog.bin", []byte("\x01\x02\x03 hello rom"))
	var progress bytes.Buffer

	res, err := Generate(Options{
		Input:    in,
		Output:   filepath.Join(dir, "rom"),
		Verify:   true,
		Progress: &progress,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.OutputPath != filepath.Join(dir, "rom.schem") {
		t.Errorf("OutputPath = %q", res.OutputPath)
	}
	if _, err := os.Stat(res.OutputPath); err != nil {
		t.Errorf("output missing: %v", err)
	}

	out := progress.String()
	for _, want := range []string{"Generating ROM schematic...", "Opened file " + in, "Schematic generated", "Verified 256 bytes"} {
		if !strings.Contains(out, want) {
			t.Errorf("progress %q missing %q", out, want)
		}
	}
}

func TestPaddingMatchesExplicitZeros(t *testing.T) {
	dir := t.TempDir()
	short := []byte{0xC3, 0x5A, 0x00, 0x7E, 0x81}
	full := make([]byte, layout.MaxSize)
	copy(full, short)

	a, err := Prepare(Options{Input: writeInput(t, dir, "short.bin", short)})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Prepare(Options{Input: writeInput(t, dir, "full.bin", full)})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Placements, b.Placements) {
		t.Error("padded payload encodes differently from explicit zeros")
	}
	for _, p := range a.Placements {
		if p.Addr.Byte >= len(short) && p.State != layout.Clear {
			t.Fatalf("padding bit %v is %v", p.Addr, p.State)
		}
	}
}

func TestGenerateTooLarge(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "big.bin", make([]byte, layout.MaxSize+1))
	w := emit.NewMemoryWriter()

	res, err := Generate(Options{Input: in, Output: filepath.Join(dir, "rom"), Writer: w})
	if !stderrors.Is(err, errors.ErrPayloadTooLarge) {
		t.Fatalf("got %v, want payload_too_large", err)
	}
	if res != nil {
		t.Error("expected nil result")
	}
	if len(w.Blocks) != 0 || len(w.Finalized) != 0 {
		t.Error("writer was used for an oversized payload")
	}
	if _, err := os.Stat(filepath.Join(dir, "rom.schem")); !os.IsNotExist(err) {
		t.Errorf("output artifact exists: %v", err)
	}
}

func TestGenerateMissingInput(t *testing.T) {
	_, err := Generate(Options{Input: filepath.Join(t.TempDir(), "nope"), Output: "x"})
	if !stderrors.Is(err, errors.ErrInputNotFound) {
		t.Fatalf("got %v, want input_not_found", err)
	}
}

func TestWriteWithInjectedWriter(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "prog.bin", []byte{0xFF})
	w := emit.NewMemoryWriter()
	palette := emit.Palette{On: "minecraft:gold_block", Off: "minecraft:glass"}

	res, err := Generate(Options{Input: in, Output: "rom", Writer: w, Palette: palette, Version: "JE_1_20"})
	if err != nil {
		t.Fatal(err)
	}
	if res.OutputPath != "rom" {
		t.Errorf("OutputPath = %q, custom writers get the path unchanged", res.OutputPath)
	}
	if len(w.Finalized) != 1 || w.Finalized[0].Version != "JE_1_20" {
		t.Errorf("Finalized = %v", w.Finalized)
	}
	for b := 0; b < layout.BitsPerByte; b++ {
		if got := w.Blocks[res.Geometry.AddressOf(0, b)]; got != palette.On {
			t.Errorf("bit %d = %q", b, got)
		}
	}
	if got := w.Blocks[res.Geometry.AddressOf(1, 0)]; got != palette.Off {
		t.Errorf("byte 1 bit 0 = %q", got)
	}
}

func TestVerifyDetectsMismatch(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "prog.bin", []byte{0x10, 0x20})
	res, err := Generate(Options{Input: in, Output: filepath.Join(dir, "rom.schem")})
	if err != nil {
		t.Fatal(err)
	}

	want := append([]byte(nil), res.Payload...)
	want[1] = 0x21
	err = Verify(res.OutputPath, res.Geometry, emit.DefaultPalette(), want)
	var re *errors.Error
	if !stderrors.As(err, &re) || re.Kind != errors.KindMismatch {
		t.Fatalf("got %v, want mismatch", err)
	}
	if re.Value != 1 {
		t.Errorf("Value = %v, want 1", re.Value)
	}

	if err := Verify(res.OutputPath, res.Geometry, emit.DefaultPalette(), res.Payload); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestVerifyWrongPalette(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "prog.bin", []byte{0x10})
	res, err := Generate(Options{Input: in, Output: filepath.Join(dir, "rom.schem")})
	if err != nil {
		t.Fatal(err)
	}
	other := emit.Palette{On: "minecraft:gold_block", Off: "minecraft:glass"}
	if err := Verify(res.OutputPath, res.Geometry, other, res.Payload); err == nil {
		t.Error("expected error for unknown blocks")
	}
	if _, err := schematic.ReadFile(res.OutputPath); err != nil {
		t.Errorf("ReadFile: %v", err)
	}
}
