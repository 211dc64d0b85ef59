// Package emit hands encoded placements to a block container writer.
//
// The container format is behind the Writer interface; the schematic package
// provides the Sponge schematic implementation and MemoryWriter records calls
// for tests and previews.
//
//	w := schematic.New()
//	err := emit.Emit(w, placements, emit.DefaultPalette(), "rom.schem", "JE_1_19")
package emit
