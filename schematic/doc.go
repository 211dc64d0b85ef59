// Package schematic writes and reads Sponge Schematic v2 files.
//
// A Schematic collects blocks at absolute coordinates. On save, the bounding
// box of all placed blocks becomes the schematic region; cells inside the box
// without a block are stored as minecraft:air, which is always palette
// index 0. The NBT root compound is named "Schematic" and the file is gzip
// compressed.
//
//	s := schematic.New()
//	s.Place(layout.Coord{X: 1}, "minecraft:stone")
//	path, err := s.Save("out/rom", "JE_1_19") // writes out/rom.schem
//
// Schematic implements emit.Writer.
package schematic
