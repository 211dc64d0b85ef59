// Package layout maps ROM payload bits to block coordinates.
//
// A payload of Geometry.MaxSize bytes is laid out as a stack of planes. Each
// plane holds PlaneWrap consecutive bytes; planes are stacked along the
// vertical axis. Inside a plane, bytes are grouped in pairs and each pair
// occupies one slot along the length axis. The second byte of a pair is
// shifted by one major row step along the row axis so both bytes sit in
// parallel rows.
//
// Within a byte, bit b (least significant first) lands at
//
//	row = (b & 0b1110)*RowMajorStep + (b & 1)*RowMinorStep + pair*RowMajorStep
//
// which interleaves the bits of the two paired bytes along the row axis.
//
// With DefaultGeometry the 2048 bits of a 256 byte ROM occupy a
// 31 x 15 x 91 block region: x in [0,30], y in [-14,0], z in [0,90].
//
// # Encoding
//
//	enc, err := layout.NewEncoder(layout.DefaultGeometry())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	placements, err := enc.Encode(rom) // len(rom) == 256
//
// # Decoding
//
// Decode reads the state at every address back into bytes, the same way a
// reader circuit walks the ROM:
//
//	rom, err := geom.Decode(layout.Index(placements).Lookup)
package layout
