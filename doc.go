// Package romgen converts binary ROM images into block schematics.
//
// Every bit of a fixed 256 byte image becomes one block: a redstone block
// for 1 and blue ice for 0, laid out in the plane and byte-pair structure a
// redstone ROM reader walks. The result is a Sponge schematic that world
// editors can paste directly.
//
// # Architecture Overview
//
//	romgen/              Pipeline: load, encode, emit, verify
//	├── layout/          Bit address to coordinate mapping (the ROM layout)
//	├── payload/         Input loading and zero padding
//	├── emit/            Writer capability and block palette
//	├── schematic/       Sponge schematic v2 reader and writer
//	├── errors/          Structured error types
//	└── cmd/romgen/      Command-line tool and interactive preview
//
// # Quick Start
//
//	res, err := romgen.Generate(romgen.Options{
//	    Input:  "program.bin",
//	    Output: "rom.schem",
//	})
//	if errors.Is(err, romerrors.ErrPayloadTooLarge) {
//	    // nothing was written
//	}
//
// Generate is Prepare followed by Write; callers that want to inspect the
// placements before anything touches disk can call them separately.
package romgen
