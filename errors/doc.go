// Package errors provides structured error types for the ROM schematic generator.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the offending value, a detail message and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLoad, errors.KindInputUnreadable).
//		Path("rom.bin").
//		Cause(ioErr).
//		Build()
//
// Or use convenience constructors for the common cases:
//
//	err := errors.PayloadTooLarge(300, 256)
//	err := errors.OutputWriteFailure("rom.schem", cause)
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when their Phase and Kind agree, so the
// sentinel values below can be used as targets:
//
//	if errors.Is(err, errors.ErrPayloadTooLarge) { ... }
package errors
