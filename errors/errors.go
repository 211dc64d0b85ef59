package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseArgs   Phase = "args"   // command-line handling
	PhaseLoad   Phase = "load"   // reading and normalizing the payload
	PhaseLayout Phase = "layout" // geometry validation
	PhaseEncode Phase = "encode" // payload to placements
	PhaseEmit   Phase = "emit"   // placements to the container writer
	PhaseVerify Phase = "verify" // read-back of a written schematic
)

// Kind categorizes the error
type Kind string

const (
	KindPayloadTooLarge    Kind = "payload_too_large"
	KindInputNotFound      Kind = "input_not_found"
	KindInputUnreadable    Kind = "input_unreadable"
	KindOutputWriteFailure Kind = "output_write_failure"
	KindInvalidArguments   Kind = "invalid_arguments"
	KindInvalidGeometry    Kind = "invalid_geometry"
	KindCollision          Kind = "collision"
	KindInvalidData        Kind = "invalid_data"
	KindMismatch           Kind = "mismatch"
	KindUnsupported        Kind = "unsupported"
)

// Sentinels for errors.Is. Only Phase and Kind take part in matching.
var (
	ErrPayloadTooLarge    = &Error{Phase: PhaseLoad, Kind: KindPayloadTooLarge}
	ErrInputNotFound      = &Error{Phase: PhaseLoad, Kind: KindInputNotFound}
	ErrInputUnreadable    = &Error{Phase: PhaseLoad, Kind: KindInputUnreadable}
	ErrOutputWriteFailure = &Error{Phase: PhaseEmit, Kind: KindOutputWriteFailure}
	ErrInvalidArguments   = &Error{Phase: PhaseArgs, Kind: KindInvalidArguments}
)

// Error is the structured error type used throughout the generator
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the file path or location the error refers to
func (b *Builder) Path(path string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// PayloadTooLarge reports an input of size bytes that exceeds max.
// Value holds the offending size.
func PayloadTooLarge(size, max int) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindPayloadTooLarge,
		Detail: fmt.Sprintf("payload size %d bytes exceeds maximum size of %d bytes", size, max),
		Value:  size,
	}
}

// InputNotFound creates an error for a missing input file
func InputNotFound(path string, cause error) *Error {
	return &Error{
		Phase: PhaseLoad,
		Kind:  KindInputNotFound,
		Path:  path,
		Cause: cause,
	}
}

// InputUnreadable creates an error for an input that exists but cannot be read
func InputUnreadable(path string, cause error) *Error {
	return &Error{
		Phase: PhaseLoad,
		Kind:  KindInputUnreadable,
		Path:  path,
		Cause: cause,
	}
}

// OutputWriteFailure wraps a failure reported by the container writer
func OutputWriteFailure(path string, cause error) *Error {
	return &Error{
		Phase: PhaseEmit,
		Kind:  KindOutputWriteFailure,
		Path:  path,
		Cause: cause,
	}
}

// InvalidArguments creates a command-line arity or flag error
func InvalidArguments(detail string) *Error {
	return &Error{
		Phase:  PhaseArgs,
		Kind:   KindInvalidArguments,
		Detail: detail,
	}
}

// InvalidGeometry creates a layout parameter error
func InvalidGeometry(detail string, args ...any) *Error {
	return New(PhaseLayout, KindInvalidGeometry).Detail(detail, args...).Build()
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
