// Package errs defines the sentinel errors returned by the wirekv codec.
//
// Every error the codec returns wraps one of these sentinels so callers can
// use errors.Is to classify a failure without depending on its exact text.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrCorrupt indicates the input byte stream does not describe a valid
	// value: a poison tag, an unknown tag, a malformed packed integer, a
	// JAVA_SERIALIZATION sentinel, or an out-of-range back-reference index.
	ErrCorrupt = errors.New("wirekv: corrupt stream")

	// ErrUnexpectedEnd indicates the input was exhausted in the middle of a value.
	ErrUnexpectedEnd = errors.New("wirekv: unexpected end of input")

	// ErrUnserializable indicates a value outside the codec's universe was
	// passed to Write and no extension handler accepted it.
	ErrUnserializable = errors.New("wirekv: value is not serializable")

	// ErrUnknownTag indicates a tag byte the core does not recognize and no
	// extension handler claimed. It wraps ErrCorrupt.
	ErrUnknownTag = fmt.Errorf("%w: unknown tag", ErrCorrupt)

	// ErrUnsupported indicates a recognized but unimplemented tag, namely
	// POJO without an installed field-reflective extension.
	ErrUnsupported = errors.New("wirekv: unsupported tag")

	// ErrBackRefOutOfRange indicates an OBJECT_STACK index pointed past the
	// end of the current reference tracker. It wraps ErrCorrupt.
	ErrBackRefOutOfRange = fmt.Errorf("%w: back-reference index out of range", ErrCorrupt)

	// ErrNonMinimalEncoding indicates a value was tagged with a wider form
	// than necessary. Only returned by the strict conformance checker; the
	// default decoder tolerates non-minimal encodings.
	ErrNonMinimalEncoding = errors.New("wirekv: non-minimal integer encoding")

	// ErrUnknownSingleton indicates a MAPDB sub-id with no registry entry.
	ErrUnknownSingleton = errors.New("wirekv: unknown singleton sub-id")

	// ErrIO wraps a failure from the underlying byte-input/byte-output
	// abstraction that is not itself a stream-shape problem.
	ErrIO = errors.New("wirekv: upstream i/o error")
)
