// Package codec implements the compact, self-describing binary value
// codec: tag dispatch, scalar and array encoding, nested containers,
// object-graph back-references, and the well-known singleton registry.
// See Write and Read for the entry points.
//
// # Code units, not bytes
//
// Str is stored on the wire as a count of 16-bit code units (carried in the
// tag itself for lengths up to 10) followed by that many packed unsigned
// integers, one per unit — never as raw UTF-8. writeString/readString
// convert through unicode/utf16 so a Go string round-trips through the same
// UTF-16 code-unit sequence a 16-bit string type would have produced,
// including surrogate pairs for runes outside the basic multilingual plane.
// This preserves exact code-unit identity across the wire; a rune outside
// the basic multilingual plane costs six bytes (two 3-byte packed units)
// where UTF-8 needs four. The tradeoff is fixed by the wire format, not a
// runtime choice.
//
// # Strict mode
//
// WithStrict(true) makes Read/Decode reject an int, long, char, short,
// float or double whose tag is not the minimal one Write would have chosen
// for it; other tags are not checked. The default Codec
// tolerates non-minimal tagging so a future encoder revision remains
// readable by older decoders.
package codec
