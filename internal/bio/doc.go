// Package bio implements the wire-level primitives consumed by package
// codec: a pooled growable buffer for writers, a bounds-checked cursor for
// readers, fixed big-endian scalar encoding, and the MSB-first packed
// unsigned integer format used for lengths, counts, and indices throughout
// the codec.
package bio
