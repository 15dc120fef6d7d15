// Package huffman implements canonical Huffman codes and the symbol codecs
// built on top of them.
//
// An Engine is built once from a Frequencies model (or loaded from the
// CanonicalTable that describes it) and is immutable afterwards, so a single
// Engine may be shared by any number of goroutines.  CharacterCodec,
// StringCodec and ListCodec are thin framing layers over an Engine: the
// string and list codecs write an explicit element count ahead of the coded
// symbols.
//
// Encoded data is a byte slice plus its exact length in bits.  Neither is
// self-describing; callers persist the CanonicalTable next to the payload.
//
// References:
//
//	<https://www.rfc-editor.org/rfc/rfc1951.html>, Section 3.2.2
//
//	<https://en.wikipedia.org/wiki/Canonical_Huffman_code>
package huffman
