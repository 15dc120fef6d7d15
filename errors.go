package huffman

// Error is the type of the sentinel errors returned by this package.  Errors
// are usually wrapped with additional context; use errors.Is to test them.
type Error string

func (e Error) Error() string { return "huffman: " + string(e) }

var (
	// ErrInvalidAlphabet is returned when an Engine is built from a
	// frequency model with no symbols, or with more symbols than the
	// configured code size can represent.
	ErrInvalidAlphabet error = Error("invalid alphabet")

	// ErrCorruptStream is returned when decoding meets bits that do not
	// lead to a symbol, when a code is cut off part way through, or when
	// the element count disagrees with the coded data.
	ErrCorruptStream error = Error("stream is corrupted")

	// ErrEndOfStream is returned when the input is exhausted at a point
	// where another symbol or count was expected.
	ErrEndOfStream error = Error("unexpected end of stream")

	// ErrTableMismatch is returned when a canonical table does not
	// describe a valid prefix code.
	ErrTableMismatch error = Error("canonical table does not form a prefix code")

	// ErrUnknownSymbol is returned when encoding a symbol that is not in
	// the Engine's alphabet.
	ErrUnknownSymbol error = Error("symbol is not in the alphabet")
)
