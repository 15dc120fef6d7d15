package huffman

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// SymbolMarshaler converts symbols to and from bytes for the binary form of
// a CanonicalTable.
type SymbolMarshaler[T comparable] interface {
	// AppendSymbol appends the binary form of sym to dst.
	AppendSymbol(dst []byte, sym T) []byte

	// ReadSymbol parses one symbol from the front of src and returns it
	// with the number of bytes consumed.
	ReadSymbol(src []byte) (T, int, error)
}

// RuneMarshaler writes each rune as a signed varint, so that runes which are
// not valid Unicode survive a round trip.
type RuneMarshaler struct{}

// AppendSymbol implements SymbolMarshaler.
func (RuneMarshaler) AppendSymbol(dst []byte, sym rune) []byte {
	return binary.AppendVarint(dst, int64(sym))
}

// ReadSymbol implements SymbolMarshaler.
func (RuneMarshaler) ReadSymbol(src []byte) (rune, int, error) {
	v, n := binary.Varint(src)
	if n <= 0 {
		return 0, 0, errors.New("malformed rune")
	}
	if int64(rune(v)) != v {
		return 0, 0, errors.Errorf("rune %d out of range", v)
	}
	return rune(v), n, nil
}

// StringMarshaler writes each string as a uvarint byte length followed by
// the bytes themselves.
type StringMarshaler struct{}

// AppendSymbol implements SymbolMarshaler.
func (StringMarshaler) AppendSymbol(dst []byte, sym string) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(sym)))
	return append(dst, sym...)
}

// ReadSymbol implements SymbolMarshaler.
func (StringMarshaler) ReadSymbol(src []byte) (string, int, error) {
	size, n := binary.Uvarint(src)
	if n <= 0 {
		return "", 0, errors.New("malformed string length")
	}
	if size > uint64(len(src)-n) {
		return "", 0, errors.Errorf("string length %d exceeds remaining %d bytes", size, len(src)-n)
	}
	end := n + int(size)
	return string(src[n:end]), end, nil
}

var (
	_ SymbolMarshaler[rune]   = RuneMarshaler{}
	_ SymbolMarshaler[string] = StringMarshaler{}
)
