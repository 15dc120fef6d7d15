package huffman

import (
	"encoding/binary"
	"encoding/json"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// canonicalCodes assigns canonical Huffman codes to symbols with the given
// bit lengths, per the algorithm in RFC 1951 Section 3.2.2: shorter codes
// come first, and codes of equal length are assigned in symbol order.
// Symbols with a length of 0 are left out of the code.
//
// The lengths must satisfy the Kraft inequality with equality, except that a
// code with exactly one symbol of length 1 is permitted.
func canonicalCodes(sizes []byte, maxSize byte) ([]Code, error) {
	var countArray [MaxCodeSize + 1]uint32
	var numCoded uint32
	var minSize, maxSeen byte
	for symbol, size := range sizes {
		if size == 0 {
			continue
		}
		if size > maxSize {
			return nil, errors.Wrapf(ErrTableMismatch, "symbol %d has bit length %d, max %d", symbol, size, maxSize)
		}
		if numCoded == 0 || minSize > size {
			minSize = size
		}
		if maxSeen < size {
			maxSeen = size
		}
		countArray[size]++
		numCoded++
	}

	if numCoded == 0 {
		return nil, errors.Wrap(ErrInvalidAlphabet, "no symbols have a non-zero bit length")
	}

	// Kraft sum, scaled by 2**maxSeen.
	var kraft uint64
	for size := minSize; size <= maxSeen; size++ {
		kraft += uint64(countArray[size]) << (maxSeen - size)
	}
	full := uint64(1) << maxSeen
	switch {
	case kraft > full:
		return nil, errors.Wrapf(ErrTableMismatch, "bit lengths are over-subscribed: %d/%d", kraft, full)
	case kraft < full && !(numCoded == 1 && maxSeen == 1):
		return nil, errors.Wrapf(ErrTableMismatch, "bit lengths are incomplete: %d/%d", kraft, full)
	}

	var nextCodeArray [MaxCodeSize + 1]uint32
	var code uint32
	for size := 1; size <= int(maxSeen); size++ {
		code = (code + countArray[size-1]) << 1
		nextCodeArray[size] = code
	}

	codes := make([]Code, len(sizes))
	for symbol, size := range sizes {
		if size == 0 {
			continue
		}
		codes[symbol] = MakeCode(size, nextCodeArray[size])
		nextCodeArray[size]++
	}
	return codes, nil
}

// CanonicalTable is the persisted form of an Engine: the alphabet in
// enumeration order and the code length of each symbol.  The codes
// themselves are reconstructed by canonical assignment.
type CanonicalTable[T comparable] struct {
	Symbols []T
	Lengths []byte
}

// Len returns the number of symbols in the table.
func (t CanonicalTable[T]) Len() int {
	return len(t.Symbols)
}

// Equal returns true if both tables list the same symbols with the same
// lengths in the same order.
func (t CanonicalTable[T]) Equal(other CanonicalTable[T]) bool {
	if len(t.Symbols) != len(other.Symbols) || len(t.Lengths) != len(other.Lengths) {
		return false
	}
	for i := range t.Symbols {
		if t.Symbols[i] != other.Symbols[i] {
			return false
		}
	}
	for i := range t.Lengths {
		if t.Lengths[i] != other.Lengths[i] {
			return false
		}
	}
	return true
}

// validate checks the structure of the table, but not whether its lengths
// form a prefix code.
func (t CanonicalTable[T]) validate() error {
	if len(t.Symbols) != len(t.Lengths) {
		return errors.Wrapf(ErrTableMismatch, "%d symbols but %d lengths", len(t.Symbols), len(t.Lengths))
	}
	if len(t.Symbols) == 0 {
		return errors.Wrap(ErrInvalidAlphabet, "canonical table is empty")
	}
	if uint64(len(t.Symbols)) > uint64(MaxSymbol)+1 {
		return errors.Wrapf(ErrInvalidAlphabet, "%d symbols exceeds the maximum", len(t.Symbols))
	}
	seen := make(map[T]struct{}, len(t.Symbols))
	for i, sym := range t.Symbols {
		if _, dup := seen[sym]; dup {
			return errors.Wrapf(ErrTableMismatch, "symbol %#v is listed twice", sym)
		}
		seen[sym] = struct{}{}
		if t.Lengths[i] == 0 {
			return errors.Wrapf(ErrTableMismatch, "symbol %#v has a bit length of 0", sym)
		}
	}
	return nil
}

// AppendBinary appends the binary form of the table to dst: a uvarint symbol
// count, then each symbol as written by m followed by its length as one byte.
// The table must have one length per symbol.
func (t CanonicalTable[T]) AppendBinary(dst []byte, m SymbolMarshaler[T]) []byte {
	assert.Assertf(len(t.Symbols) == len(t.Lengths), "%d symbols but %d lengths", len(t.Symbols), len(t.Lengths))
	dst = binary.AppendUvarint(dst, uint64(len(t.Symbols)))
	for i, sym := range t.Symbols {
		dst = m.AppendSymbol(dst, sym)
		dst = append(dst, t.Lengths[i])
	}
	return dst
}

// ReadCanonicalTable parses the binary form written by AppendBinary and
// returns the table along with the number of bytes consumed.
func ReadCanonicalTable[T comparable](src []byte, m SymbolMarshaler[T]) (CanonicalTable[T], int, error) {
	count, n := binary.Uvarint(src)
	if n <= 0 {
		return CanonicalTable[T]{}, 0, errors.Wrap(ErrTableMismatch, "malformed symbol count")
	}
	pos := n

	// Every entry takes at least one byte for its length.
	if count > uint64(len(src)-pos) {
		return CanonicalTable[T]{}, 0, errors.Wrapf(ErrTableMismatch, "symbol count %d exceeds remaining %d bytes", count, len(src)-pos)
	}

	t := CanonicalTable[T]{
		Symbols: make([]T, 0, count),
		Lengths: make([]byte, 0, count),
	}
	for i := uint64(0); i < count; i++ {
		sym, n, err := m.ReadSymbol(src[pos:])
		if err != nil {
			return CanonicalTable[T]{}, 0, errors.Wrapf(ErrTableMismatch, "entry %d: %v", i, err)
		}
		pos += n
		if pos >= len(src) {
			return CanonicalTable[T]{}, 0, errors.Wrapf(ErrTableMismatch, "entry %d: missing bit length", i)
		}
		t.Symbols = append(t.Symbols, sym)
		t.Lengths = append(t.Lengths, src[pos])
		pos++
	}
	return t, pos, nil
}

type jsonCanonicalTable[T comparable] struct {
	Symbols []T   `json:"symbols"`
	Lengths []int `json:"lengths"`
}

// MarshalJSON encodes the table as {"symbols":[...],"lengths":[...]}.
func (t CanonicalTable[T]) MarshalJSON() ([]byte, error) {
	raw := jsonCanonicalTable[T]{
		Symbols: t.Symbols,
		Lengths: make([]int, len(t.Lengths)),
	}
	if raw.Symbols == nil {
		raw.Symbols = []T{}
	}
	for i, size := range t.Lengths {
		raw.Lengths[i] = int(size)
	}
	return json.Marshal(raw)
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (t *CanonicalTable[T]) UnmarshalJSON(data []byte) error {
	var raw jsonCanonicalTable[T]
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	lengths := make([]byte, len(raw.Lengths))
	for i, size := range raw.Lengths {
		if size < 0 || size > MaxCodeSize {
			return errors.Wrapf(ErrTableMismatch, "bit length %d out of range", size)
		}
		lengths[i] = byte(size)
	}
	*t = CanonicalTable[T]{Symbols: raw.Symbols, Lengths: lengths}
	return nil
}

var (
	_ json.Marshaler   = CanonicalTable[rune]{}
	_ json.Unmarshaler = (*CanonicalTable[rune])(nil)
)
