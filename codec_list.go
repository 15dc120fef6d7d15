package huffman

import (
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// ListCodec codes a list of T as its element count followed by the Code of
// each element.  Element equality is T's own ==.
//
// A ListCodec is immutable and safe for concurrent use.
type ListCodec[T comparable] struct {
	engine *Engine[T]
}

// StringListCodec codes lists of whole strings, each string one symbol.
// Frequent strings like "highway" cost only a few bits each.
type StringListCodec = ListCodec[string]

// NewListCodec wraps an existing Engine.
func NewListCodec[T comparable](e *Engine[T]) *ListCodec[T] {
	assert.Assertf(e != nil, "NewListCodec called with nil Engine")
	return &ListCodec[T]{engine: e}
}

// BuildListCodec builds the optimal code for the element frequencies f.  m
// may be nil if the binary form of the table is not needed.
func BuildListCodec[T comparable](f *Frequencies[T], m SymbolMarshaler[T], conf *Config) (*ListCodec[T], error) {
	e, err := Build(f, m, conf)
	if err != nil {
		return nil, err
	}
	return NewListCodec(e), nil
}

// TrainListCodec builds the optimal code for the elements of samples.
func TrainListCodec[T comparable](samples [][]T, m SymbolMarshaler[T], conf *Config) (*ListCodec[T], error) {
	f := NewFrequencies[T]()
	for _, list := range samples {
		f.RecordAll(list)
	}
	return BuildListCodec(f, m, conf)
}

// LoadListCodec reconstructs a codec from its canonical table.
func LoadListCodec[T comparable](t CanonicalTable[T], m SymbolMarshaler[T], conf *Config) (*ListCodec[T], error) {
	e, err := Load(t, m, conf)
	if err != nil {
		return nil, err
	}
	return NewListCodec(e), nil
}

// TrainStringListCodec builds the optimal code for the strings of samples,
// treating each whole string as one symbol.
func TrainStringListCodec(samples [][]string, conf *Config) (*StringListCodec, error) {
	return TrainListCodec[string](samples, StringMarshaler{}, conf)
}

// UnmarshalStringListCodec reconstructs a codec from the binary form
// returned by MarshalBinary.
func UnmarshalStringListCodec(data []byte, conf *Config) (*StringListCodec, error) {
	t, n, err := ReadCanonicalTable[string](data, StringMarshaler{})
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, errors.Wrapf(ErrTableMismatch, "%d trailing bytes after table", len(data)-n)
	}
	return LoadListCodec[string](t, StringMarshaler{}, conf)
}

// Engine returns the underlying Engine.
func (c *ListCodec[T]) Engine() *Engine[T] {
	return c.engine
}

// CanonicalTable returns the persisted form of the code.
func (c *ListCodec[T]) CanonicalTable() CanonicalTable[T] {
	return c.engine.CanonicalTable()
}

// MarshalBinary returns the binary form of the canonical table.  It fails if
// the codec was built without a SymbolMarshaler.
func (c *ListCodec[T]) MarshalBinary() ([]byte, error) {
	return c.engine.MarshalBinary()
}

// Encode codes list.
func (c *ListCodec[T]) Encode(list []T) ([]byte, int64, error) {
	bw := NewBitWriter()
	return finish(bw, c.EncodeTo(bw, list))
}

// EncodeTo writes the element count of list followed by the Code of each
// element.
func (c *ListCodec[T]) EncodeTo(bw *BitWriter, list []T) error {
	return writeSequence(c.engine, bw, list)
}

// Decode decodes a list from exactly bitLen bits of buf.  An empty list
// decodes as a non-nil slice of length zero.
func (c *ListCodec[T]) Decode(buf []byte, bitLen int64) ([]T, error) {
	br := NewBitReader(buf, bitLen)
	list, err := c.DecodeFrom(br)
	if err != nil {
		return nil, err
	}
	if err := checkDrained(br); err != nil {
		return nil, err
	}
	return list, nil
}

// DecodeFrom reads one list from br.
func (c *ListCodec[T]) DecodeFrom(br *BitReader) ([]T, error) {
	return readSequence(c.engine, br)
}

// Dump writes a programmer-readable debugging dump of the code.
func (c *ListCodec[T]) Dump(w io.Writer) (int64, error) {
	return c.engine.Dump(w)
}
