package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// Engine is a Huffman code over an alphabet of T.  It holds both views of
// the code: the Table used to encode and the Tree (or, with DecoderTable,
// the lookup Decoder) used to decode.
//
// An Engine is immutable once built and is safe for concurrent use.
type Engine[T comparable] struct {
	symbols []T
	index   map[T]Symbol
	table   *Table
	tree    *Tree
	lookup  *Decoder
	marshal SymbolMarshaler[T]
	conf    Config
}

// Build constructs the optimal code for the frequency model f.  The model
// must contain at least one symbol.  m is used for the binary form of the
// canonical table and may be nil if that form is not needed.
func Build[T comparable](f *Frequencies[T], m SymbolMarshaler[T], conf *Config) (*Engine[T], error) {
	c, err := conf.normalize()
	if err != nil {
		return nil, err
	}

	counts := f.Counts()
	numSymbols := len(counts)
	if numSymbols == 0 {
		return nil, errors.Wrap(ErrInvalidAlphabet, "frequency model is empty")
	}
	if uint64(numSymbols) > uint64(1)<<c.MaxCodeSize {
		return nil, errors.Wrapf(ErrInvalidAlphabet, "%d symbols cannot be coded in %d bits", numSymbols, c.MaxCodeSize)
	}

	symbols := make([]T, numSymbols)
	freqs := make([]uint32, numSymbols)
	for i, sc := range counts {
		symbols[i] = sc.Symbol
		freqs[i] = sc.Count
	}

	return newEngine(symbols, buildSizes(freqs, c.MaxCodeSize), m, c)
}

// Load reconstructs the code described by a canonical table, as returned by
// Engine.CanonicalTable.  m may be nil if the binary form is not needed.
func Load[T comparable](t CanonicalTable[T], m SymbolMarshaler[T], conf *Config) (*Engine[T], error) {
	c, err := conf.normalize()
	if err != nil {
		return nil, err
	}
	if err := t.validate(); err != nil {
		return nil, err
	}

	symbols := make([]T, len(t.Symbols))
	copy(symbols, t.Symbols)
	sizes := make([]byte, len(t.Lengths))
	copy(sizes, t.Lengths)
	return newEngine(symbols, sizes, m, c)
}

func newEngine[T comparable](symbols []T, sizes []byte, m SymbolMarshaler[T], c Config) (*Engine[T], error) {
	codes, err := canonicalCodes(sizes, c.MaxCodeSize)
	if err != nil {
		return nil, err
	}

	tree, err := newTree(codes)
	if err != nil {
		return nil, err
	}

	e := &Engine[T]{
		symbols: symbols,
		index:   make(map[T]Symbol, len(symbols)),
		table:   tree.Table(len(symbols)),
		tree:    tree,
		marshal: m,
		conf:    c,
	}
	for i, sym := range symbols {
		e.index[sym] = Symbol(i)
	}

	if c.Decoder == DecoderTable {
		e.lookup = new(Decoder)
		if err := e.lookup.Init(sizes); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Len returns the number of symbols in the alphabet.
func (e *Engine[T]) Len() int {
	return len(e.symbols)
}

// Symbols returns a copy of the alphabet in enumeration order.
func (e *Engine[T]) Symbols() []T {
	out := make([]T, len(e.symbols))
	copy(out, e.symbols)
	return out
}

// Lookup returns the Symbol index of sym.
func (e *Engine[T]) Lookup(sym T) (Symbol, bool) {
	index, found := e.index[sym]
	return index, found
}

// Code returns the Code assigned to sym.
func (e *Engine[T]) Code(sym T) (Code, bool) {
	index, found := e.index[sym]
	if !found {
		return Code{}, false
	}
	return e.table.Encode(index), true
}

// Table returns the encode-side view of the code.
func (e *Engine[T]) Table() *Table {
	return e.table
}

// Tree returns the decode-side view of the code.
func (e *Engine[T]) Tree() *Tree {
	return e.tree
}

// Config returns the normalized configuration of the Engine.
func (e *Engine[T]) Config() Config {
	return e.conf
}

// EncodeSymbol writes the Code for sym to bw.
func (e *Engine[T]) EncodeSymbol(bw *BitWriter, sym T) error {
	index, found := e.index[sym]
	if !found {
		return errors.Wrapf(ErrUnknownSymbol, "%#v", sym)
	}
	return bw.WriteCode(e.table.Encode(index))
}

// DecodeSymbol reads one Code from br and returns its symbol.
func (e *Engine[T]) DecodeSymbol(br *BitReader) (T, error) {
	var zero T
	var index Symbol
	var err error
	if e.lookup != nil {
		index, err = e.lookup.ReadSymbol(br)
	} else {
		index, err = e.tree.Walk(br.ReadBit)
	}
	if err != nil {
		return zero, err
	}
	assert.Assertf(int(index) < len(e.symbols), "decoded symbol %d out of range [0..%d)", index, len(e.symbols))
	return e.symbols[index], nil
}

// CanonicalTable returns the persisted form of the code.
func (e *Engine[T]) CanonicalTable() CanonicalTable[T] {
	return CanonicalTable[T]{
		Symbols: e.Symbols(),
		Lengths: e.table.SizeBySymbol(),
	}
}

// MarshalBinary returns the binary form of the canonical table.
func (e *Engine[T]) MarshalBinary() ([]byte, error) {
	if e.marshal == nil {
		return nil, errors.New("huffman: engine has no SymbolMarshaler")
	}
	return e.CanonicalTable().AppendBinary(nil, e.marshal), nil
}

// Fingerprint returns a hash of the binary form of the canonical table.
// Engines with equal canonical tables have equal fingerprints.
func (e *Engine[T]) Fingerprint() (uint64, error) {
	raw, err := e.MarshalBinary()
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(raw), nil
}

// Dump writes a programmer-readable debugging dump of the Engine's current
// state to the given writer.
func (e *Engine[T]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Engine{\n")
	fmt.Fprintf(&buf, "\tDecoder = %v\n", e.conf.Decoder)
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", e.table.MinSize())
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.table.MaxSize())
	for index, sym := range e.symbols {
		fmt.Fprintf(&buf, "\tEncode(%#v) = %s\n", sym, e.table.Encode(Symbol(index)))
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
