package huffman

import (
	"bytes"
	"fmt"
	"io"
	mathbits "math/bits"
	"sort"

	"github.com/pkg/errors"
)

// Decoder implements a table-driven decoder for canonical Huffman codes.
// Every prefix of every code is a key in the table, so a decode can consume
// as many bits at once as the shortest code sharing that prefix.
type Decoder struct {
	table   map[Code]decoderData
	sizes   []byte
	minSize byte
	maxSize byte
}

// Init initializes this Decoder.  The argument consists of one bit length
// for each symbol in the code, which is used to construct the canonical
// Huffman code per the algorithm in RFC 1951 Section 3.2.2.  Symbols with an
// assigned bit length of 0 are omitted from the code entirely.
//
// Lengths that do not form a complete prefix code are rejected with
// ErrTableMismatch; the one exception is a code with a single symbol of
// length 1.
func (d *Decoder) Init(sizes []byte) error {
	codes, err := canonicalCodes(sizes, MaxCodeSize)
	if err != nil {
		return err
	}

	t := newTable(codes)
	numCoded := 0
	for _, hc := range codes {
		if hc.Size != 0 {
			numCoded++
		}
	}

	// Every prefix of every code is a key: about n×log2(n) entries.
	numTableSlots := numCoded * mathbits.Len(uint(numCoded))

	*d = Decoder{
		table:   make(map[Code]decoderData, numTableSlots),
		sizes:   make([]byte, len(sizes)),
		minSize: t.MinSize(),
		maxSize: t.MaxSize(),
	}

	copy(d.sizes, sizes)

	for symbol, hc := range codes {
		if hc.Size == 0 {
			continue
		}
		fillTable(d.table, Symbol(symbol), hc)
	}

	return nil
}

// Decode attempts to decode a Huffman code into a Symbol.
//
// If the Decode is completely successful, symbol >= 0 and minSize == maxSize.
//
// If the Decode fails due to insufficient bits, symbol == InvalidSymbol and at
// least (minSize - hc.Size) additional bits are required to decode this
// symbol.  No more than (maxSize - hc.Size) additional bits will be required.
//
// If the Decode fails due to unreasonable input, symbol == InvalidSymbol and
// minSize == maxSize == 0.
func (d *Decoder) Decode(hc Code) (symbol Symbol, minSize byte, maxSize byte) {
	dd, found := d.table[hc]
	if !found {
		return InvalidSymbol, 0, 0
	}
	return dd.symbol, dd.minSize, dd.maxSize
}

// ReadSymbol decodes one symbol from br.  Running out of bits before the
// first bit yields ErrEndOfStream; running out part way through a code, or
// reading a prefix that no code starts with, yields ErrCorruptStream.
func (d *Decoder) ReadSymbol(br *BitReader) (Symbol, error) {
	var hc Code
	for {
		symbol, minSize, _ := d.Decode(hc)
		if symbol != InvalidSymbol {
			return symbol, nil
		}
		if minSize == 0 {
			return InvalidSymbol, errors.Wrapf(ErrCorruptStream, "no symbol has a code starting with %s", hc)
		}

		need := minSize - hc.Size
		if br.Remaining() < int64(need) {
			if hc.Size == 0 && br.Remaining() == 0 {
				return InvalidSymbol, errors.Wrap(ErrEndOfStream, "expected another symbol")
			}
			return InvalidSymbol, errors.Wrapf(ErrCorruptStream, "code truncated after %s", hc)
		}
		bits, err := br.ReadBits(need)
		if err != nil {
			return InvalidSymbol, err
		}
		hc = MakeCode(hc.Size+need, hc.Bits<<need|uint32(bits))
	}
}

// MinSize is the bit length of the shortest legal code.
func (d *Decoder) MinSize() byte {
	return d.minSize
}

// MaxSize is the bit length of the longest legal code.
func (d *Decoder) MaxSize() byte {
	return d.maxSize
}

// MaxSymbol is the last Symbol in the code's alphabet.
//
// (The first Symbol in the code's alphabet is always 0.)
func (d *Decoder) MaxSymbol() Symbol {
	return Symbol(len(d.sizes)) - 1
}

// SizeBySymbol returns a copy of the original bit length array used to
// initialize this Decoder.
func (d *Decoder) SizeBySymbol() []byte {
	out := make([]byte, len(d.sizes))
	copy(out, d.sizes)
	return out
}

// String returns a short description of this Decoder.
func (d *Decoder) String() string {
	return fmt.Sprintf("(Huffman decoder with %d symbols, with coded lengths of %d .. %d bits)", len(d.sizes), d.minSize, d.maxSize)
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d *Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)
	keys := make(byCode, 0, len(d.table))
	for hc := range d.table {
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		dd := d.table[hc]
		fmt.Fprintf(&buf, "\tDecode(%s) = {%d, %d, %d}\n", hc, dd.symbol, dd.minSize, dd.maxSize)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

var _ fmt.Stringer = (*Decoder)(nil)

type decoderData struct {
	symbol  Symbol
	minSize byte
	maxSize byte
}

func fillTable(table map[Code]decoderData, symbol Symbol, hc Code) {
	dd := decoderData{symbol, hc.Size, hc.Size}
	table[hc] = dd

	for hc.Size != 0 {
		// Merge the dd's from "xxx...a" (dd) and "xxx...A" (ddSibling),
		// where A = NOT a, into ddNew (the new parent for both).

		ddNew := decoderData{InvalidSymbol, dd.minSize, dd.maxSize}
		if ddSibling, found := table[hc.sibling()]; found {
			if ddNew.minSize > ddSibling.minSize {
				ddNew.minSize = ddSibling.minSize
			}
			if ddNew.maxSize < ddSibling.maxSize {
				ddNew.maxSize = ddSibling.maxSize
			}
		}

		// Mutate hc from "xxx...a" to "xxx...".

		hc = hc.parent()

		// If table[hc] already equals ddNew, we can stop recursing.

		if ddOld, found := table[hc]; found && ddOld == ddNew {
			break
		}

		// Update table[hc] with ddNew and continue recursing.

		table[hc] = ddNew
		dd = ddNew
	}
}

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	as, ab := a.Size, a.Bits
	bs, bb := b.Size, b.Bits
	if as != bs {
		return as < bs
	}
	return ab < bb
}

var _ sort.Interface = byCode(nil)

// }}}
