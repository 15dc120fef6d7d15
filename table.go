package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Table is the encode-side view of a prefix code: the Code for each Symbol.
type Table struct {
	codes   []Code
	minSize byte
	maxSize byte
}

func newTable(codes []Code) *Table {
	t := &Table{codes: codes}
	first := true
	for _, hc := range codes {
		if hc.Size == 0 {
			continue
		}
		if first || t.minSize > hc.Size {
			t.minSize = hc.Size
		}
		if first || t.maxSize < hc.Size {
			t.maxSize = hc.Size
		}
		first = false
	}
	return t
}

// Encode returns the Code for a Symbol.
func (t *Table) Encode(symbol Symbol) Code {
	assert.Assertf(symbol >= 0 && int(symbol) < len(t.codes), "symbol %d out of range [0..%d)", symbol, len(t.codes))
	return t.codes[symbol]
}

// MinSize is the bit length of the shortest legal code.
func (t *Table) MinSize() byte {
	return t.minSize
}

// MaxSize is the bit length of the longest legal code.
func (t *Table) MaxSize() byte {
	return t.maxSize
}

// MaxSymbol is the last Symbol in the code's alphabet.
//
// (The first Symbol in the code's alphabet is always 0.)
func (t *Table) MaxSymbol() Symbol {
	return Symbol(len(t.codes)) - 1
}

// SizeBySymbol returns an array containing the bit length for each Symbol in
// the alphabet.  This array can be transmitted to another party and used to
// reconstruct this Huffman code on the receiving end.
func (t *Table) SizeBySymbol() []byte {
	out := make([]byte, len(t.codes))
	for symbol, hc := range t.codes {
		out[symbol] = hc.Size
	}
	return out
}

// WeightedSize returns the total number of bits needed to code a message in
// which Symbol i occurs freqs[i] times.
func (t *Table) WeightedSize(freqs []uint32) uint64 {
	var total uint64
	for symbol, freq := range freqs {
		total += uint64(freq) * uint64(t.Encode(Symbol(symbol)).Size)
	}
	return total
}

// Equal returns true if both tables assign the same Code to every Symbol.
func (t *Table) Equal(other *Table) bool {
	if len(t.codes) != len(other.codes) {
		return false
	}
	for symbol := range t.codes {
		if t.codes[symbol] != other.codes[symbol] {
			return false
		}
	}
	return true
}

// Dump writes a programmer-readable debugging dump of the Table's current
// state to the given writer.
func (t *Table) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Table{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", t.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.maxSize)
	for symbol, hc := range t.codes {
		if hc.Size == 0 {
			fmt.Fprintf(&buf, "\tEncode(%d) = nil\n", symbol)
		} else {
			fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, hc)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
