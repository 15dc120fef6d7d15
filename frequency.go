package huffman

import (
	"math"
)

// SymbolCount pairs a symbol with its number of occurrences.
type SymbolCount[T comparable] struct {
	Symbol T
	Count  uint32
}

// Frequencies counts the occurrences of each distinct symbol.  Symbols are
// remembered in order of first occurrence, which becomes the enumeration
// order of any Engine built from this model and breaks ties between equal
// counts.
//
// Frequencies is not safe for concurrent use.
type Frequencies[T comparable] struct {
	index  map[T]int
	counts []SymbolCount[T]
}

// NewFrequencies returns an empty frequency model.
func NewFrequencies[T comparable]() *Frequencies[T] {
	return &Frequencies[T]{index: make(map[T]int)}
}

// Record counts one occurrence of sym.
func (f *Frequencies[T]) Record(sym T) {
	f.RecordN(sym, 1)
}

// RecordN counts n occurrences of sym.  Counts saturate at math.MaxUint32.
// Recording zero occurrences of an unseen symbol does not add it.
func (f *Frequencies[T]) RecordN(sym T, n uint32) {
	if f.index == nil {
		f.index = make(map[T]int)
	}
	i, found := f.index[sym]
	if !found {
		if n == 0 {
			return
		}
		f.index[sym] = len(f.counts)
		f.counts = append(f.counts, SymbolCount[T]{sym, n})
		return
	}
	sum := f.counts[i].Count + n
	if sum < n {
		sum = math.MaxUint32
	}
	f.counts[i].Count = sum
}

// RecordAll counts one occurrence of each element of syms.
func (f *Frequencies[T]) RecordAll(syms []T) {
	for _, sym := range syms {
		f.Record(sym)
	}
}

// Len returns the number of distinct symbols recorded.
func (f *Frequencies[T]) Len() int {
	return len(f.counts)
}

// Count returns the number of occurrences recorded for sym.
func (f *Frequencies[T]) Count(sym T) uint32 {
	if i, found := f.index[sym]; found {
		return f.counts[i].Count
	}
	return 0
}

// Counts returns a copy of the recorded counts in order of first occurrence.
func (f *Frequencies[T]) Counts() []SymbolCount[T] {
	out := make([]SymbolCount[T], len(f.counts))
	copy(out, f.counts)
	return out
}
