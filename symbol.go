package huffman

import (
	"math"
)

// Symbol is the index of an entry in an Engine's alphabet, in enumeration
// order.  Negative symbols are not valid.
type Symbol int32

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(math.MaxInt32)

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)
