package huffman

import (
	"fmt"
	"strconv"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// MaxCodeSize is the largest number of bits in any Code.
const MaxCodeSize = 32

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The first bit of the
	// sequence is the most significant of the Size low bits.
	Bits uint32
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint32) Code {
	return Code{Size: size, Bits: bits}
}

// ParseCode parses a string of '0' and '1' characters into a Code.
func ParseCode(str string) (Code, error) {
	if len(str) > MaxCodeSize {
		return Code{}, errors.Errorf("huffman: code %q is longer than %d bits", str, MaxCodeSize)
	}
	var hc Code
	for _, ch := range str {
		switch ch {
		case '0':
			hc = hc.Append(false)
		case '1':
			hc = hc.Append(true)
		default:
			return Code{}, errors.Errorf("huffman: invalid character %q in code %q", ch, str)
		}
	}
	return hc, nil
}

// Append returns the Code with one more bit at the end.
func (hc Code) Append(bit bool) Code {
	assert.Assertf(hc.Size < MaxCodeSize, "code %s already holds %d bits", hc, MaxCodeSize)
	hc.Bits <<= 1
	if bit {
		hc.Bits |= 1
	}
	hc.Size++
	return hc
}

// Bit returns the i'th bit of the sequence, counting from 0.
func (hc Code) Bit(i byte) bool {
	assert.Assertf(i < hc.Size, "bit index %d out of range for %d-bit code", i, hc.Size)
	return (hc.Bits>>(hc.Size-1-i))&1 != 0
}

// HasPrefix returns true if prefix is a prefix of this Code.  Every Code is a
// prefix of itself.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	return hc.Bits>>(hc.Size-prefix.Size) == prefix.Bits
}

// parent returns the Code with the last bit removed.
func (hc Code) parent() Code {
	return MakeCode(hc.Size-1, hc.Bits>>1)
}

// sibling returns the Code with the last bit flipped.
func (hc Code) sibling() Code {
	return MakeCode(hc.Size, hc.Bits^1)
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, hc.Bits))
}

var _ fmt.Stringer = Code{}
