package huffman

import (
	"io"
	"unicode/utf8"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// StringCodec codes a string as the sequence of its runes, each coded
// independently, preceded by the rune count.
//
// A StringCodec is immutable and safe for concurrent use.
type StringCodec struct {
	engine *Engine[rune]
}

// NewStringCodec wraps an existing Engine, which may be shared with a
// CharacterCodec.
func NewStringCodec(e *Engine[rune]) *StringCodec {
	assert.Assertf(e != nil, "NewStringCodec called with nil Engine")
	return &StringCodec{engine: e}
}

// BuildStringCodec builds the optimal code for the character frequencies f.
func BuildStringCodec(f *Frequencies[rune], conf *Config) (*StringCodec, error) {
	e, err := Build[rune](f, RuneMarshaler{}, conf)
	if err != nil {
		return nil, err
	}
	return NewStringCodec(e), nil
}

// TrainStringCodec builds the optimal code for the characters of samples.
func TrainStringCodec(samples []string, conf *Config) (*StringCodec, error) {
	c, err := TrainCharacterCodec(samples, conf)
	if err != nil {
		return nil, err
	}
	return NewStringCodec(c.Engine()), nil
}

// LoadStringCodec reconstructs a codec from its canonical table.
func LoadStringCodec(t CanonicalTable[rune], conf *Config) (*StringCodec, error) {
	e, err := Load[rune](t, RuneMarshaler{}, conf)
	if err != nil {
		return nil, err
	}
	return NewStringCodec(e), nil
}

// Engine returns the underlying Engine.
func (c *StringCodec) Engine() *Engine[rune] {
	return c.engine
}

// CanonicalTable returns the persisted form of the code.
func (c *StringCodec) CanonicalTable() CanonicalTable[rune] {
	return c.engine.CanonicalTable()
}

// MarshalBinary returns the binary form of the canonical table.
func (c *StringCodec) MarshalBinary() ([]byte, error) {
	return c.engine.MarshalBinary()
}

// Encode codes s, which must be valid UTF-8.
func (c *StringCodec) Encode(s string) ([]byte, int64, error) {
	bw := NewBitWriter()
	return finish(bw, c.EncodeTo(bw, s))
}

// EncodeTo writes the rune count of s followed by the Code of each rune.
func (c *StringCodec) EncodeTo(bw *BitWriter, s string) error {
	if !utf8.ValidString(s) {
		return errors.Wrapf(ErrUnknownSymbol, "string %q is not valid UTF-8", s)
	}
	return writeSequence(c.engine, bw, []rune(s))
}

// Decode decodes a string from exactly bitLen bits of buf.
func (c *StringCodec) Decode(buf []byte, bitLen int64) (string, error) {
	br := NewBitReader(buf, bitLen)
	s, err := c.DecodeFrom(br)
	if err != nil {
		return "", err
	}
	if err := checkDrained(br); err != nil {
		return "", err
	}
	return s, nil
}

// DecodeFrom reads one string from br.
func (c *StringCodec) DecodeFrom(br *BitReader) (string, error) {
	runes, err := readSequence(c.engine, br)
	if err != nil {
		return "", err
	}
	return string(runes), nil
}

// Dump writes a programmer-readable debugging dump of the code.
func (c *StringCodec) Dump(w io.Writer) (int64, error) {
	return dumpRunes(w, "StringCodec", c.engine)
}
