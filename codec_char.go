package huffman

import (
	"io"
	"strconv"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// CharacterCodec codes one rune at a time.
//
// A CharacterCodec is immutable and safe for concurrent use.
type CharacterCodec struct {
	engine *Engine[rune]
}

// NewCharacterCodec wraps an existing Engine.
func NewCharacterCodec(e *Engine[rune]) *CharacterCodec {
	assert.Assertf(e != nil, "NewCharacterCodec called with nil Engine")
	return &CharacterCodec{engine: e}
}

// BuildCharacterCodec builds the optimal code for the character frequencies f.
func BuildCharacterCodec(f *Frequencies[rune], conf *Config) (*CharacterCodec, error) {
	e, err := Build[rune](f, RuneMarshaler{}, conf)
	if err != nil {
		return nil, err
	}
	return NewCharacterCodec(e), nil
}

// TrainCharacterCodec builds the optimal code for the characters of samples.
func TrainCharacterCodec(samples []string, conf *Config) (*CharacterCodec, error) {
	f := NewFrequencies[rune]()
	for _, s := range samples {
		for _, r := range s {
			f.Record(r)
		}
	}
	return BuildCharacterCodec(f, conf)
}

// LoadCharacterCodec reconstructs a codec from its canonical table.
func LoadCharacterCodec(t CanonicalTable[rune], conf *Config) (*CharacterCodec, error) {
	e, err := Load[rune](t, RuneMarshaler{}, conf)
	if err != nil {
		return nil, err
	}
	return NewCharacterCodec(e), nil
}

// UnmarshalCharacterCodec reconstructs a codec from the binary form returned
// by MarshalBinary.
func UnmarshalCharacterCodec(data []byte, conf *Config) (*CharacterCodec, error) {
	t, n, err := ReadCanonicalTable[rune](data, RuneMarshaler{})
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, errors.Wrapf(ErrTableMismatch, "%d trailing bytes after table", len(data)-n)
	}
	return LoadCharacterCodec(t, conf)
}

// Engine returns the underlying Engine.
func (c *CharacterCodec) Engine() *Engine[rune] {
	return c.engine
}

// CanonicalTable returns the persisted form of the code.
func (c *CharacterCodec) CanonicalTable() CanonicalTable[rune] {
	return c.engine.CanonicalTable()
}

// MarshalBinary returns the binary form of the canonical table.
func (c *CharacterCodec) MarshalBinary() ([]byte, error) {
	return c.engine.MarshalBinary()
}

// Encode codes a single rune.
func (c *CharacterCodec) Encode(r rune) ([]byte, int64, error) {
	bw := NewBitWriter()
	return finish(bw, c.EncodeTo(bw, r))
}

// EncodeTo writes the Code for r to bw.
func (c *CharacterCodec) EncodeTo(bw *BitWriter, r rune) error {
	return c.engine.EncodeSymbol(bw, r)
}

// Decode decodes a single rune from exactly bitLen bits of buf.
func (c *CharacterCodec) Decode(buf []byte, bitLen int64) (rune, error) {
	br := NewBitReader(buf, bitLen)
	r, err := c.DecodeFrom(br)
	if err != nil {
		return 0, err
	}
	if err := checkDrained(br); err != nil {
		return 0, err
	}
	return r, nil
}

// DecodeFrom reads one Code from br.
func (c *CharacterCodec) DecodeFrom(br *BitReader) (rune, error) {
	return c.engine.DecodeSymbol(br)
}

// Dump writes a programmer-readable debugging dump of the code.
func (c *CharacterCodec) Dump(w io.Writer) (int64, error) {
	return dumpRunes(w, "CharacterCodec", c.engine)
}

func dumpRunes(w io.Writer, name string, e *Engine[rune]) (int64, error) {
	var buf []byte
	buf = append(buf, name...)
	buf = append(buf, "{\n"...)
	for index, r := range e.symbols {
		buf = append(buf, "\tEncode("...)
		buf = strconv.AppendQuoteRune(buf, r)
		buf = append(buf, ") = "...)
		buf = append(buf, e.table.Encode(Symbol(index)).String()...)
		buf = append(buf, '\n')
	}
	buf = append(buf, "}\n"...)
	n, err := w.Write(buf)
	return int64(n), err
}
