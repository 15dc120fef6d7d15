package huffman

import (
	"fmt"

	"github.com/pkg/errors"
)

// DecoderKind selects the algorithm an Engine uses to decode symbols.
type DecoderKind byte

const (
	// DecoderTree walks the code tree one bit at a time.
	DecoderTree DecoderKind = iota

	// DecoderTable consults a prefix lookup table, reading as many bits
	// at once as the shortest possible code allows.
	DecoderTable
)

// String returns the name of the DecoderKind.
func (kind DecoderKind) String() string {
	switch kind {
	case DecoderTree:
		return "tree"
	case DecoderTable:
		return "table"
	default:
		return fmt.Sprintf("DecoderKind(%d)", byte(kind))
	}
}

var _ fmt.Stringer = DecoderKind(0)

// Config holds the optional parameters of an Engine.  A nil *Config is
// equivalent to a zero Config.
type Config struct {
	// Decoder selects the decoding algorithm.  Both produce identical
	// results.
	Decoder DecoderKind

	// MaxCodeSize limits the length of any code.  Zero means MaxCodeSize.
	// Models whose optimal code would be longer are flattened until they
	// fit.
	MaxCodeSize byte
}

func (conf *Config) normalize() (Config, error) {
	var out Config
	if conf != nil {
		out = *conf
	}
	if out.MaxCodeSize == 0 {
		out.MaxCodeSize = MaxCodeSize
	}
	if out.MaxCodeSize > MaxCodeSize {
		return Config{}, errors.Errorf("huffman: Config.MaxCodeSize %d exceeds %d", out.MaxCodeSize, MaxCodeSize)
	}
	switch out.Decoder {
	case DecoderTree, DecoderTable:
	default:
		return Config{}, errors.Errorf("huffman: unknown Config.Decoder %v", out.Decoder)
	}
	return out, nil
}
