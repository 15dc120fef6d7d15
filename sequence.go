package huffman

import (
	"github.com/pkg/errors"
)

// Sequences are framed with an explicit element count: a varint written
// eight bits per byte, followed by one Code per element.  An empty sequence
// is a single zero byte.

func writeSequence[T comparable](e *Engine[T], bw *BitWriter, syms []T) error {
	if err := bw.WriteUvarint(uint64(len(syms))); err != nil {
		return err
	}
	for i, sym := range syms {
		if err := e.EncodeSymbol(bw, sym); err != nil {
			return errors.WithMessagef(err, "element %d", i)
		}
	}
	return nil
}

func readSequence[T comparable](e *Engine[T], br *BitReader) ([]T, error) {
	count, err := br.ReadUvarint()
	if err != nil {
		return nil, err
	}

	// Every element takes at least one bit.
	if remaining := br.Remaining(); count > uint64(remaining) {
		return nil, errors.Wrapf(ErrCorruptStream, "count prefix %d exceeds the %d bits that follow", count, remaining)
	}

	out := make([]T, 0, count)
	for i := uint64(0); i < count; i++ {
		sym, err := e.DecodeSymbol(br)
		if err != nil {
			return nil, errors.WithMessagef(err, "element %d of %d", i, count)
		}
		out = append(out, sym)
	}
	return out, nil
}

// checkDrained rejects bits left over after a complete decode.
func checkDrained(br *BitReader) error {
	if br.Consumed() != br.BitLen() {
		return errors.Wrapf(ErrCorruptStream, "decoded %d of %d bits", br.Consumed(), br.BitLen())
	}
	return nil
}

func finish(bw *BitWriter, err error) ([]byte, int64, error) {
	if err != nil {
		return nil, 0, err
	}
	return bw.Finish()
}
