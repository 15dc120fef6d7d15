package huffman

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// BitWriter packs bits into bytes, most significant bit first.  The final
// partial byte is padded with zero bits, so the exact number of bits written
// is reported separately by Finish.
//
// A BitWriter is not safe for concurrent use.
type BitWriter struct {
	buf      bytes.Buffer
	w        *bitio.CountWriter
	finished bool
}

// NewBitWriter returns an empty BitWriter.
func NewBitWriter() *BitWriter {
	bw := &BitWriter{}
	bw.w = bitio.NewCountWriter(&bw.buf)
	return bw
}

// WriteBit appends a single bit.
func (bw *BitWriter) WriteBit(bit bool) error {
	bw.checkOpen()
	return errors.Wrap(bw.w.WriteBool(bit), "huffman: failed to write bit")
}

// WriteBits appends the n low bits of v, most significant first.
func (bw *BitWriter) WriteBits(v uint64, n uint8) error {
	bw.checkOpen()
	assert.Assertf(n <= 64, "cannot write %d bits at once", n)
	if n == 0 {
		return nil
	}
	return errors.Wrapf(bw.w.WriteBits(v, n), "huffman: failed to write %d bits", n)
}

// WriteCode appends the bits of hc.
func (bw *BitWriter) WriteCode(hc Code) error {
	return bw.WriteBits(uint64(hc.Bits), hc.Size)
}

// WriteUvarint appends v as a varint, eight bits per byte of the varint.
func (bw *BitWriter) WriteUvarint(v uint64) error {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	for _, b := range tmp[:n] {
		if err := bw.WriteBits(uint64(b), 8); err != nil {
			return err
		}
	}
	return nil
}

// BitLen returns the number of bits written so far.
func (bw *BitWriter) BitLen() int64 {
	return bw.w.BitsCount
}

// Finish pads the final partial byte with zero bits and returns the bytes
// written along with the exact number of bits.  The BitWriter may not be
// used afterwards.
func (bw *BitWriter) Finish() ([]byte, int64, error) {
	bw.checkOpen()
	bw.finished = true
	bitLen := bw.w.BitsCount
	if err := bw.w.Close(); err != nil {
		return nil, 0, errors.Wrap(err, "huffman: failed to flush bits")
	}
	return bw.buf.Bytes(), bitLen, nil
}

func (bw *BitWriter) checkOpen() {
	assert.Assertf(!bw.finished, "BitWriter used after Finish")
}

// BitReader unpacks bits from bytes, most significant bit first, stopping at
// an exact bit length so that padding bits are never read as data.
//
// A BitReader is not safe for concurrent use.
type BitReader struct {
	r      *bitio.CountReader
	bitLen int64
	limit  int64
}

// NewBitReader returns a BitReader over the first bitLen bits of buf.  If buf
// holds fewer than bitLen bits, reads past the end of buf fail with
// ErrEndOfStream.
func NewBitReader(buf []byte, bitLen int64) *BitReader {
	assert.Assertf(bitLen >= 0, "negative bit length %d", bitLen)
	limit := bitLen
	if avail := int64(len(buf)) * 8; limit > avail {
		limit = avail
	}
	return &BitReader{
		r:      bitio.NewCountReader(bytes.NewReader(buf)),
		bitLen: bitLen,
		limit:  limit,
	}
}

// ReadBit returns the next bit.
func (br *BitReader) ReadBit() (bool, error) {
	if br.Remaining() < 1 {
		return false, br.endOfStream(1)
	}
	bit, err := br.r.ReadBool()
	if err != nil {
		return false, br.readError(err)
	}
	return bit, nil
}

// ReadBits returns the next n bits as the n low bits of the result, first
// bit most significant.  Nothing is consumed if fewer than n bits remain.
func (br *BitReader) ReadBits(n uint8) (uint64, error) {
	assert.Assertf(n <= 64, "cannot read %d bits at once", n)
	if n == 0 {
		return 0, nil
	}
	if br.Remaining() < int64(n) {
		return 0, br.endOfStream(n)
	}
	v, err := br.r.ReadBits(n)
	if err != nil {
		return 0, br.readError(err)
	}
	return v, nil
}

// ReadByte returns the next eight bits.  It implements io.ByteReader.
func (br *BitReader) ReadByte() (byte, error) {
	v, err := br.ReadBits(8)
	return byte(v), err
}

// ReadUvarint reads a varint written by BitWriter.WriteUvarint.
func (br *BitReader) ReadUvarint() (uint64, error) {
	v, err := binary.ReadUvarint(br)
	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, ErrEndOfStream):
		return 0, err
	default:
		return 0, errors.Wrapf(ErrCorruptStream, "malformed varint: %v", err)
	}
}

// Consumed returns the number of bits read so far.
func (br *BitReader) Consumed() int64 {
	return br.r.BitsCount
}

// Remaining returns the number of bits that can still be read.
func (br *BitReader) Remaining() int64 {
	return br.limit - br.r.BitsCount
}

// BitLen returns the bit length the BitReader was constructed with.
func (br *BitReader) BitLen() int64 {
	return br.bitLen
}

func (br *BitReader) endOfStream(n uint8) error {
	return errors.Wrapf(ErrEndOfStream, "need %d bits at bit %d of %d", n, br.r.BitsCount, br.bitLen)
}

func (br *BitReader) readError(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrapf(ErrEndOfStream, "input ends at bit %d of %d", br.r.BitsCount, br.bitLen)
	}
	return errors.Wrap(err, "huffman: failed to read bits")
}

var _ io.ByteReader = (*BitReader)(nil)
