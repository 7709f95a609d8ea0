// Package bitio adapts github.com/icza/bitio to the coders in this module.
//
// Bits are packed most significant bit first. A Writer pads its final
// partial byte with zero bits on the low side. A Reader treats exhausted
// input as an endless run of zero bits, and counts how many such bits were
// handed out so callers can tell a short payload from a complete one.
package bitio

import (
	"io"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// A Writer accumulates bits and emits them as whole bytes.
type Writer struct {
	w     *bitio.Writer
	count int64
}

// NewWriter returns a Writer emitting bytes to w.
// Complete bytes reach w as soon as their last bit is written.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bitio.NewWriter(w)}
}

// WriteBit appends the low bit of bit to the stream.
func (bw *Writer) WriteBit(bit int) error {
	if err := bw.w.WriteBool(bit&1 == 1); err != nil {
		return errors.Wrap(err, "")
	}
	bw.count++
	return nil
}

// WriteBits appends the given bits in order. Each element holds one bit.
func (bw *Writer) WriteBits(bits []byte) error {
	for _, b := range bits {
		if err := bw.WriteBit(int(b)); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of bits written so far, padding excluded.
func (bw *Writer) Count() int64 {
	return bw.count
}

// Flush pads the pending partial byte with zero bits and writes it out.
// No byte is written when the stream is already byte aligned.
func (bw *Writer) Flush() error {
	if _, err := bw.w.Align(); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

// A Reader hands out the bits of an underlying byte stream one at a time.
type Reader struct {
	r       *bitio.Reader
	overrun int64
}

// NewReader returns a Reader consuming r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bitio.NewReader(r)}
}

// ReadBit returns the next bit. Once the input is exhausted it returns 0 and
// counts the bit as overrun. Errors other than io.EOF are returned as is.
func (br *Reader) ReadBit() (int, error) {
	if br.overrun > 0 {
		br.overrun++
		return 0, nil
	}
	b, err := br.r.ReadBool()
	if err == io.EOF {
		br.overrun++
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "")
	}
	if b {
		return 1, nil
	}
	return 0, nil
}

// Overrun returns how many zero bits were synthesized past the end of input.
func (br *Reader) Overrun() int64 {
	return br.overrun
}
