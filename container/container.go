// Package container reads and writes the header shared by both backends:
//
//	offset  size  field
//	0       4     original length, int32 little-endian
//	4       1024  256 counts, int32 little-endian, in symbol order
//	1028    n     payload bits, most significant bit first
//
// A header whose first word is negative carries a format marker: the word
// holds the negated Format and the layout above follows it, shifted by four
// bytes. Headers without a marker are in the Legacy format.
package container

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/fumin/order0/model"
	"github.com/pkg/errors"
)

// HeaderSize is the size in bytes of an encoded Legacy Header.
const HeaderSize = 4 + 4*model.Symbols

// markerSize is the size of the format marker preceding a non-Legacy header.
const markerSize = 4

// ErrCorrupt is returned by Read when the header is malformed.
var ErrCorrupt = errors.New("corrupt container header")

// ErrTooLarge is returned by Write when the original length does not fit the
// length field.
var ErrTooLarge = errors.New("input too large for container")

// A Format tells the decoder how the coding model derives from the counts.
type Format int32

const (
	// Legacy payloads are coded with the counts as stored.
	Legacy Format = iota
	// Rescaled payloads are coded with the counts halved until their total
	// fits the arithmetic coder's precision.
	Rescaled
)

func (f Format) String() string {
	switch f {
	case Legacy:
		return "legacy"
	case Rescaled:
		return "rescaled"
	}
	return fmt.Sprintf("Format(%d)", int32(f))
}

// A Header describes the payload that follows it.
type Header struct {
	Format Format

	// Length is the number of bytes of the original input.
	Length int64

	// Freq holds the count of every byte value of the original input.
	Freq model.Table
}

// NewHeader returns the Legacy Header describing data.
func NewHeader(data []byte) Header {
	return Header{Length: int64(len(data)), Freq: model.Count(data)}
}

// Size returns the encoded size of h in bytes.
func (h Header) Size() int {
	if h.Format == Legacy {
		return HeaderSize
	}
	return markerSize + HeaderSize
}

// Write encodes h to w.
func Write(w io.Writer, h Header) error {
	if h.Format != Legacy && h.Format != Rescaled {
		return errors.Errorf("unknown format %v", h.Format)
	}
	if h.Length > math.MaxInt32 {
		return errors.Wrapf(ErrTooLarge, "length %d", h.Length)
	}
	buf := make([]byte, h.Size())
	b := buf
	if h.Format != Legacy {
		binary.LittleEndian.PutUint32(b, uint32(-int32(h.Format)))
		b = b[markerSize:]
	}
	binary.LittleEndian.PutUint32(b[0:], uint32(h.Length))
	for i, c := range h.Freq {
		if c > math.MaxInt32 {
			return errors.Wrapf(ErrTooLarge, "count %d of symbol %d", c, i)
		}
		binary.LittleEndian.PutUint32(b[4+4*i:], c)
	}
	if _, err := w.Write(buf); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return errors.Wrapf(ErrCorrupt, "short header: %v", err)
		}
		return errors.Wrap(err, "")
	}
	return nil
}

// Read decodes a Header from r.
// The original tool trusted the header blindly; Read rejects a short header,
// unknown formats, negative counts, and counts that do not add up to the
// length.
func Read(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if err := readFull(r, buf[:markerSize]); err != nil {
		return Header{}, err
	}

	var h Header
	if first := int32(binary.LittleEndian.Uint32(buf[0:])); first < 0 {
		if Format(-first) != Rescaled {
			return Header{}, errors.Wrapf(ErrCorrupt, "unknown format marker %d", first)
		}
		h.Format = Format(-first)
		if err := readFull(r, buf[:markerSize]); err != nil {
			return Header{}, err
		}
	}
	if err := readFull(r, buf[markerSize:]); err != nil {
		return Header{}, err
	}

	length := int32(binary.LittleEndian.Uint32(buf[0:]))
	if length < 0 {
		return Header{}, errors.Wrapf(ErrCorrupt, "negative length %d", length)
	}
	h.Length = int64(length)
	for i := range h.Freq {
		c := int32(binary.LittleEndian.Uint32(buf[4+4*i:]))
		if c < 0 {
			return Header{}, errors.Wrapf(ErrCorrupt, "negative count %d for symbol %d", c, i)
		}
		h.Freq[i] = uint32(c)
	}
	if total := h.Freq.Total(); total != uint64(h.Length) {
		return Header{}, errors.Wrapf(ErrCorrupt, "counts sum to %d, length is %d", total, h.Length)
	}
	return h, nil
}
