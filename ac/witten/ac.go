// Package witten implements the arithmetic coding algorithm described in
// Witten, Ian H.; Neal, Radford M.; Cleary, John G. (June 1987). "Arithmetic Coding for Data Compression". Communications of the ACM 30 (6): 520–540.
//
// The code value is 16 bits wide and the model is static: symbol frequencies
// are fixed for the whole message.
package witten

import (
	"github.com/fumin/order0/ac"
	"github.com/fumin/order0/bitio"
	"github.com/fumin/order0/model"
	"github.com/pkg/errors"
)

const (
	codeValueBits = 16
	topValue      = (uint64(1) << codeValueBits) - 1
	firstQtr      = topValue/4 + 1
	half          = 2 * firstQtr
	thirdQtr      = 3 * firstQtr

	// MaxTotal is the largest total frequency for which every symbol with a
	// positive count is guaranteed a non-empty interval. After
	// renormalization the interval is always wider than a quarter of the
	// code range.
	MaxTotal = firstQtr - 1

	// maxPrealloc bounds the output buffer Decode allocates up front, since
	// originalSize comes from an untrusted header.
	maxPrealloc = 1 << 20
)

// ErrPrecision is returned by Encode when a symbol's interval narrows to
// nothing, which only happens for totals above MaxTotal on an unrescaled
// model.
var ErrPrecision = errors.New("total frequency exceeds coder precision")

// NewModel returns the cumulative model the coder uses for freq.
//
// With rescale set, a table whose total exceeds MaxTotal is shrunk with
// model.Table.Rescale. The rescaled table is a pure function of freq, so
// decoders rebuild it from the persisted counts. Tables within MaxTotal are
// always used verbatim.
func NewModel(freq *model.Table, rescale bool) *model.Cumulative {
	if rescale && freq.Total() > MaxTotal {
		scaled := freq.Rescale(MaxTotal)
		return scaled.Cumulative()
	}
	return freq.Cumulative()
}

// An arithmeticEncoder carries the state required by an encoder.
type arithmeticEncoder struct {
	low   uint64
	high  uint64
	fbits uint64
	dst   *bitio.Writer
}

func newAE(dst *bitio.Writer) *arithmeticEncoder {
	ae := &arithmeticEncoder{dst: dst}
	ae.high = topValue
	return ae
}

func bitPlusFollow(ae *arithmeticEncoder, bit int) error {
	if err := ae.dst.WriteBit(bit); err != nil {
		return err
	}
	for ae.fbits > 0 {
		if err := ae.dst.WriteBit(1 - bit); err != nil {
			return err
		}
		ae.fbits -= 1
	}
	return nil
}

// Encode performs arithmetic coding on data given a static model, writing the coded bits to dst.
// Encode emits the final disambiguating bits but does not flush dst; the caller does, padding the last byte with zeros.
func Encode(dst *bitio.Writer, data []byte, m ac.Model) error {
	ae := newAE(dst)
	total := m.TotalFreq()
	for _, symbol := range data {
		symLow, symHigh := m.Freq(int(symbol))
		if symHigh == symLow {
			return errors.Errorf("symbol %d has zero frequency", symbol)
		}

		// narrow range
		arange := (ae.high - ae.low) + 1
		lowOffset, highOffset := arange*symLow/total, arange*symHigh/total
		if lowOffset == highOffset {
			return errors.Wrapf(ErrPrecision, "symbol %d vanishes from [%d, %d], total %d", symbol, ae.low, ae.high, total)
		}
		ae.high = ae.low + highOffset - 1
		ae.low = ae.low + lowOffset

		for {
			if ae.high < half {
				if err := bitPlusFollow(ae, 0); err != nil {
					return errors.Wrap(err, "")
				}
			} else if ae.low >= half {
				if err := bitPlusFollow(ae, 1); err != nil {
					return errors.Wrap(err, "")
				}
				ae.low -= half
				ae.high -= half
			} else if ae.low >= firstQtr && ae.high < thirdQtr {
				ae.fbits += 1
				ae.low -= firstQtr
				ae.high -= firstQtr
			} else {
				break
			}

			ae.low = 2 * ae.low
			ae.high = 2*ae.high + 1
		}
	}

	ae.fbits += 1
	bit := 1
	if ae.low < firstQtr {
		bit = 0
	}
	if err := bitPlusFollow(ae, bit); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

type arithmeticDecoder struct {
	low   uint64
	high  uint64
	value uint64
	src   *bitio.Reader
}

func newAD(src *bitio.Reader) *arithmeticDecoder {
	ad := &arithmeticDecoder{src: src}
	ad.high = topValue
	return ad
}

// readDecBit reads the next bit into the code value. Past the end of the
// payload zeros are shifted in; a valid payload never needs more than
// codeValueBits-2 of them.
func (ad *arithmeticDecoder) readDecBit() error {
	inb, err := ad.src.ReadBit()
	if err != nil {
		return err
	}
	if ad.src.Overrun() > codeValueBits-2 {
		return ac.ErrDecodeInsufficientBits
	}
	ad.value = 2*ad.value + uint64(inb)
	return nil
}

// Decode decodes originalSize symbols encoded by Encode.
// Decode expects that m is the exact same probabilistic model used in Encode.
// ErrDecodeInsufficientBits is returned if src runs dry before originalSize symbols have been decoded.
func Decode(src *bitio.Reader, m ac.Model, originalSize int64) ([]byte, error) {
	ad := newAD(src)
	for i := 1; i <= codeValueBits; i++ {
		if err := ad.readDecBit(); err != nil {
			return nil, errors.Wrap(err, "")
		}
	}

	prealloc := originalSize
	if prealloc > maxPrealloc {
		prealloc = maxPrealloc
	}
	dst := make([]byte, 0, prealloc)
	total := m.TotalFreq()
	if total == 0 && originalSize > 0 {
		return nil, errors.Errorf("empty model for %d symbols", originalSize)
	}
	for i := int64(0); i < originalSize; i++ {
		arange := (ad.high - ad.low) + 1
		cumFreq := ((ad.value-ad.low+1)*total - 1) / arange
		symbol := m.Find(cumFreq)
		dst = append(dst, byte(symbol))

		// narrow range
		symLow, symHigh := m.Freq(symbol)
		ad.high = ad.low + arange*symHigh/total - 1
		ad.low = ad.low + arange*symLow/total

		// rescale interval
		for {
			if ad.high < half {
				// do nothing
			} else if ad.low >= half {
				ad.value -= half
				ad.low -= half
				ad.high -= half
			} else if ad.low >= firstQtr && ad.high < thirdQtr {
				ad.value -= firstQtr
				ad.low -= firstQtr
				ad.high -= firstQtr
			} else {
				break
			}

			ad.low = 2 * ad.low
			ad.high = 2*ad.high + 1
			if err := ad.readDecBit(); err != nil {
				return nil, errors.Wrap(err, "")
			}
		}
	}
	return dst, nil
}
