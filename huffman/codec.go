package huffman

import (
	"github.com/fumin/order0/bitio"
	"github.com/pkg/errors"
)

// ErrInvalidCode is returned by Decode when the payload leads to a node
// that does not stand for any symbol.
var ErrInvalidCode = errors.New("invalid Huffman code in payload")

// ErrTruncated is returned by Decode when the payload ends before all
// symbols have been decoded.
var ErrTruncated = errors.New("truncated Huffman payload")

// maxPrealloc bounds the output buffer allocated up front, since the size
// comes from an untrusted header.
const maxPrealloc = 1 << 20

// Encode writes the code of every byte of data to w. The caller flushes w,
// which zero-pads the final byte.
func Encode(w *bitio.Writer, data []byte, ct *CodeTable) error {
	for i, b := range data {
		hc := ct.Encode(b)
		if hc.Size() == 0 {
			return errors.Errorf("symbol %d at offset %d has no code", b, i)
		}
		if err := w.WriteBits(hc); err != nil {
			return errors.Wrap(err, "")
		}
	}
	return nil
}

// Decode reads exactly originalSize symbols from r by walking t from the
// root, one bit per step. Padding after the last symbol is never read as
// another symbol.
func Decode(r *bitio.Reader, t *Tree, originalSize int64) ([]byte, error) {
	prealloc := originalSize
	if prealloc > maxPrealloc {
		prealloc = maxPrealloc
	}
	out := make([]byte, 0, prealloc)
	if originalSize == 0 {
		return out, nil
	}
	if t.Root() == NoNode {
		return nil, errors.Wrapf(ErrInvalidCode, "empty tree for %d symbols", originalSize)
	}

	root := t.Node(t.Root())
	node := root
	for int64(len(out)) < originalSize {
		bit, err := r.ReadBit()
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		if r.Overrun() > 0 {
			return nil, errors.Wrapf(ErrTruncated, "payload ended after %d of %d symbols", len(out), originalSize)
		}

		if bit == 0 {
			node = t.Node(node.Left)
		} else {
			node = t.Node(node.Right)
		}
		if !node.IsLeaf() {
			continue
		}
		if node.Dummy {
			return nil, errors.Wrapf(ErrInvalidCode, "dummy leaf reached at symbol %d", len(out))
		}
		out = append(out, node.Symbol)
		node = root
	}
	return out, nil
}
