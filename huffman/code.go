package huffman

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/chronos-tachyon/assert"
	"github.com/fumin/order0/model"
)

// MaxCodeSize is the longest code a byte alphabet can produce.
const MaxCodeSize = model.Symbols

// Code is a sequence of bits in root-to-leaf order, one bit per element.
type Code []byte

// Size returns the number of bits in hc.
func (hc Code) Size() int {
	return len(hc)
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	buf := make([]byte, len(hc))
	for i, b := range hc {
		buf[i] = '0' + b
	}
	return strconv.Quote(string(buf))
}

var _ fmt.Stringer = Code{}

// A CodeTable maps every symbol to its Code. Symbols absent from the tree
// have an empty Code.
type CodeTable [model.Symbols]Code

// NewCodeTable derives the code of every leaf of t by a depth-first walk.
// The dummy leaf of a single-symbol tree receives no code.
func NewCodeTable(t *Tree) *CodeTable {
	ct := &CodeTable{}
	if t.Root() == NoNode {
		return ct
	}
	path := make([]byte, 0, MaxCodeSize)
	ct.walk(t, t.Root(), path)
	return ct
}

func (ct *CodeTable) walk(t *Tree, i int, path []byte) {
	n := t.Node(i)
	if n.IsLeaf() {
		if n.Dummy {
			return
		}
		assert.Assertf(len(path) >= 1 && len(path) <= MaxCodeSize, "code for symbol %d has %d bits", n.Symbol, len(path))
		code := make(Code, len(path))
		copy(code, path)
		ct[n.Symbol] = code
		return
	}
	ct.walk(t, n.Left, append(path, 0))
	ct.walk(t, n.Right, append(path, 1))
}

// Encode returns the code of symbol.
func (ct *CodeTable) Encode(symbol byte) Code {
	return ct[symbol]
}

// MinSize is the bit length of the shortest code, or 0 if there is none.
func (ct *CodeTable) MinSize() int {
	minSize := 0
	for _, hc := range ct {
		if hc.Size() != 0 && (minSize == 0 || hc.Size() < minSize) {
			minSize = hc.Size()
		}
	}
	return minSize
}

// MaxSize is the bit length of the longest code.
func (ct *CodeTable) MaxSize() int {
	maxSize := 0
	for _, hc := range ct {
		if hc.Size() > maxSize {
			maxSize = hc.Size()
		}
	}
	return maxSize
}

// PayloadBits returns the number of bits needed to encode an input with the
// frequencies freq, padding excluded.
func (ct *CodeTable) PayloadBits(freq *model.Table) int64 {
	var bits int64
	for symbol, c := range freq {
		bits += int64(c) * int64(ct[symbol].Size())
	}
	return bits
}

// Dump writes a programmer-readable debugging dump of the code table to the
// given writer. Symbols without a code are omitted.
func (ct *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", ct.MinSize())
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", ct.MaxSize())
	for symbol, hc := range ct {
		if hc.Size() == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, hc)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
