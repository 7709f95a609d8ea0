package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/fumin/order0/model"
)

// NoNode is the handle of an absent node.
const NoNode = -1

// A Node is an entry of a Tree's arena. Leaves have Left == Right == NoNode.
type Node struct {
	Weight uint64
	Symbol byte
	Left   int
	Right  int

	// Dummy marks the zero-weight sibling synthesized for a single-symbol
	// alphabet. It carries no symbol.
	Dummy bool
}

// IsLeaf reports whether n has no children.
func (n Node) IsLeaf() bool {
	return n.Left == NoNode && n.Right == NoNode
}

// A Tree is a Huffman tree stored as an arena of nodes addressed by index.
// The whole tree is released together once the Tree is unreachable.
type Tree struct {
	nodes []Node
	root  int
}

// NewTree builds the Huffman tree of freq.
// An all-zero table yields a Tree without a root.
func NewTree(freq *model.Table) *Tree {
	distinct := freq.Distinct()

	// A full binary tree with n leaves has 2n-1 nodes; the single-symbol
	// case adds the dummy leaf and the synthetic root.
	t := &Tree{nodes: make([]Node, 0, 2*distinct+1), root: NoNode}

	slots := make([]int, 0, distinct)
	for symbol, c := range freq {
		if c != 0 {
			slots = append(slots, t.add(Node{Weight: uint64(c), Symbol: byte(symbol), Left: NoNode, Right: NoNode}))
		}
	}

	switch len(slots) {
	case 0:
		return t
	case 1:
		leaf := slots[0]
		dummy := t.add(Node{Left: NoNode, Right: NoNode, Dummy: true})
		t.root = t.add(Node{Weight: t.nodes[leaf].Weight, Left: leaf, Right: dummy})
		return t
	}

	for n := len(slots); n > 1; {
		min1 := NoNode
		for i := 0; i < n; i++ {
			if min1 == NoNode || t.weight(slots[i]) < t.weight(slots[min1]) {
				min1 = i
			}
		}
		min2 := NoNode
		for i := 0; i < n; i++ {
			if i == min1 {
				continue
			}
			if min2 == NoNode || t.weight(slots[i]) < t.weight(slots[min2]) {
				min2 = i
			}
		}

		left, right := slots[min1], slots[min2]
		slots[min1] = t.add(Node{
			Weight: t.weight(left) + t.weight(right),
			Left:   left,
			Right:  right,
		})
		n--
		slots[min2] = slots[n]
	}
	t.root = slots[0]

	assert.Assertf(len(t.nodes) == 2*distinct-1, "tree with %d leaves has %d nodes", distinct, len(t.nodes))
	assert.Assertf(t.nodes[t.root].Weight == freq.Total(), "root weight %d != total %d", t.nodes[t.root].Weight, freq.Total())
	return t
}

func (t *Tree) add(n Node) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *Tree) weight(i int) uint64 {
	return t.nodes[i].Weight
}

// Root returns the handle of the root node, or NoNode for an empty tree.
func (t *Tree) Root() int {
	return t.root
}

// Node returns the node with handle i.
func (t *Tree) Node(i int) Node {
	return t.nodes[i]
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Dump writes a programmer-readable listing of the tree, one node per line
// in pre-order, indented by depth.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	if t.root != NoNode {
		t.dump(&buf, t.root, 1)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func (t *Tree) dump(buf *bytes.Buffer, i int, depth int) {
	for j := 0; j < depth; j++ {
		buf.WriteByte('\t')
	}
	n := t.nodes[i]
	switch {
	case n.Dummy:
		buf.WriteString("dummy\n")
	case n.IsLeaf():
		fmt.Fprintf(buf, "%d: %d\n", n.Symbol, n.Weight)
	default:
		fmt.Fprintf(buf, "%d\n", n.Weight)
		t.dump(buf, n.Left, depth+1)
		t.dump(buf, n.Right, depth+1)
	}
}
