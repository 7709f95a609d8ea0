// Package huffman implements the prefix coding backend: a Huffman tree built
// from an order-0 frequency table, the code table derived from its paths,
// and the bit-level payload encoder and decoder.
//
// Codes are taken directly from tree paths (0 = left, 1 = right); they are
// not canonicalized. The decoder rebuilds the very same tree from the
// persisted frequency table, so the construction below must stay bit-exact:
//
//   - the two lowest weights are chosen by a forward scan where the first
//     minimum wins, so ties resolve in symbol order;
//   - a single distinct symbol is paired with an unused zero-weight dummy
//     leaf, giving it the one-bit code "0".
//
// Tree shape only affects output size, never round-trip correctness.
//
// References:
//
//	<https://en.wikipedia.org/wiki/Huffman_coding>
package huffman
