// Package model implements the order-0 statistical model shared by the
// Huffman and arithmetic backends: a count per byte value collected in a
// single pass, and the cumulative table derived from it.
package model

// Symbols is the size of the alphabet.
const Symbols = 256

// A Table holds the number of occurrences of each byte value, indexed by
// the byte value itself.
type Table [Symbols]uint32

// Count tallies data. An empty input yields an all-zero Table.
func Count(data []byte) Table {
	var t Table
	for _, b := range data {
		t[b]++
	}
	return t
}

// Total returns the sum of all counts, which equals the length of the
// counted input.
func (t *Table) Total() uint64 {
	var total uint64
	for _, c := range t {
		total += uint64(c)
	}
	return total
}

// Distinct returns the number of symbols with a positive count.
func (t *Table) Distinct() int {
	n := 0
	for _, c := range t {
		if c != 0 {
			n++
		}
	}
	return n
}

// Rescale returns a copy of t whose Total does not exceed limit.
// Every pass halves the positive counts, rounding up so that no symbol
// present in t disappears. limit must be at least Symbols.
func (t *Table) Rescale(limit uint64) Table {
	scaled := *t
	for scaled.Total() > limit {
		for i, c := range scaled {
			if c != 0 {
				scaled[i] = c/2 + c%2
			}
		}
	}
	return scaled
}

// Cumulative returns the prefix sums of t.
func (t *Table) Cumulative() *Cumulative {
	c := &Cumulative{}
	for i, n := range t {
		c[i+1] = c[i] + uint64(n)
	}
	return c
}

// A Cumulative holds the running sums of a Table in symbol order:
// c[s+1] = c[s] + count[s]. Symbol s owns the half-open range [c[s], c[s+1]).
type Cumulative [Symbols + 1]uint64

// Freq returns the cumulative frequency range [low, high) of symbol.
func (c *Cumulative) Freq(symbol int) (low, high uint64) {
	return c[symbol], c[symbol+1]
}

// TotalFreq returns the sum of all frequencies.
func (c *Cumulative) TotalFreq() uint64 {
	return c[Symbols]
}

// Find returns the smallest symbol whose upper cumulative bound exceeds
// cumFreq. It scans linearly; the alphabet is small enough that a binary
// search does not pay off. Find returns Symbols when cumFreq is not below
// TotalFreq.
func (c *Cumulative) Find(cumFreq uint64) int {
	symbol := 0
	for ; symbol < Symbols; symbol++ {
		if cumFreq < c[symbol+1] {
			break
		}
	}
	return symbol
}
