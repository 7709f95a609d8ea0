package model

import (
	"testing"
)

func TestCount(t *testing.T) {
	table := Count([]byte("abracadabra"))
	expect := map[byte]uint32{'a': 5, 'b': 2, 'r': 2, 'c': 1, 'd': 1}
	for symbol, c := range table {
		if c != expect[byte(symbol)] {
			t.Errorf("symbol %d: expected %d, got %d", symbol, expect[byte(symbol)], c)
		}
	}
	if table.Total() != 11 {
		t.Errorf("expected total 11, got %d", table.Total())
	}
	if table.Distinct() != 5 {
		t.Errorf("expected 5 distinct symbols, got %d", table.Distinct())
	}
}

func TestCountEmpty(t *testing.T) {
	table := Count(nil)
	if table.Total() != 0 || table.Distinct() != 0 {
		t.Errorf("expected empty table, got total %d distinct %d", table.Total(), table.Distinct())
	}
}

func TestCumulative(t *testing.T) {
	var table Table
	table[1] = 10
	table[2] = 20
	table[4] = 30
	c := table.Cumulative()

	if c.TotalFreq() != 60 {
		t.Errorf("expected total freq 60, got %d", c.TotalFreq())
	}
	expected := map[int][2]uint64{
		0: {0, 0},
		1: {0, 10},
		2: {10, 30},
		3: {30, 30},
		4: {30, 60},
		5: {60, 60},
	}
	for symbol, e := range expected {
		low, high := c.Freq(symbol)
		if low != e[0] || high != e[1] {
			t.Errorf("symbol %d: expected [%d, %d), got [%d, %d)", symbol, e[0], e[1], low, high)
		}
	}

	tests := []struct {
		cumFreq  uint64
		expected int
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{29, 2},
		{30, 4},
		{59, 4},
		{60, Symbols},
	}
	for _, tt := range tests {
		if symbol := c.Find(tt.cumFreq); symbol != tt.expected {
			t.Errorf("Find(%d) = %d, expected %d", tt.cumFreq, symbol, tt.expected)
		}
	}
}

func TestRescale(t *testing.T) {
	var table Table
	table['a'] = 100000
	table['b'] = 1
	table['c'] = 3
	scaled := table.Rescale(16383)

	if scaled.Total() > 16383 {
		t.Fatalf("total %d exceeds limit", scaled.Total())
	}
	if scaled.Distinct() != table.Distinct() {
		t.Errorf("rescaling dropped symbols: %d != %d", scaled.Distinct(), table.Distinct())
	}
	if scaled['b'] != 1 {
		t.Errorf("expected count 1 to stay 1, got %d", scaled['b'])
	}
	// 100000 halved three times rounding up.
	if scaled['a'] != 12500 {
		t.Errorf("expected 12500, got %d", scaled['a'])
	}
	if table['a'] != 100000 {
		t.Errorf("Rescale modified its receiver")
	}

	same := scaled.Rescale(16383)
	if same != scaled {
		t.Errorf("rescaling a table within the limit changed it")
	}
}
