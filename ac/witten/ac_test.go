package witten

import (
	"bytes"
	"encoding/hex"
	"io/ioutil"
	"math/rand"
	"testing"

	"github.com/fumin/order0/ac"
	"github.com/fumin/order0/bitio"
	"github.com/fumin/order0/model"
	"github.com/pkg/errors"
)

func encode(t *testing.T, x []byte, rescale bool) ([]byte, *model.Cumulative) {
	freq := model.Count(x)
	m := NewModel(&freq, rescale)
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	if err := Encode(w, x, m); err != nil {
		t.Fatalf("%+v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("%+v", err)
	}
	return buf.Bytes(), m
}

func testEncode(t *testing.T, x []byte, rescale bool) []byte {
	encoded, m := encode(t, x, rescale)
	t.Logf("encoded bits: %d, original bits: %d", 8*len(encoded), 8*len(x))

	decoded, err := Decode(bitio.NewReader(bytes.NewReader(encoded)), m, int64(len(x)))
	if err != nil {
		t.Fatalf("%+v", err)
	}

	// Check that the decoded result is correct.
	if len(x) != len(decoded) {
		t.Fatalf("%d != %d", len(x), len(decoded))
	}
	for i, b := range x {
		if decoded[i] != b {
			t.Errorf("%d: %d != %d", i, b, decoded[i])
		}
	}
	return encoded
}

func TestEncodeGettysburg(t *testing.T) {
	contents, err := ioutil.ReadFile("../../testdata/gettysburg.txt")
	if err != nil {
		t.Fatalf("%v", err)
	}
	encoded := testEncode(t, contents, false)
	if len(encoded) != 768 {
		t.Errorf("expected 768 bytes, got %d", len(encoded))
	}
}

func TestEncodeGolden(t *testing.T) {
	tests := []struct {
		input  []byte
		expect string
	}{
		{[]byte("aaaaaaaab"), "5c"},
		{[]byte("abracadabra"), "475e68"},
		{[]byte("hello world"), "4b2132f5"},
		// A single symbol never narrows the interval; only the final
		// disambiguating bits "01" are emitted.
		{bytes.Repeat([]byte{'a'}, 10), "40"},
		{[]byte{0, 0, 0}, "40"},
		{bytes.Repeat([]byte{'a'}, 100000), "40"},
	}
	for _, tc := range tests {
		encoded := testEncode(t, tc.input, false)
		if got := hex.EncodeToString(encoded); got != tc.expect {
			t.Errorf("%.20q: expected %s, got %s", tc.input, tc.expect, got)
		}
	}
}

func TestEncodeFullAlphabet(t *testing.T) {
	x := make([]byte, model.Symbols)
	for i := range x {
		x[i] = byte(i)
	}
	encoded := testEncode(t, x, false)
	if len(encoded) != 257 {
		t.Errorf("expected 257 bytes, got %d", len(encoded))
	}
}

func TestEncodeRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	for trial := 0; trial < 100; trial++ {
		alphabet := make([]byte, 1+rng.Intn(model.Symbols))
		rng.Read(alphabet)
		x := make([]byte, 1+rng.Intn(300))
		for i := range x {
			x[i] = alphabet[rng.Intn(len(alphabet))]
		}
		testEncode(t, x, false)
	}
}

// TestEncodeRescaled covers totals above MaxTotal, where the table is
// rescaled before coding.
func TestEncodeRescaled(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, n := range []int{int(MaxTotal), int(MaxTotal) + 1, 40000, 200000} {
		x := make([]byte, n)
		for i := range x {
			switch rng.Intn(3) {
			case 0:
				x[i] = byte(rng.Intn(model.Symbols))
			default:
				x[i] = 'a' + byte(rng.Intn(2))
			}
		}
		testEncode(t, x, true)
	}
}

// TestEncodeLargeTotal codes totals above MaxTotal with the counts as
// stored, which works as long as no symbol's interval vanishes.
func TestEncodeLargeTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(20000))
	x := make([]byte, 20000)
	for i := range x {
		x[i] = 'a' + byte(rng.Intn(4))
	}
	testEncode(t, x, false)
}

func TestPrecision(t *testing.T) {
	// The rare symbol comes first in symbol order, so its interval
	// [0, 65536*1/200000) is empty.
	x := append([]byte{'a'}, bytes.Repeat([]byte{'b'}, 199999)...)
	freq := model.Count(x)
	var buf bytes.Buffer
	err := Encode(bitio.NewWriter(&buf), x, NewModel(&freq, false))
	if !errors.Is(err, ErrPrecision) {
		t.Errorf("expected ErrPrecision, got %v", err)
	}
	testEncode(t, x, true)

	m := NewModel(&freq, true)
	if m.TotalFreq() > MaxTotal {
		t.Errorf("rescaled total %d exceeds %d", m.TotalFreq(), MaxTotal)
	}

	freq = model.Count(make([]byte, MaxTotal))
	if got := NewModel(&freq, true).TotalFreq(); got != MaxTotal {
		t.Errorf("table at MaxTotal was rescaled to %d", got)
	}
}

func TestDecodeInsufficientBits(t *testing.T) {
	contents, err := ioutil.ReadFile("../../testdata/gettysburg.txt")
	if err != nil {
		t.Fatalf("%v", err)
	}
	encoded, m := encode(t, contents, false)

	_, err = Decode(bitio.NewReader(bytes.NewReader(encoded[:len(encoded)/2])), m, int64(len(contents)))
	if !errors.Is(err, ac.ErrDecodeInsufficientBits) {
		t.Errorf("expected ErrDecodeInsufficientBits, got %v", err)
	}
}

func TestDecodeEmptyModel(t *testing.T) {
	var freq model.Table
	_, err := Decode(bitio.NewReader(bytes.NewReader(nil)), freq.Cumulative(), 1)
	if err == nil {
		t.Errorf("expected an error for an empty model")
	}
}
