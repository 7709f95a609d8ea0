package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestWrite(t *testing.T) {
	verified := true
	run := Run{
		Mode:       "decompress",
		Backend:    "huffman",
		InputSize:  1808,
		OutputSize: 1476,
		Elapsed:    1500 * time.Millisecond,
		Verified:   &verified,
	}

	var buf strings.Builder
	if err := Write(&buf, run); err != nil {
		t.Fatalf("%+v", err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Errorf("expected a trailing newline")
	}

	var got map[string]interface{}
	if err := json.Unmarshal([]byte(buf.String()), &got); err != nil {
		t.Fatalf("%v: %s", err, buf.String())
	}
	expect := map[string]interface{}{
		"mode":       "decompress",
		"backend":    "huffman",
		"inputSize":  float64(1808),
		"outputSize": float64(1476),
		"elapsed":    "1.500s",
		"verified":   true,
	}
	for k, v := range expect {
		if got[k] != v {
			t.Errorf("%s: expected %v, got %v", k, v, got[k])
		}
	}
	if ratio := got["ratio"].(float64); ratio < 1.22 || ratio > 1.23 {
		t.Errorf("unexpected ratio %f", ratio)
	}
}

func TestRatioEmpty(t *testing.T) {
	run := Run{Mode: "compress", InputSize: 0, OutputSize: 1028}
	if run.Ratio() != 0 {
		t.Errorf("expected 0, got %f", run.Ratio())
	}
	s, err := run.Struct()
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if _, ok := s.Fields["verified"]; ok {
		t.Errorf("verified should be absent when no check ran")
	}
}
