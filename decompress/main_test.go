package main

import (
	"bytes"
	"io/ioutil"
	"testing"

	"github.com/fumin/order0"
)

const gettysburg = "../testdata/gettysburg.txt"

func TestRun(t *testing.T) {
	defer func(v string) { *verify = v }(*verify)

	data, err := ioutil.ReadFile(gettysburg)
	if err != nil {
		t.Fatalf("%v", err)
	}
	for _, b := range []order0.Backend{order0.Huffman, order0.Arithmetic} {
		cfg := order0.Config{Backend: b}
		c, err := order0.Encode(data, cfg)
		if err != nil {
			t.Fatalf("%+v", err)
		}

		*verify = gettysburg
		var out bytes.Buffer
		same, err := run(&out, bytes.NewReader(c), cfg)
		if err != nil {
			t.Fatalf("%+v", err)
		}
		if !same || !bytes.Equal(out.Bytes(), data) {
			t.Errorf("%v: decompressed output differs", b)
		}

		*verify = "../go.mod"
		out.Reset()
		same, err = run(&out, bytes.NewReader(c), cfg)
		if err != nil {
			t.Fatalf("%+v", err)
		}
		if same {
			t.Errorf("%v: verify against a different file passed", b)
		}
	}
}

func TestRunCorruptWritesNothing(t *testing.T) {
	c, err := order0.Encode([]byte("hello world"), order0.DefaultConfig())
	if err != nil {
		t.Fatalf("%+v", err)
	}
	var out bytes.Buffer
	if _, err := run(&out, bytes.NewReader(c[:len(c)-2]), order0.DefaultConfig()); err == nil {
		t.Fatalf("expected an error for a truncated container")
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output of %d bytes", out.Len())
	}
}
