package main

import (
	"bytes"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/fumin/order0"
	"github.com/fumin/order0/container"
	"github.com/fumin/order0/huffman"
	"github.com/fumin/order0/model"
)

const gettysburg = "../testdata/gettysburg.txt"

func TestRun(t *testing.T) {
	for _, b := range []order0.Backend{order0.Huffman, order0.Arithmetic} {
		cfg := order0.Config{Backend: b}
		var out bytes.Buffer
		if err := run(&out, gettysburg, cfg); err != nil {
			t.Fatalf("%+v", err)
		}

		data, err := ioutil.ReadFile(gettysburg)
		if err != nil {
			t.Fatalf("%v", err)
		}
		expect, err := order0.Encode(data, cfg)
		if err != nil {
			t.Fatalf("%+v", err)
		}
		if !bytes.Equal(out.Bytes(), expect) {
			t.Errorf("%v: run output differs from Encode", b)
		}
	}
}

func TestDumpCodeTable(t *testing.T) {
	data, err := ioutil.ReadFile(gettysburg)
	if err != nil {
		t.Fatalf("%v", err)
	}
	c, err := order0.Encode(data, order0.DefaultConfig())
	if err != nil {
		t.Fatalf("%+v", err)
	}
	h, err := container.Read(bytes.NewReader(c))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	var got strings.Builder
	if err := dumpCodeTable(&got, h); err != nil {
		t.Fatalf("%+v", err)
	}

	freq := model.Count(data)
	tree := huffman.NewTree(&freq)
	var expect strings.Builder
	if _, err := tree.Dump(&expect); err != nil {
		t.Fatalf("%+v", err)
	}
	if _, err := huffman.NewCodeTable(tree).Dump(&expect); err != nil {
		t.Fatalf("%+v", err)
	}
	if got.String() != expect.String() {
		t.Errorf("dump differs from the encoder's table:\n%s\nexpected:\n%s", got.String(), expect.String())
	}
}

func TestConfigDumpNeedsHuffman(t *testing.T) {
	defer func(b string, d bool) { *backend, *dump = b, d }(*backend, *dump)

	*dump = true
	*backend = "arithmetic"
	if _, err := config(); err == nil {
		t.Errorf("expected -dump to be rejected for the arithmetic backend")
	}
	*backend = "huffman"
	if _, err := config(); err != nil {
		t.Errorf("%+v", err)
	}
}
