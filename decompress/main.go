package main

import (
	"bytes"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/fumin/order0"
	"github.com/fumin/order0/report"
	"github.com/pkg/errors"
)

var (
	backend    = flag.String("backend", "huffman", "entropy coder the input was compressed with, huffman or arithmetic")
	flagConfig = flag.String("c", "", `JSON configuration overriding -backend, e.g. {"Backend": "arithmetic"}`)
	verify     = flag.String("verify", "", "compare the decompressed output against this original file")
	verbose    = flag.Bool("verbose", false, "write a run report to stderr")
)

type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)

	cfg, err := config()
	if err != nil {
		log.Fatalf("%+v", err)
	}
	same, err := run(os.Stdout, os.Stdin, cfg)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	if !same {
		log.Printf("output differs from %s", *verify)
		os.Exit(1)
	}
}

func config() (order0.Config, error) {
	if *flagConfig != "" {
		return order0.ParseConfig(*flagConfig)
	}
	b, err := order0.ParseBackend(*backend)
	if err != nil {
		return order0.Config{}, errors.Wrap(err, "")
	}
	return order0.Config{Backend: b}, nil
}

// run decodes r to w. Nothing is written unless decoding succeeds.
// It reports false only when a -verify check ran and failed.
func run(w io.Writer, r io.Reader, cfg order0.Config) (bool, error) {
	cr := &countingReader{r: r}
	var buf bytes.Buffer
	start := time.Now()
	if err := order0.Decompress(&buf, cr, cfg); err != nil {
		return false, errors.Wrap(err, "")
	}
	elapsed := time.Since(start)
	data := buf.Bytes()

	if _, err := w.Write(data); err != nil {
		return false, errors.Wrap(err, "")
	}

	var verified *bool
	if *verify != "" {
		same, err := order0.SameContents(*verify, data)
		if err != nil {
			return false, errors.Wrap(err, "")
		}
		verified = &same
	}

	if *verbose {
		r := report.Run{
			Mode:       "decompress",
			Backend:    cfg.Backend.String(),
			InputSize:  cr.n,
			OutputSize: int64(len(data)),
			Elapsed:    elapsed,
			Verified:   verified,
		}
		if err := report.Write(os.Stderr, r); err != nil {
			return false, errors.Wrap(err, "")
		}
	}
	return verified == nil || *verified, nil
}
