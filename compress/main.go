package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/fumin/order0"
	"github.com/fumin/order0/container"
	"github.com/fumin/order0/huffman"
	"github.com/fumin/order0/report"
	"github.com/pkg/errors"
)

var (
	backend    = flag.String("backend", "huffman", "entropy coder, huffman or arithmetic")
	rescale    = flag.Bool("rescale", false, "let the arithmetic coder shrink counts beyond its precision; the output is unreadable by the legacy tool")
	flagConfig = flag.String("c", "", `JSON configuration overriding the other flags, e.g. {"Backend": "arithmetic"}`)
	dump       = flag.Bool("dump", false, "write the Huffman tree and code table to stderr")
	verbose    = flag.Bool("verbose", false, "write a run report to stderr")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] filename\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	name := flag.Arg(0)
	if name == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config()
	if err != nil {
		log.Fatalf("%+v", err)
	}
	if err := run(os.Stdout, name, cfg); err != nil {
		log.Fatalf("%+v", err)
	}
}

func config() (order0.Config, error) {
	cfg := order0.Config{Rescale: *rescale}
	if *flagConfig != "" {
		var err error
		if cfg, err = order0.ParseConfig(*flagConfig); err != nil {
			return order0.Config{}, errors.Wrap(err, "")
		}
	} else {
		b, err := order0.ParseBackend(*backend)
		if err != nil {
			return order0.Config{}, errors.Wrap(err, "")
		}
		cfg.Backend = b
	}
	if *dump && cfg.Backend != order0.Huffman {
		return order0.Config{}, errors.Errorf("-dump requires the huffman backend, got %v", cfg.Backend)
	}
	return cfg, nil
}

func run(w io.Writer, name string, cfg order0.Config) error {
	start := time.Now()
	var buf bytes.Buffer
	if err := order0.Compress(&buf, name, cfg); err != nil {
		return errors.Wrap(err, "")
	}
	elapsed := time.Since(start)
	c := buf.Bytes()

	h, err := container.Read(bytes.NewReader(c))
	if err != nil {
		return errors.Wrap(err, "")
	}
	if *dump {
		if err := dumpCodeTable(os.Stderr, h); err != nil {
			return errors.Wrap(err, "")
		}
	}

	if _, err := w.Write(c); err != nil {
		return errors.Wrap(err, "")
	}

	if *verbose {
		r := report.Run{
			Mode:       "compress",
			Backend:    cfg.Backend.String(),
			InputSize:  h.Length,
			OutputSize: int64(len(c)),
			Elapsed:    elapsed,
		}
		if err := report.Write(os.Stderr, r); err != nil {
			return errors.Wrap(err, "")
		}
	}
	return nil
}

// dumpCodeTable writes the tree and codes built from the counts stored in h,
// the same table the encoder used.
func dumpCodeTable(w io.Writer, h container.Header) error {
	tree := huffman.NewTree(&h.Freq)
	if _, err := tree.Dump(w); err != nil {
		return errors.Wrap(err, "")
	}
	if _, err := huffman.NewCodeTable(tree).Dump(w); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}
