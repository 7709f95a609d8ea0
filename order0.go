// Package order0 provides lossless compression of byte sequences with an
// order-0 model: symbol counts are collected once over the whole input and
// persisted ahead of the payload, so the decoder rebuilds the exact same
// model without seeing the original bytes.
//
// Two entropy coders share the model and the container layout: a Huffman
// prefix coder and a 16-bit arithmetic coder.
//
// Below is an example of compressing Lincoln's Gettysburg address:
//    go run compress/main.go -backend arithmetic testdata/gettysburg.txt > gettys.ac
//    cat gettys.ac | go run decompress/main.go -backend arithmetic > gettys.dac
//    diff testdata/gettysburg.txt gettys.dac
package order0

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fumin/order0/ac"
	"github.com/fumin/order0/ac/witten"
	"github.com/fumin/order0/bitio"
	"github.com/fumin/order0/container"
	"github.com/fumin/order0/huffman"
	"github.com/pkg/errors"
)

// A Backend selects the entropy coder.
type Backend int

const (
	Huffman Backend = iota
	Arithmetic
)

var backendNames = map[Backend]string{
	Huffman:    "huffman",
	Arithmetic: "arithmetic",
}

func (b Backend) String() string {
	if name, ok := backendNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// ParseBackend returns the Backend named s.
func ParseBackend(s string) (Backend, error) {
	for b, name := range backendNames {
		if strings.EqualFold(s, name) {
			return b, nil
		}
	}
	return 0, errors.Errorf("unknown backend %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (b Backend) MarshalText() ([]byte, error) {
	if _, ok := backendNames[b]; !ok {
		return nil, errors.Errorf("unknown backend %d", int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Backend) UnmarshalText(text []byte) error {
	parsed, err := ParseBackend(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Config controls a single Encode or Decode call.
type Config struct {
	Backend Backend

	// Rescale lets the arithmetic backend shrink frequency tables whose
	// total exceeds witten.MaxTotal. Such containers carry the
	// container.Rescaled format marker and are unreadable by the legacy
	// tool. Without it, an input whose rarest symbols fall below the
	// coder's precision fails with witten.ErrPrecision.
	// Decode ignores it and follows the container's format instead.
	Rescale bool
}

// DefaultConfig returns the Config used when none is given.
func DefaultConfig() Config {
	return Config{Backend: Huffman}
}

// ParseConfig overlays the JSON object s onto DefaultConfig, e.g.
// {"Backend": "arithmetic", "Rescale": true}.
func ParseConfig(s string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(s) == "" {
		return cfg, nil
	}
	if err := json.Unmarshal([]byte(s), &cfg); err != nil {
		return Config{}, errors.Wrap(err, "")
	}
	return cfg, nil
}

// A DecodeError reports a container that could not have been produced by
// Encode: a malformed header, or a payload that is truncated or inconsistent
// with its header.
type DecodeError struct {
	Backend Backend
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("order0: %s decode: %v", e.Backend, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

var corruptions = []error{
	container.ErrCorrupt,
	huffman.ErrInvalidCode,
	huffman.ErrTruncated,
	ac.ErrDecodeInsufficientBits,
}

func asDecodeError(backend Backend, err error) error {
	for _, target := range corruptions {
		if errors.Is(err, target) {
			return &DecodeError{Backend: backend, Err: err}
		}
	}
	return err
}

// Encode compresses data into a container.
// Empty input yields a header alone, with a zero length and all-zero counts.
func Encode(data []byte, cfg Config) ([]byte, error) {
	h := container.NewHeader(data)
	if cfg.Backend == Arithmetic && cfg.Rescale && h.Freq.Total() > witten.MaxTotal {
		h.Format = container.Rescaled
	}

	var buf bytes.Buffer
	buf.Grow(h.Size() + len(data)/2)
	if err := container.Write(&buf, h); err != nil {
		return nil, errors.Wrap(err, "")
	}
	if h.Length == 0 {
		return buf.Bytes(), nil
	}

	w := bitio.NewWriter(&buf)
	switch cfg.Backend {
	case Huffman:
		ct := huffman.NewCodeTable(huffman.NewTree(&h.Freq))
		if err := huffman.Encode(w, data, ct); err != nil {
			return nil, errors.Wrap(err, "")
		}
	case Arithmetic:
		m := witten.NewModel(&h.Freq, h.Format == container.Rescaled)
		if err := witten.Encode(w, data, m); err != nil {
			return nil, errors.Wrap(err, "")
		}
	default:
		return nil, errors.Errorf("unknown backend %v", cfg.Backend)
	}
	if err := w.Flush(); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return buf.Bytes(), nil
}

// Decode reconstructs the original bytes from a container produced by
// Encode with the same backend. Corrupt input is reported as a *DecodeError.
func Decode(c []byte, cfg Config) ([]byte, error) {
	out, err := decode(c, cfg)
	if err != nil {
		return nil, asDecodeError(cfg.Backend, err)
	}
	return out, nil
}

func decode(c []byte, cfg Config) ([]byte, error) {
	r := bytes.NewReader(c)
	h, err := container.Read(r)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	if h.Length == 0 {
		return []byte{}, nil
	}

	br := bitio.NewReader(r)
	switch cfg.Backend {
	case Huffman:
		if h.Format != container.Legacy {
			return nil, errors.Wrapf(container.ErrCorrupt, "%v container for the huffman backend", h.Format)
		}
		out, err := huffman.Decode(br, huffman.NewTree(&h.Freq), h.Length)
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		return out, nil
	case Arithmetic:
		m := witten.NewModel(&h.Freq, h.Format == container.Rescaled)
		out, err := witten.Decode(br, m, h.Length)
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		return out, nil
	default:
		return nil, errors.Errorf("unknown backend %v", cfg.Backend)
	}
}
