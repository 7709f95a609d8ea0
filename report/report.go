// Package report renders the summary of a compress or decompress run as
// protobuf JSON, so scripts can consume timings and ratios.
package report

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/structpb"
)

// A Run summarizes one invocation.
type Run struct {
	Mode       string
	Backend    string
	InputSize  int64
	OutputSize int64
	Elapsed    time.Duration

	// Verified is nil when no equality check was requested.
	Verified *bool
}

// Ratio returns the compressed size over the original size, the figure the
// legacy tool printed after encoding. It returns 0 for an empty original.
func (r Run) Ratio() float64 {
	original, compressed := r.InputSize, r.OutputSize
	if r.Mode == "decompress" {
		original, compressed = r.OutputSize, r.InputSize
	}
	if original == 0 {
		return 0
	}
	return float64(compressed) / float64(original)
}

// Struct converts r to a structpb.Struct.
func (r Run) Struct() (*structpb.Struct, error) {
	elapsed, err := protojson.Marshal(durationpb.New(r.Elapsed))
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	fields := map[string]interface{}{
		"mode":       r.Mode,
		"backend":    r.Backend,
		"inputSize":  r.InputSize,
		"outputSize": r.OutputSize,
		"ratio":      r.Ratio(),
		// protojson renders a Duration as a quoted string such as "0.012s".
		"elapsed":    string(elapsed[1 : len(elapsed)-1]),
	}
	if r.Verified != nil {
		fields["verified"] = *r.Verified
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return s, nil
}

// Write writes r to w as a single line of JSON.
func Write(w io.Writer, r Run) error {
	s, err := r.Struct()
	if err != nil {
		return errors.Wrap(err, "")
	}
	b, err := protojson.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "")
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}
