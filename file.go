package order0

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
)

// Compress compresses the file name and writes the container to w.
func Compress(w io.Writer, name string, cfg Config) error {
	f, err := os.Open(name)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer f.Close()
	data, err := ioutil.ReadAll(f)
	if err != nil {
		return errors.Wrap(err, "")
	}

	c, err := Encode(data, cfg)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if _, err := w.Write(c); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

// Decompress reads a container from r and writes the original bytes to w.
// Nothing is written to w unless the whole container decodes.
func Decompress(w io.Writer, r io.Reader, cfg Config) error {
	c, err := ioutil.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "")
	}
	data, err := Decode(c, cfg)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

// SameContents reports whether the file name holds exactly data.
// It backs the post-decode equality check of the decompress command.
func SameContents(name string, data []byte) (bool, error) {
	contents, err := ioutil.ReadFile(name)
	if err != nil {
		return false, errors.Wrap(err, "")
	}
	return bytes.Equal(contents, data), nil
}
