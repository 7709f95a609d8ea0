// Command cluster prints the normalized compression distance between every
// pair of files in a directory, using one of the order-0 codecs (or tar+gzip)
// as the complexity estimate:
//
//	d(x, y) = (K(xy) - min(K(x), K(y))) / max(K(x), K(y))
//
// An order-0 model ignores symbol order, so the distance mostly reflects how
// similar the byte distributions of x and y are.
package main

import (
	"bytes"
	"flag"
	"io/ioutil"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fumin/order0"
	"github.com/pkg/errors"
)

var (
	intelligenceType = flag.String("b", "huffman", "complexity estimator: huffman, arithmetic or targz")
	dataDir          = flag.String("d", "", "directory holding the files to compare, at least two")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	if err := run(*intelligenceType, *dataDir); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(intelligence, dir string) error {
	if dir == "" {
		return errors.Errorf("no data directory, set -d")
	}
	data, err := listFiles(dir)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if len(data) < 2 {
		return errors.Errorf("need at least two files in %s, got %d", dir, len(data))
	}
	distMat, err := distanceMatrix(intelligence, data)
	if err != nil {
		return errors.Wrap(err, "")
	}

	log.Printf("[%s]", quoteNames(data))
	log.Printf("[%s]", formatMatrix(distMat))
	return nil
}

// quoteNames returns the base names of data without extensions as a comma
// separated list of quoted strings.
func quoteNames(data []string) string {
	names := make([]string, 0, len(data))
	for _, fpath := range data {
		name := filepath.Base(fpath)
		names = append(names, strconv.Quote(strings.TrimSuffix(name, filepath.Ext(name))))
	}
	return strings.Join(names, ",")
}

func formatMatrix(distMat []float64) string {
	buf := bytes.NewBuffer(nil)
	for i, f := range distMat {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return buf.String()
}

type estimator struct {
	intelligence string
	cacher       map[string]float64
}

func (e *estimator) distance(x, y string) (float64, error) {
	xy, err := concatFiles(x, y)
	if err != nil {
		return -1, errors.Wrap(err, "")
	}

	kxy, err := e.complexityOf(xy)
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	kx, err := e.complexity(x)
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	ky, err := e.complexity(y)
	if err != nil {
		return -1, errors.Wrap(err, "")
	}

	minxy := kx
	if ky < kx {
		minxy = ky
	}
	maxxy := kx
	if ky > kx {
		maxxy = ky
	}

	dist := (kxy - minxy) / maxxy
	return dist, nil
}

func (e *estimator) complexity(fpath string) (float64, error) {
	size, ok := e.cacher[fpath]
	if ok {
		return size, nil
	}
	data, err := ioutil.ReadFile(fpath)
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	size, err = e.complexityOf(data)
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	e.cacher[fpath] = size
	return size, nil
}

func (e *estimator) complexityOf(data []byte) (float64, error) {
	if e.intelligence == "targz" {
		return complexityTarGz(data)
	}
	b, err := order0.ParseBackend(e.intelligence)
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	c, err := order0.Encode(data, order0.Config{Backend: b})
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	return float64(len(c)), nil
}

func complexityTarGz(data []byte) (float64, error) {
	dir, err := ioutil.TempDir("", "cluster")
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	defer os.RemoveAll(dir)
	src := filepath.Join(dir, "src")
	if err := ioutil.WriteFile(src, data, 0644); err != nil {
		return -1, errors.Wrap(err, "")
	}
	dst := filepath.Join(dir, "dst")
	if err := exec.Command("tar", "zcf", dst, "-C", dir, "src").Run(); err != nil {
		return -1, errors.Wrap(err, "")
	}
	info, err := os.Stat(dst)
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	return float64(info.Size()), nil
}

func concatFiles(fs ...string) ([]byte, error) {
	var buf bytes.Buffer
	for _, fpath := range fs {
		b, err := ioutil.ReadFile(fpath)
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		buf.Write(b)
	}
	return buf.Bytes(), nil
}

func distanceMatrix(intelligence string, data []string) ([]float64, error) {
	e := &estimator{intelligence: intelligence, cacher: make(map[string]float64)}

	n := len(data)
	mat := make([]float64, 0, n*(n-1)/2)
	for i, dx := range data[:n-1] {
		for _, dy := range data[i+1:] {
			dist, err := e.distance(dx, dy)
			if err != nil {
				return nil, errors.Wrap(err, "")
			}
			mat = append(mat, dist)
			log.Printf("\"%s\"-\"%s\": %f", dx, dy, dist)
		}
	}
	return mat, nil
}

func listFiles(dir string) ([]string, error) {
	files, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	data := make([]string, 0, len(files))
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		fpath := filepath.Join(dir, f.Name())
		data = append(data, fpath)
	}
	return data, nil
}
