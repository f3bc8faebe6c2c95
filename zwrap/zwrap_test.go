package zwrap

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const sample = "ATOM      1  CA  ALA A   1      11.104   6.134  -6.504  1.00  0.00\n"

func TestNewReaderPassThrough(Te *testing.T) {
	r, err := NewReader(bytes.NewBufferString(sample), "plain.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		Te.Fatal(err)
	}
	if string(got) != sample {
		Te.Errorf("Pass-through mangled the data: %q", got)
	}
	r.Close()
}

func TestNewReaderGzip(Te *testing.T) {
	var b bytes.Buffer
	w := gzip.NewWriter(&b)
	w.Write([]byte(sample))
	w.Close()
	r, err := NewReader(&b, "mini.pdb.gz")
	if err != nil {
		Te.Fatal(err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		Te.Fatal(err)
	}
	if string(got) != sample {
		Te.Errorf("Gzip round trip failed: %q", got)
	}
	r.Close()
}

func TestOpenZstd(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "mini.pdb.zst")
	f, err := os.Create(name)
	if err != nil {
		Te.Fatal(err)
	}
	w, err := zstd.NewWriter(f)
	if err != nil {
		Te.Fatal(err)
	}
	w.Write([]byte(sample))
	w.Close()
	f.Close()
	r, err := Open(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		Te.Fatal(err)
	}
	if string(got) != sample {
		Te.Errorf("Zstd round trip failed: %q", got)
	}
}

func TestOpenPlain(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "mini.pdb")
	if err := os.WriteFile(name, []byte(sample), 0644); err != nil {
		Te.Fatal(err)
	}
	r, err := Open(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		Te.Fatal(err)
	}
	if string(got) != sample {
		Te.Errorf("Plain open failed: %q", got)
	}
}
