//Package zwrap opens possibly-compressed text inputs transparently.
//The compression format is picked from the filename suffix, so a
//structure or topology file can be given as foo.pdb, foo.pdb.gz or
//foo.pdb.zst and read the same way.
package zwrap

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//zstd's Decoder does not implement io.ReadCloser, as its Close
//method returns nothing, hence this little indirection.
type stdql struct {
	closeql func()
	*zstd.Decoder
}

//Close closes the object. It can not be used after this call.
func (s stdql) Close() error {
	s.closeql()
	return nil
}

//reader couples a decompressor with the file underneath it, so
//Close releases both.
type reader struct {
	io.Reader
	closers []io.Closer
}

func (r *reader) Close() error {
	var err error
	for _, c := range r.closers {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

//NewReader wraps r in a decompressor chosen from the suffix of name.
//Names without a recognized suffix get a pass-through reader whose
//Close does not close r.
func NewReader(r io.Reader, name string) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(name, ".gz"):
		g, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return g, nil
	case strings.HasSuffix(name, ".zst"), strings.HasSuffix(name, ".zstd"):
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return stdql{d.Close, d}, nil
	}
	return io.NopCloser(r), nil
}

//Open opens the named file for reading, transparently decompressing
//it if its name ends in .gz, .zst or .zstd. Closing the returned
//ReadCloser closes the underlying file as well.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(name, ".gz"):
		g, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &reader{g, []io.Closer{g, f}}, nil
	case strings.HasSuffix(name, ".zst"), strings.HasSuffix(name, ".zstd"):
		d, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &reader{d, []io.Closer{stdql{d.Close, d}, f}}, nil
	}
	return f, nil
}
