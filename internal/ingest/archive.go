package ingest

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// openSource resolves path to a readable plaintext stream, transparently
// unwrapping .tar.xz/.tar.gz/.xz/.gz containers. The returned name is used
// only for error messages and format sniffing; the caller must close the
// returned ReadCloser.
func openSource(path string) (io.ReadCloser, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}

	switch {
	case strings.HasSuffix(path, ".tar.xz"):
		return firstTarMember(f, xzReader)
	case strings.HasSuffix(path, ".tar.gz"), strings.HasSuffix(path, ".tgz"):
		return firstTarMember(f, gzipReader)
	case strings.HasSuffix(path, ".xz"):
		r, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, "", fmt.Errorf("open xz %s: %w", path, err)
		}
		return readCloser{Reader: r, closer: f}, strings.TrimSuffix(path, ".xz"), nil
	case strings.HasSuffix(path, ".gz"):
		r, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, "", fmt.Errorf("open gzip %s: %w", path, err)
		}
		return readCloser{Reader: r, closer: multiCloser{f, r}}, strings.TrimSuffix(path, ".gz"), nil
	default:
		return f, filepath.Base(path), nil
	}
}

func xzReader(r io.Reader) (io.Reader, error)   { return xz.NewReader(r) }
func gzipReader(r io.Reader) (io.Reader, error) { return gzip.NewReader(r) }

// firstTarMember extracts the first regular file from a tar archive wrapped
// in the given decompressor, on the assumption that an LMF/CILI archive
// contains exactly one data file.
func firstTarMember(f *os.File, decompress func(io.Reader) (io.Reader, error)) (io.ReadCloser, string, error) {
	dr, err := decompress(f)
	if err != nil {
		f.Close()
		return nil, "", fmt.Errorf("decompress %s: %w", f.Name(), err)
	}
	tr := tar.NewReader(dr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			f.Close()
			return nil, "", fmt.Errorf("archive %s: no regular file found", f.Name())
		}
		if err != nil {
			f.Close()
			return nil, "", fmt.Errorf("read tar %s: %w", f.Name(), err)
		}
		if hdr.Typeflag == tar.TypeReg {
			return readCloser{Reader: tr, closer: f}, hdr.Name, nil
		}
	}
}

// readCloser adapts a plain io.Reader into an io.ReadCloser by delegating
// Close to an owned closer (typically the underlying *os.File).
type readCloser struct {
	io.Reader
	closer io.Closer
}

func (r readCloser) Close() error { return r.closer.Close() }

// multiCloser closes every wrapped closer in order, returning the first
// error encountered.
type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
