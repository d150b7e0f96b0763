// Package pullxml loads XML documents into memory and drives the pull parser
// in pkg/xmlpull over them.
//
// Load, LoadFile, and LoadReader return a ready xmlpull.Parser. Walk runs the
// parser to the end of input and hands each step to a callback as an Event.
package pullxml

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	xerrors "github.com/jacoelho/pullxml/errors"
	"github.com/jacoelho/pullxml/pkg/xmlpull"
	"github.com/pkg/errors"
)

// LoadOptions configures how documents are read into memory.
type LoadOptions struct {
	// MaxInputSize caps the document size in bytes. Zero selects the default.
	MaxInputSize int64
}

// Load reads the named document from fsys and returns a parser over it.
func Load(fsys fs.FS, name string, opts ...xmlpull.Options) (*xmlpull.Parser, error) {
	return LoadWithOptions(fsys, name, LoadOptions{}, opts...)
}

// LoadWithOptions reads the named document from fsys with explicit limits.
func LoadWithOptions(fsys fs.FS, name string, lo LoadOptions, opts ...xmlpull.Options) (*xmlpull.Parser, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", name)
	}
	defer f.Close()

	p, err := LoadReaderWithOptions(f, lo, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", name)
	}
	return p, nil
}

// LoadFile reads a document from a file path.
func LoadFile(path string, opts ...xmlpull.Options) (*xmlpull.Parser, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	return Load(os.DirFS(dir), base, opts...)
}

// LoadReader reads r to the end and returns a parser over its contents.
func LoadReader(r io.Reader, opts ...xmlpull.Options) (*xmlpull.Parser, error) {
	return LoadReaderWithOptions(r, LoadOptions{}, opts...)
}

// LoadReaderWithOptions reads r to the end with explicit limits.
// Documents larger than the size limit are rejected rather than truncated.
func LoadReaderWithOptions(r io.Reader, lo LoadOptions, opts ...xmlpull.Options) (*xmlpull.Parser, error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	limit, err := resolveMaxInputSize(lo.MaxInputSize)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "read document")
	}
	if int64(len(data)) > limit {
		report := xerrors.NewReport(xerrors.ErrIO, tooLargeMessage(limit), "")
		return nil, &report
	}
	return xmlpull.NewParser(string(data), opts...), nil
}
