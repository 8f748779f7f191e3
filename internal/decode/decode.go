// Package decode extracts plain text and format metadata from raw document
// bytes. Decoders are registered in a capability registry resolved at startup,
// so adding a format means adding an implementation, not a new branch.
package decode

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnsupportedFormat marks a file extension no registered decoder handles.
// Distinguishable from a missing file and from a decode failure.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrDecode marks content that could not be decoded under any configured encoding.
var ErrDecode = errors.New("unable to decode text content")

// Decoder turns raw file bytes into plain text plus format-specific metadata.
type Decoder interface {
	// Decode returns the extracted text and an opaque metadata map
	// (page counts, encodings, row counts, ...).
	Decode(content []byte) (string, map[string]interface{}, error)
	// Extensions lists the lowercase file extensions (with leading dot)
	// this decoder accepts.
	Extensions() []string
}

// Registry maps file extensions to decoders.
type Registry struct {
	decoders map[string]Decoder
}

// NewRegistry builds a registry from the given decoders. Later decoders win
// when extensions collide.
func NewRegistry(decoders ...Decoder) *Registry {
	r := &Registry{decoders: make(map[string]Decoder)}
	for _, d := range decoders {
		for _, ext := range d.Extensions() {
			r.decoders[strings.ToLower(ext)] = d
		}
	}
	return r
}

// DefaultRegistry returns a registry covering txt/md, csv, pdf, docx, and xlsx.
// encodings is the ordered list of encodings tried for plain text files; empty
// means UTF-8 with a Latin-1 fallback.
func DefaultRegistry(encodings []string) *Registry {
	return NewRegistry(
		NewPlainDecoder(encodings),
		&CSVDecoder{},
		&PDFDecoder{},
		&DocxDecoder{},
		&ExcelDecoder{},
	)
}

// Decode dispatches content to the decoder registered for ext (leading dot,
// case-insensitive). Unknown extensions return ErrUnsupportedFormat.
func (r *Registry) Decode(content []byte, ext string) (string, map[string]interface{}, error) {
	d, ok := r.decoders[strings.ToLower(ext)]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return d.Decode(content)
}

// Supported reports whether ext has a registered decoder.
func (r *Registry) Supported(ext string) bool {
	_, ok := r.decoders[strings.ToLower(ext)]
	return ok
}

// Extensions returns the sorted list of registered extensions.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.decoders))
	for ext := range r.decoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
