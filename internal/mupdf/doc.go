package mupdf

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog/log"
)

// Document wraps an open MuPDF handle for the duration of one compression
// attempt. Not safe for concurrent use; callers own exactly one attempt at a
// time and must Close on every exit path.
type Document struct {
	doc  *fitz.Document
	path string
}

// Open opens the PDF at path.
func Open(path string) (*Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return &Document{doc: doc, path: path}, nil
}

// Close releases the underlying MuPDF handle.
func (d *Document) Close() error {
	return d.doc.Close()
}

// Path returns the path the document was opened from.
func (d *Document) Path() string { return d.path }

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return d.doc.NumPage()
}

// PageText extracts text from a page (0-based index).
func (d *Document) PageText(i int) (string, error) {
	if i < 0 || i >= d.doc.NumPage() {
		return "", fmt.Errorf("page %d out of range (document has %d pages)", i+1, d.doc.NumPage())
	}
	text, err := d.doc.Text(i)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from page %d: %w", i+1, err)
	}
	return text, nil
}

// RenderPage rasterizes a page (0-based index) at the given scale against the
// 72-DPI page baseline, so scale 1.0 renders one pixel per point.
func (d *Document) RenderPage(i int, scale float64) (image.Image, error) {
	if i < 0 || i >= d.doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range (document has %d pages)", i+1, d.doc.NumPage())
	}
	if scale <= 0 {
		return nil, fmt.Errorf("invalid render scale %.2f for page %d", scale, i+1)
	}

	img, err := d.doc.ImageDPI(i, 72.0*scale)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", i+1, err)
	}

	log.Debug().
		Str("pdf", d.path).
		Int("page", i+1).
		Float64("scale", scale).
		Msg("rendered page")

	return img, nil
}
