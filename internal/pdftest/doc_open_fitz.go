package pdftest

import (
	"image"

	fitz "github.com/gen2brain/go-fitz"
)

// fitzOpener implements Opener using github.com/gen2brain/go-fitz.
type fitzOpener struct{}

func (fitzOpener) Open(path string) (Doc, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return fitzDoc{doc}, nil
}

// Ensure default opener is set to fitz-based implementation.
func init() {
	setDefaultOpener(fitzOpener{})
}

// --- Adapters ---

type fitzDoc struct{ *fitz.Document }

func (d fitzDoc) Render(i int, scale float64) (image.Image, error) {
	img, err := d.Document.ImageDPI(i, 72.0*scale)
	if err != nil {
		return nil, err
	}
	return img, nil
}
