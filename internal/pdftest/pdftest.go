package pdftest

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/hamzam170763/pdf-compressor/internal/imagerender"
)

// Doc abstracts a PDF document for probing.
type Doc interface {
	NumPage() int
	Text(i int) (string, error)
	Render(i int, scale float64) (image.Image, error)
	Close() error
}

// Opener abstracts opening a PDF path into a Doc.
type Opener interface {
	Open(path string) (Doc, error)
}

// defaultOpener is provided in doc_open_fitz.go using go-fitz.
var defaultOpener Opener

// setDefaultOpener allows swapping the default opener, useful for tests or alternate backends.
func setDefaultOpener(o Opener) { defaultOpener = o }

// Status represents the readiness of one PDF capability.
type Status struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// Summary bundles the startup capability checks. Both engines must pass
// before any batch work starts.
type Summary struct {
	Renderer Status `json:"renderer"`
	Rewriter Status `json:"rewriter"`
}

// OK reports whether every capability check passed.
func (s Summary) OK() bool {
	return s.Renderer.OK && s.Rewriter.OK
}

// Run exercises the PDF toolchain end to end against a generated fixture
// document: rendering and text extraction on one side, page geometry,
// image import and optimization on the other.
func Run() Summary {
	dir, err := os.MkdirTemp("", "pdfprobe-*")
	if err != nil {
		st := Status{OK: false, Message: "temp dir: " + trimError(err)}
		return Summary{Renderer: st, Rewriter: st}
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "probe.pdf")
	if err := WriteFixturePDF(src, 1, 0); err != nil {
		st := Status{OK: false, Message: "fixture: " + trimError(err)}
		return Summary{Renderer: st, Rewriter: st}
	}

	return Summary{
		Renderer: checkRenderer(src),
		Rewriter: checkRewriter(dir, src),
	}
}

// checkRenderer verifies the rasterization engine against the fixture:
// open, page count, text extraction, render.
func checkRenderer(path string) Status {
	if defaultOpener == nil {
		return Status{OK: false, Message: "no PDF opener configured"}
	}
	d, err := defaultOpener.Open(path)
	if err != nil {
		return Status{OK: false, Message: "open: " + trimError(err)}
	}
	defer d.Close()

	if n := d.NumPage(); n != 1 {
		return Status{OK: false, Message: fmt.Sprintf("fixture reports %d pages, want 1", n)}
	}
	text, err := d.Text(0)
	if err != nil {
		return Status{OK: false, Message: "text: " + trimError(err)}
	}
	if !strings.Contains(text, fixtureMarker) {
		return Status{OK: false, Message: "fixture text not extractable"}
	}
	img, err := d.Render(0, 0.5)
	if err != nil {
		return Status{OK: false, Message: "render: " + trimError(err)}
	}
	if img == nil || img.Bounds().Empty() {
		return Status{OK: false, Message: "render produced an empty image"}
	}
	return Status{OK: true, Message: "Available"}
}

// checkRewriter verifies the rewrite engine: page geometry, image import at
// exact page size, optimization, page count of the result.
func checkRewriter(dir, src string) Status {
	dims, err := api.PageDimsFile(src)
	if err != nil {
		return Status{OK: false, Message: "page dims: " + trimError(err)}
	}
	if len(dims) != 1 {
		return Status{OK: false, Message: fmt.Sprintf("fixture reports %d page dims, want 1", len(dims))}
	}

	enc, err := imagerender.EncodePage(image.NewRGBA(image.Rect(0, 0, 64, 64)), false, 80)
	if err != nil {
		return Status{OK: false, Message: "encode: " + trimError(err)}
	}
	if w, h, derr := imagerender.Dimensions(enc.Data); derr != nil || w != 64 || h != 64 {
		return Status{OK: false, Message: "encode: round-trip mismatch"}
	}
	imgPath := filepath.Join(dir, "probe"+enc.Ext())
	if err := os.WriteFile(imgPath, enc.Data, 0o644); err != nil {
		return Status{OK: false, Message: trimError(err)}
	}

	imp, err := api.Import(fmt.Sprintf("dim:%.2f %.2f, pos:full", dims[0].Width, dims[0].Height), types.POINTS)
	if err != nil {
		return Status{OK: false, Message: "import spec: " + trimError(err)}
	}
	out := filepath.Join(dir, "probe_rebuilt.pdf")
	if err := api.ImportImagesFile([]string{imgPath}, out, imp, nil); err != nil {
		return Status{OK: false, Message: "image import: " + trimError(err)}
	}
	if err := api.OptimizeFile(out, out, nil); err != nil {
		return Status{OK: false, Message: "optimize: " + trimError(err)}
	}
	n, err := api.PageCountFile(out)
	if err != nil {
		return Status{OK: false, Message: "page count: " + trimError(err)}
	}
	if n != 1 {
		return Status{OK: false, Message: fmt.Sprintf("rebuilt probe has %d pages, want 1", n)}
	}
	return Status{OK: true, Message: "Available"}
}

func trimError(err error) string {
	if err == nil {
		return ""
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	msg := err.Error()
	if len(msg) > 120 {
		return msg[:120]
	}
	return msg
}
