package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/rs/zerolog/log"

	"github.com/hamzam170763/pdf-compressor/internal/imagerender"
	"github.com/hamzam170763/pdf-compressor/internal/metrics"
	"github.com/hamzam170763/pdf-compressor/internal/mupdf"
)

// imageScale is the fixed render upscale for image-dominant pages. Image-heavy
// pages favor smaller output over resolution fidelity, so the configured DPI
// does not apply to them.
const imageScale = 1.2

// PDFRebuilder rasterizes every page, re-encodes it per its classification
// and assembles a fresh document from the encoded pages.
type PDFRebuilder struct{}

// NewRebuilder returns the standard rebuild pipeline.
func NewRebuilder() *PDFRebuilder { return &PDFRebuilder{} }

// Rebuild writes a rebuilt copy of inPath to outPath. Every page keeps its
// original rectangle; its content is replaced by one full-page image. Any
// failure wipes the partial output and aborts the whole document.
func (r *PDFRebuilder) Rebuild(ctx context.Context, inPath, outPath string, quality, dpi int) error {
	dims, err := api.PageDimsFile(inPath)
	if err != nil {
		return &RenderError{Err: fmt.Errorf("page dimensions: %w", err)}
	}

	doc, err := mupdf.Open(inPath)
	if err != nil {
		return &RenderError{Err: err}
	}
	defer doc.Close()

	total := doc.NumPages()
	if total == 0 {
		return &RenderError{Err: errors.New("document has no pages")}
	}
	if len(dims) != total {
		return &RenderError{Err: fmt.Errorf("geometry for %d pages but document has %d", len(dims), total)}
	}

	scratch, err := os.MkdirTemp("", "pdfcompress-*")
	if err != nil {
		return &SaveError{Path: outPath, Err: err}
	}
	defer os.RemoveAll(scratch)

	// A leftover output from an earlier run must not be appended to.
	_ = os.Remove(outPath)

	wipe := func() { _ = os.Remove(outPath) }

	textScale := float64(dpi) / 72.0
	for i := 0; i < total; i++ {
		select {
		case <-ctx.Done():
			wipe()
			return ctx.Err()
		default:
		}

		text, terr := doc.PageText(i)
		if terr != nil {
			log.Warn().Err(terr).Str("file", doc.Path()).Int("page", i+1).Msg("text extraction failed; treating page as image-dominant")
			text = ""
		}
		class := classifyPage(text)

		scale := textScale
		lossless := false
		if class == ClassImage {
			scale = imageScale
		} else if quality >= 90 {
			lossless = true
		}

		img, rerr := doc.RenderPage(i, scale)
		if rerr != nil {
			wipe()
			return &RenderError{Page: i + 1, Err: rerr}
		}

		enc, eerr := imagerender.EncodePage(img, lossless, quality)
		if eerr != nil {
			wipe()
			return &EncodeError{Page: i + 1, Format: enc.Format, Err: eerr}
		}
		metrics.IncPage(class.String())

		pagePath := filepath.Join(scratch, fmt.Sprintf("page-%04d%s", i+1, enc.Ext()))
		if werr := os.WriteFile(pagePath, enc.Data, 0o644); werr != nil {
			wipe()
			return &SaveError{Path: pagePath, Err: werr}
		}

		// One new page per source page, sized to the original rectangle, the
		// image stretched across it: physical geometry survives even though
		// pixel density changed.
		imp, ierr := api.Import(fmt.Sprintf("dim:%.2f %.2f, pos:full", dims[i].Width, dims[i].Height), types.POINTS)
		if ierr != nil {
			wipe()
			return &SaveError{Path: outPath, Err: fmt.Errorf("page %d import spec: %w", i+1, ierr)}
		}
		if aerr := api.ImportImagesFile([]string{pagePath}, outPath, imp, nil); aerr != nil {
			wipe()
			return &SaveError{Path: outPath, Err: fmt.Errorf("append page %d: %w", i+1, aerr)}
		}

		log.Debug().
			Str("file", doc.Path()).
			Int("page", i+1).
			Str("class", class.String()).
			Str("format", enc.Format).
			Float64("scale", scale).
			Int("bytes", len(enc.Data)).
			Msg("page re-encoded")
	}

	// Structural compaction of the assembled document: drop unreferenced
	// objects, deflate streams, normalize structure.
	if oerr := api.OptimizeFile(outPath, outPath, writeConf()); oerr != nil {
		wipe()
		return &SaveError{Path: outPath, Err: fmt.Errorf("optimize: %w", oerr)}
	}

	n, cerr := pageCount(outPath)
	if cerr != nil {
		wipe()
		return &SaveError{Path: outPath, Err: fmt.Errorf("verify output: %w", cerr)}
	}
	if n != total {
		wipe()
		return &SaveError{Path: outPath, Err: fmt.Errorf("output has %d pages, source has %d", n, total)}
	}

	return nil
}
