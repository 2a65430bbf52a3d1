package orchestrator

import (
	"context"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// StructuralCompressor is the lossless fallback: it rewrites the document
// collapsing identical objects, dropping duplicate references and deflating
// streams. Page content and embedded images are left untouched.
type StructuralCompressor struct{}

// NewFallback returns the structural compression pass.
func NewFallback() *StructuralCompressor { return &StructuralCompressor{} }

// Compress writes a structurally compacted copy of inPath to outPath.
func (s *StructuralCompressor) Compress(ctx context.Context, inPath, outPath string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	// Never append to or keep a stale output.
	_ = os.Remove(outPath)

	if err := api.OptimizeFile(inPath, outPath, relaxedConf()); err != nil {
		_ = os.Remove(outPath)
		return &FallbackError{Err: err}
	}
	return nil
}
