package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hamzam170763/pdf-compressor/internal/config"
	"github.com/hamzam170763/pdf-compressor/internal/filetype"
	"github.com/hamzam170763/pdf-compressor/internal/metrics"
	"github.com/hamzam170763/pdf-compressor/internal/orchestrator"
)

// Processor compresses one file into outPath. *orchestrator.Orchestrator
// satisfies this; tests substitute stubs.
type Processor interface {
	ProcessFile(ctx context.Context, inPath, outPath string) orchestrator.Result
}

// Driver walks the input directory and feeds every candidate PDF through the
// Processor, writing the human-readable report to its writer as it goes.
type Driver struct {
	cfg      config.Config
	proc     Processor
	detector *filetype.Detector
	report   io.Writer
}

// New builds a Driver. A nil Processor gets the standard Orchestrator; a nil
// report writer defaults to stdout.
func New(cfg config.Config, proc Processor, report io.Writer) *Driver {
	if proc == nil {
		proc = orchestrator.New(cfg.Compression, orchestrator.Dependencies{})
	}
	if report == nil {
		report = os.Stdout
	}
	return &Driver{
		cfg:      cfg,
		proc:     proc,
		detector: filetype.New(),
		report:   report,
	}
}

// Candidates returns the *.pdf files in dir eligible for compression, in
// lexical order. Outputs of a previous run (stem ending in the compressed
// marker) are excluded so reruns never compress their own results.
func Candidates(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("input directory: %w", err)
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("scan input directory: %w", err)
	}
	sort.Strings(matches)

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		base := filepath.Base(m)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		if strings.HasSuffix(stem, orchestrator.CompressedSuffix) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// Run compresses every candidate below cfg.Paths.InputDir. Per-file failures
// are reported and never stop the batch; only context cancellation does, and
// the summary still covers whatever completed by then.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	w := d.report
	fmt.Fprintf(w, "PDF Compressor - High Quality Compression to Separate Directory\n\n")

	candidates, err := Candidates(d.cfg.Paths.InputDir)
	if err != nil {
		fmt.Fprintf(w, "Cannot scan input directory: %v\n", err)
		return Summary{}, err
	}

	outDir := d.cfg.Paths.OutputDir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "Cannot create output directory: %v\n", err)
		return Summary{}, fmt.Errorf("create output directory: %w", err)
	}
	absOut := outDir
	if abs, err := filepath.Abs(outDir); err == nil {
		absOut = abs
	}
	fmt.Fprintf(w, "Output directory: %s\n\n", absOut)

	if len(candidates) == 0 {
		fmt.Fprintln(w, "No PDF files found in the input directory.")
		return Summary{}, nil
	}

	fmt.Fprintf(w, "Found %d PDF file(s) to compress:\n\n", len(candidates))
	d.printSettings(w)

	sum := Summary{Found: len(candidates)}
	interrupted := false

	for _, inPath := range candidates {
		if ctx.Err() != nil {
			interrupted = true
			break
		}

		base := filepath.Base(inPath)

		info, derr := d.detector.Detect(inPath)
		if derr != nil || !info.IsPDF {
			sum.Skipped++
			metrics.IncFile("skipped")
			detected := "unreadable"
			if derr == nil {
				detected = info.MIMEType
			}
			log.Warn().Str("file", inPath).Str("detected", detected).Msg("skipping non-PDF candidate")
			fmt.Fprintf(w, "Skipping: %s (detected %s)\n\n", base, detected)
			continue
		}

		fmt.Fprintf(w, "Compressing: %s\n", base)
		res := d.proc.ProcessFile(ctx, inPath, orchestrator.OutputPath(outDir, inPath))
		sum.Results = append(sum.Results, res)

		if res.OriginalSize > 0 {
			fmt.Fprintf(w, "  Original size: %.2f MB\n", toMB(res.OriginalSize))
		}
		if res.Success {
			sum.Succeeded++
			sum.TotalOriginal += res.OriginalSize
			sum.TotalCompressed += res.CompressedSize
			fmt.Fprintf(w, "  Compressed size: %.2f MB\n", toMB(res.CompressedSize))
			fmt.Fprintf(w, "  Compression ratio: %.1f%%\n", res.Ratio())
			fmt.Fprintf(w, "  Saved to: %s\n", res.Output)
			if res.NotSmaller {
				fmt.Fprintln(w, "  Note: Compressed file is not smaller (quality preserved)")
			}
		} else {
			sum.Failed++
			fmt.Fprintf(w, "  Failed to compress %s\n", base)
		}
		fmt.Fprintln(w)
	}

	if interrupted {
		remaining := sum.Found - sum.Skipped - sum.Succeeded - sum.Failed
		log.Warn().Int("remaining", remaining).Msg("batch interrupted, remaining files not processed")
		fmt.Fprintf(w, "Interrupted: %d file(s) left unprocessed.\n\n", remaining)
	}

	log.Info().
		Int("found", sum.Found).
		Int("succeeded", sum.Succeeded).
		Int("failed", sum.Failed).
		Int("skipped", sum.Skipped).
		Int64("total_original_bytes", sum.TotalOriginal).
		Int64("total_compressed_bytes", sum.TotalCompressed).
		Msg("batch complete")

	d.printSummary(w, sum, absOut)

	if interrupted {
		return sum, ctx.Err()
	}
	return sum, nil
}

func (d *Driver) printSettings(w io.Writer) {
	c := d.cfg.Compression
	fmt.Fprintln(w, "Compression settings:")
	fmt.Fprintf(w, "  - Method: %s\n", c.Method)
	fmt.Fprintf(w, "  - JPEG Quality: %d%%\n", c.Quality)
	fmt.Fprintf(w, "  - DPI: %d\n", c.DPI)
	fmt.Fprintln(w, "  - Text preservation: Enabled")
	fmt.Fprintln(w, "  - Vector graphics: Preserved when possible")
	fmt.Fprintln(w)
}

func (d *Driver) printSummary(w io.Writer, sum Summary, absOut string) {
	line := strings.Repeat("=", 60)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "COMPRESSION SUMMARY")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Files processed: %d\n", sum.Found)
	fmt.Fprintf(w, "Successfully compressed: %d\n", sum.Succeeded)
	if sum.Skipped > 0 {
		fmt.Fprintf(w, "Skipped (not PDF): %d\n", sum.Skipped)
	}
	fmt.Fprintf(w, "Output directory: %s\n", absOut)
	fmt.Fprintf(w, "Total original size: %.2f MB\n", toMB(sum.TotalOriginal))
	fmt.Fprintf(w, "Total compressed size: %.2f MB\n", toMB(sum.TotalCompressed))

	if sum.TotalOriginal > 0 {
		fmt.Fprintf(w, "Overall compression: %.1f%%\n", sum.OverallRatio())
		fmt.Fprintf(w, "Space saved: %.2f MB\n", toMB(sum.TotalOriginal-sum.TotalCompressed))
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Quality settings used:")
		fmt.Fprintf(w, "  - JPEG Quality: %d%% (High)\n", d.cfg.Compression.Quality)
		fmt.Fprintf(w, "  - DPI: %d (Enhanced)\n", d.cfg.Compression.DPI)
		fmt.Fprintln(w, "  - Text preservation: ON")
	}

	fmt.Fprintf(w, "\nAll compressed files saved in: %s\n", absOut)
}
