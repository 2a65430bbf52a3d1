package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hamzam170763/pdf-compressor/internal/config"
	"github.com/hamzam170763/pdf-compressor/internal/metrics"
)

// CompressedSuffix marks output files so a later run never picks them up as
// candidates again.
const CompressedSuffix = "_compressed"

// Rebuilder is the rasterize-and-re-encode pipeline.
type Rebuilder interface {
	Rebuild(ctx context.Context, inPath, outPath string, quality, dpi int) error
}

// FallbackCompressor is the lossless structural pass used when rebuild fails.
type FallbackCompressor interface {
	Compress(ctx context.Context, inPath, outPath string) error
}

type Dependencies struct {
	Rebuilder Rebuilder
	Fallback  FallbackCompressor
}

// Orchestrator runs the per-file state machine:
// START -> TRY_RASTER_REBUILD -> [SUCCESS | TRY_FALLBACK] -> [SUCCESS | FAILURE].
type Orchestrator struct {
	cfg  config.CompressionConfig
	deps Dependencies
}

// New builds an Orchestrator. Nil dependencies get the standard pipeline so
// callers outside tests pass only the configuration.
func New(cfg config.CompressionConfig, deps Dependencies) *Orchestrator {
	if deps.Rebuilder == nil {
		deps.Rebuilder = NewRebuilder()
	}
	if deps.Fallback == nil {
		deps.Fallback = NewFallback()
	}
	return &Orchestrator{cfg: cfg, deps: deps}
}

// OutputPath returns where the compressed copy of inPath goes.
func OutputPath(outputDir, inPath string) string {
	base := filepath.Base(inPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(outputDir, stem+CompressedSuffix+ext)
}

// ProcessFile compresses one file. Errors are contained in the Result; the
// caller decides how to report them and moves on to the next file.
func (o *Orchestrator) ProcessFile(ctx context.Context, inPath, outPath string) Result {
	l := log.With().Str("attempt_id", uuid.NewString()).Str("file", inPath).Logger()

	res := Result{File: inPath, Output: outPath}

	info, err := os.Stat(inPath)
	if err != nil {
		res.Err = err
		res.Kind = classifyKind(err)
		l.Error().Err(err).Msg("cannot stat input file")
		metrics.IncFile("failed")
		return res
	}
	res.OriginalSize = info.Size()

	method := o.cfg.Method
	var methodErr error

	if method == config.MethodAuto || method == config.MethodRebuild {
		start := time.Now()
		methodErr = o.deps.Rebuilder.Rebuild(ctx, inPath, outPath, o.cfg.Quality, o.cfg.DPI)
		metrics.ObserveStage("rebuild", time.Since(start))
		if methodErr == nil {
			res.Method = config.MethodRebuild
		} else {
			l.Warn().Err(methodErr).Str("kind", classifyKind(methodErr)).Msg("rebuild failed")
		}
	}

	if method == config.MethodFallback ||
		(method == config.MethodAuto && methodErr != nil && !isCanceled(methodErr)) {
		start := time.Now()
		methodErr = o.deps.Fallback.Compress(ctx, inPath, outPath)
		metrics.ObserveStage("fallback", time.Since(start))
		if methodErr == nil {
			res.Method = config.MethodFallback
		}
	}

	if methodErr != nil {
		res.Err = methodErr
		res.Kind = classifyKind(methodErr)
		l.Error().Err(methodErr).Str("kind", res.Kind).Msg("compression failed")
		metrics.IncFile("failed")
		return res
	}

	// A method returning normally is not enough; the file has to be there.
	outInfo, err := os.Stat(outPath)
	if err != nil {
		res.Err = &OutputMissingError{Path: outPath}
		res.Kind = KindOutputMissing
		l.Error().Str("output", outPath).Msg("method reported success but output file is missing")
		metrics.IncFile("failed")
		return res
	}

	res.CompressedSize = outInfo.Size()
	res.Success = true
	if res.CompressedSize >= res.OriginalSize {
		// Quality-first: a grown file is still a success, just flagged.
		res.NotSmaller = true
		metrics.IncNotSmaller()
	}
	metrics.AddSizes(res.OriginalSize, res.CompressedSize)
	metrics.IncFile(res.Method)

	l.Info().
		Str("method", res.Method).
		Int64("original_bytes", res.OriginalSize).
		Int64("compressed_bytes", res.CompressedSize).
		Float64("ratio_pct", res.Ratio()).
		Bool("not_smaller", res.NotSmaller).
		Str("output", outPath).
		Msg("file compressed")

	return res
}
