package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hamzam170763/pdf-compressor/internal/batch"
	cfgpkg "github.com/hamzam170763/pdf-compressor/internal/config"
	logpkg "github.com/hamzam170763/pdf-compressor/internal/logger"
	"github.com/hamzam170763/pdf-compressor/internal/metrics"
	"github.com/hamzam170763/pdf-compressor/internal/orchestrator"
	"github.com/hamzam170763/pdf-compressor/internal/pdftest"
)

func main() {
	os.Exit(run())
}

// run keeps the exit-code contract in one place: non-zero only when the PDF
// toolchain probe fails, zero otherwise even if individual files fail.
func run() int {
	cfg := cfgpkg.FromEnv()

	// Init logging
	_ = logpkg.Init(logpkg.Options{
		Level:        cfg.Logging.Level,
		Pretty:       cfg.Logging.Pretty,
		File:         cfg.Logging.File,
		MaxSizeMB:    cfg.Logging.MaxSizeMB,
		MaxBackups:   cfg.Logging.MaxBackups,
		MaxAgeDays:   cfg.Logging.MaxAgeDays,
		Compress:     cfg.Logging.Compress,
		SendToAxiom:  cfg.Axiom.Send && cfg.Axiom.APIKey != "",
		AxiomAPIKey:  cfg.Axiom.APIKey,
		AxiomOrgID:   cfg.Axiom.OrgID,
		AxiomDataset: cfg.Axiom.Dataset,
		AxiomFlush:   cfg.Axiom.FlushInterval,
	})
	defer logpkg.Close()

	metrics.Init()

	// Scratch dirs from crashed runs accumulate in the system temp dir.
	orchestrator.CleanupTemps(24 * time.Hour)

	runID := uuid.NewString()
	log.Info().
		Str("run_id", runID).
		Str("method", cfg.Compression.Method).
		Int("quality", cfg.Compression.Quality).
		Int("dpi", cfg.Compression.DPI).
		Str("input_dir", cfg.Paths.InputDir).
		Str("output_dir", cfg.Paths.OutputDir).
		Msg("starting pdf compressor")

	probe := pdftest.Run()
	if !probe.OK() {
		log.Error().Interface("probe", probe).Msg("pdf toolchain probe failed")
		fmt.Fprintln(os.Stderr, "PDF toolchain unavailable:")
		if !probe.Renderer.OK {
			fmt.Fprintf(os.Stderr, "  renderer: %s\n", probe.Renderer.Message)
		}
		if !probe.Rewriter.OK {
			fmt.Fprintf(os.Stderr, "  rewriter: %s\n", probe.Rewriter.Message)
		}
		return 1
	}
	log.Info().
		Str("renderer", probe.Renderer.Message).
		Str("rewriter", probe.Rewriter.Message).
		Msg("pdf toolchain probe passed")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sum, err := batch.New(cfg, nil, os.Stdout).Run(ctx)
	if err != nil {
		// Scan errors and interruption land here; per-file failures are
		// already inside the summary and never abort the run.
		log.Warn().Err(err).Msg("batch ended early")
	}

	if cfg.Metrics.PushURL != "" {
		if err := metrics.Push(cfg.Metrics.PushURL, cfg.Metrics.Job); err != nil {
			log.Warn().Err(err).Msg("metrics push failed")
		}
	}

	log.Info().
		Str("run_id", runID).
		Int("found", sum.Found).
		Int("succeeded", sum.Succeeded).
		Int("failed", sum.Failed).
		Int("skipped", sum.Skipped).
		Msg("run finished")

	return 0
}
