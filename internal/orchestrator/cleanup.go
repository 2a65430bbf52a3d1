package orchestrator

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CleanupTemps removes scratch directories left behind by interrupted or
// crashed runs (pdfcompress-*, pdfprobe-*) older than the provided age
// threshold. Live runs keep their scratch younger than any sane threshold.
func CleanupTemps(maxAge time.Duration) {
	dir := os.TempDir()
	now := time.Now()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "pdfcompress-") && !strings.HasPrefix(name, "pdfprobe-") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) >= maxAge {
			_ = os.RemoveAll(filepath.Join(dir, name))
		}
	}
}
