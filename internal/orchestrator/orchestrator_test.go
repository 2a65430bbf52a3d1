package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hamzam170763/pdf-compressor/internal/config"
)

type stubRebuilder struct {
	err     error
	payload []byte
	calls   int
}

func (s *stubRebuilder) Rebuild(ctx context.Context, inPath, outPath string, quality, dpi int) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	if s.payload == nil {
		return nil // claims success without writing anything
	}
	return os.WriteFile(outPath, s.payload, 0o644)
}

type stubFallback struct {
	err     error
	payload []byte
	calls   int
}

func (s *stubFallback) Compress(ctx context.Context, inPath, outPath string) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	return os.WriteFile(outPath, s.payload, 0o644)
}

func writeInput(t *testing.T, size int) (inPath, outPath string) {
	t.Helper()
	dir := t.TempDir()
	inPath = filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(inPath, bytes.Repeat([]byte("x"), size), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return inPath, filepath.Join(dir, "report_compressed.pdf")
}

func compCfg(method string) config.CompressionConfig {
	return config.CompressionConfig{Method: method, Quality: 80, DPI: 300}
}

func TestProcessFileRebuildSuccess(t *testing.T) {
	inPath, outPath := writeInput(t, 1000)
	rb := &stubRebuilder{payload: bytes.Repeat([]byte("y"), 400)}
	fb := &stubFallback{}
	o := New(compCfg(config.MethodAuto), Dependencies{Rebuilder: rb, Fallback: fb})

	res := o.ProcessFile(context.Background(), inPath, outPath)

	if !res.Success {
		t.Fatalf("expected success, got err %v", res.Err)
	}
	if res.Method != config.MethodRebuild {
		t.Fatalf("method = %q, want rebuild", res.Method)
	}
	if fb.calls != 0 {
		t.Fatalf("fallback ran %d times on a clean rebuild", fb.calls)
	}
	if res.OriginalSize != 1000 || res.CompressedSize != 400 {
		t.Fatalf("sizes = %d/%d, want 1000/400", res.OriginalSize, res.CompressedSize)
	}
	if res.NotSmaller {
		t.Fatal("NotSmaller set for a shrinking compression")
	}
	if res.Ratio() != 60.0 {
		t.Fatalf("ratio = %.1f, want 60.0", res.Ratio())
	}
}

func TestProcessFileAutoFallsBack(t *testing.T) {
	inPath, outPath := writeInput(t, 1000)
	rb := &stubRebuilder{err: &RenderError{Page: 2, Err: errors.New("corrupt page stream")}}
	fb := &stubFallback{payload: bytes.Repeat([]byte("y"), 950)}
	o := New(compCfg(config.MethodAuto), Dependencies{Rebuilder: rb, Fallback: fb})

	res := o.ProcessFile(context.Background(), inPath, outPath)

	if !res.Success {
		t.Fatalf("expected fallback success, got err %v", res.Err)
	}
	if res.Method != config.MethodFallback {
		t.Fatalf("method = %q, want fallback", res.Method)
	}
	if rb.calls != 1 || fb.calls != 1 {
		t.Fatalf("calls rebuild=%d fallback=%d, want 1/1", rb.calls, fb.calls)
	}
}

func TestProcessFileRebuildOnlySkipsFallback(t *testing.T) {
	inPath, outPath := writeInput(t, 1000)
	rb := &stubRebuilder{err: &RenderError{Err: errors.New("boom")}}
	fb := &stubFallback{payload: []byte("y")}
	o := New(compCfg(config.MethodRebuild), Dependencies{Rebuilder: rb, Fallback: fb})

	res := o.ProcessFile(context.Background(), inPath, outPath)

	if res.Success {
		t.Fatal("expected failure in rebuild-only mode")
	}
	if fb.calls != 0 {
		t.Fatalf("fallback ran %d times in rebuild-only mode", fb.calls)
	}
	if res.Kind != KindRender {
		t.Fatalf("kind = %q, want %q", res.Kind, KindRender)
	}
}

func TestProcessFileFallbackOnly(t *testing.T) {
	inPath, outPath := writeInput(t, 1000)
	rb := &stubRebuilder{payload: []byte("y")}
	fb := &stubFallback{payload: bytes.Repeat([]byte("y"), 990)}
	o := New(compCfg(config.MethodFallback), Dependencies{Rebuilder: rb, Fallback: fb})

	res := o.ProcessFile(context.Background(), inPath, outPath)

	if !res.Success {
		t.Fatalf("expected success, got err %v", res.Err)
	}
	if rb.calls != 0 {
		t.Fatalf("rebuild ran %d times in fallback-only mode", rb.calls)
	}
	if res.Method != config.MethodFallback {
		t.Fatalf("method = %q, want fallback", res.Method)
	}
}

func TestProcessFileBothMethodsFail(t *testing.T) {
	inPath, outPath := writeInput(t, 1000)
	rb := &stubRebuilder{err: &RenderError{Err: errors.New("render boom")}}
	fb := &stubFallback{err: &FallbackError{Err: errors.New("fallback boom")}}
	o := New(compCfg(config.MethodAuto), Dependencies{Rebuilder: rb, Fallback: fb})

	res := o.ProcessFile(context.Background(), inPath, outPath)

	if res.Success {
		t.Fatal("expected failure when both methods fail")
	}
	if res.Kind != KindFallback {
		t.Fatalf("kind = %q, want %q (last attempted method decides)", res.Kind, KindFallback)
	}
}

func TestProcessFileOutputMissing(t *testing.T) {
	inPath, outPath := writeInput(t, 1000)
	// method returns nil but never writes the output
	rb := &stubRebuilder{}
	fb := &stubFallback{}
	o := New(compCfg(config.MethodRebuild), Dependencies{Rebuilder: rb, Fallback: fb})

	res := o.ProcessFile(context.Background(), inPath, outPath)

	if res.Success {
		t.Fatal("expected failure for missing output")
	}
	if res.Kind != KindOutputMissing {
		t.Fatalf("kind = %q, want %q", res.Kind, KindOutputMissing)
	}
}

func TestProcessFileNotSmaller(t *testing.T) {
	inPath, outPath := writeInput(t, 1000)
	rb := &stubRebuilder{payload: bytes.Repeat([]byte("y"), 1400)}
	o := New(compCfg(config.MethodAuto), Dependencies{Rebuilder: rb, Fallback: &stubFallback{}})

	res := o.ProcessFile(context.Background(), inPath, outPath)

	if !res.Success {
		t.Fatalf("grown output must still succeed, got err %v", res.Err)
	}
	if !res.NotSmaller {
		t.Fatal("NotSmaller flag not set for grown output")
	}
}

func TestProcessFileCanceledSkipsFallback(t *testing.T) {
	inPath, outPath := writeInput(t, 1000)
	rb := &stubRebuilder{err: context.Canceled}
	fb := &stubFallback{payload: []byte("y")}
	o := New(compCfg(config.MethodAuto), Dependencies{Rebuilder: rb, Fallback: fb})

	res := o.ProcessFile(context.Background(), inPath, outPath)

	if res.Success {
		t.Fatal("expected failure after cancellation")
	}
	if fb.calls != 0 {
		t.Fatal("fallback should not run after cancellation")
	}
	if res.Kind != KindCanceled {
		t.Fatalf("kind = %q, want %q", res.Kind, KindCanceled)
	}
}

func TestProcessFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	o := New(compCfg(config.MethodAuto), Dependencies{Rebuilder: &stubRebuilder{}, Fallback: &stubFallback{}})

	res := o.ProcessFile(context.Background(), filepath.Join(dir, "ghost.pdf"), filepath.Join(dir, "out.pdf"))

	if res.Success {
		t.Fatal("expected failure for missing input")
	}
	if res.Err == nil {
		t.Fatal("expected an error for missing input")
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath("/tmp/out", "/data/in/report.pdf")
	want := filepath.Join("/tmp/out", "report_compressed.pdf")
	if got != want {
		t.Fatalf("OutputPath = %q, want %q", got, want)
	}

	got = OutputPath("out", "scan.PDF")
	want = filepath.Join("out", "scan_compressed.PDF")
	if got != want {
		t.Fatalf("OutputPath = %q, want %q", got, want)
	}
}
