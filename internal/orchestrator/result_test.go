package orchestrator

import "testing"

func TestResultRatio(t *testing.T) {
	r := Result{OriginalSize: 1000, CompressedSize: 500}
	if got := r.Ratio(); got != 50.0 {
		t.Fatalf("Ratio = %.2f, want 50.00", got)
	}
	if got := r.SavedBytes(); got != 500 {
		t.Fatalf("SavedBytes = %d, want 500", got)
	}
}

func TestResultRatioGrownOutput(t *testing.T) {
	r := Result{OriginalSize: 1000, CompressedSize: 1250}
	if got := r.Ratio(); got != -25.0 {
		t.Fatalf("Ratio = %.2f, want -25.00", got)
	}
	if got := r.SavedBytes(); got != -250 {
		t.Fatalf("SavedBytes = %d, want -250", got)
	}
}

func TestResultRatioZeroOriginal(t *testing.T) {
	r := Result{}
	if got := r.Ratio(); got != 0 {
		t.Fatalf("Ratio on empty result = %.2f, want 0", got)
	}
}
