package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassifyKind(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, KindNone},
		{"render", &RenderError{Page: 3, Err: errors.New("boom")}, KindRender},
		{"encode", &EncodeError{Page: 1, Format: "jpeg", Err: errors.New("boom")}, KindEncode},
		{"save", &SaveError{Path: "out.pdf", Err: errors.New("boom")}, KindSave},
		{"fallback", &FallbackError{Err: errors.New("boom")}, KindFallback},
		{"output missing", &OutputMissingError{Path: "out.pdf"}, KindOutputMissing},
		{"wrapped render", fmt.Errorf("processing: %w", &RenderError{Err: errors.New("boom")}), KindRender},
		{"canceled", context.Canceled, KindCanceled},
		{"deadline", context.DeadlineExceeded, KindCanceled},
		{"plain", errors.New("boom"), KindUnknown},
	}
	for _, tc := range cases {
		if got := classifyKind(tc.err); got != tc.want {
			t.Fatalf("%s: classifyKind = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	re := &RenderError{Page: 2, Err: errors.New("corrupt stream")}
	if re.Error() != "render failed on page 2: corrupt stream" {
		t.Fatalf("RenderError message = %q", re.Error())
	}

	docLevel := &RenderError{Err: errors.New("cannot open")}
	if docLevel.Error() != "render failed: cannot open" {
		t.Fatalf("document-level RenderError message = %q", docLevel.Error())
	}

	if !errors.Is(re, re.Err) {
		t.Fatal("RenderError should unwrap to its cause")
	}
}

func TestIsCanceled(t *testing.T) {
	if !isCanceled(context.Canceled) {
		t.Fatal("context.Canceled not detected")
	}
	if !isCanceled(fmt.Errorf("wrap: %w", context.DeadlineExceeded)) {
		t.Fatal("wrapped deadline not detected")
	}
	if isCanceled(errors.New("boom")) {
		t.Fatal("plain error misdetected as cancellation")
	}
	if isCanceled(nil) {
		t.Fatal("nil misdetected as cancellation")
	}
}
