package orchestrator

import (
	"context"
	"errors"
)

// Error kinds for logs, metrics and the final report.
const (
	KindNone          = ""
	KindRender        = "render"
	KindEncode        = "encode"
	KindSave          = "save"
	KindFallback      = "fallback"
	KindOutputMissing = "output_missing"
	KindCanceled      = "canceled"
	KindUnknown       = "unknown"
)

// classifyKind maps an error from a compression method to its kind.
func classifyKind(err error) string {
	if err == nil {
		return KindNone
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCanceled
	}

	var renderErr *RenderError
	if errors.As(err, &renderErr) {
		return KindRender
	}

	var encodeErr *EncodeError
	if errors.As(err, &encodeErr) {
		return KindEncode
	}

	var saveErr *SaveError
	if errors.As(err, &saveErr) {
		return KindSave
	}

	var fallbackErr *FallbackError
	if errors.As(err, &fallbackErr) {
		return KindFallback
	}

	var missingErr *OutputMissingError
	if errors.As(err, &missingErr) {
		return KindOutputMissing
	}

	return KindUnknown
}

// isCanceled reports whether an error came from context cancellation rather
// than the document itself. The fallback pass is skipped for these.
func isCanceled(err error) bool {
	return err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))
}
