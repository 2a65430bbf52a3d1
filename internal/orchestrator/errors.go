package orchestrator

import "fmt"

// RenderError covers failures while opening the source document, reading its
// geometry, or rasterizing a page. Page 0 means the failure was not tied to a
// single page.
type RenderError struct {
	Page int
	Err  error
}

func (e *RenderError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("render failed on page %d: %v", e.Page, e.Err)
	}
	return fmt.Sprintf("render failed: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// EncodeError represents an image encoding failure during rebuild.
type EncodeError struct {
	Page   int
	Format string
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode (%s) failed on page %d: %v", e.Format, e.Page, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// SaveError represents a failure while assembling, serializing or verifying
// the output document.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save failed for %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// FallbackError represents a failure of the structural-compression pass.
type FallbackError struct {
	Err error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("fallback compression failed: %v", e.Err)
}

func (e *FallbackError) Unwrap() error { return e.Err }

// OutputMissingError means a compression method returned normally but the
// expected output file does not exist.
type OutputMissingError struct {
	Path string
}

func (e *OutputMissingError) Error() string {
	return fmt.Sprintf("output file missing: %s", e.Path)
}
