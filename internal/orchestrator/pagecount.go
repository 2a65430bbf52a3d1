package orchestrator

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// pageCount returns the page count the rewrite engine sees for the PDF at
// path. Rebuild verification goes through here so the count used to accept an
// output is always the one pdfcpu would report for it.
func pageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("pdf page count failed: %w", err)
	}
	return n, nil
}
