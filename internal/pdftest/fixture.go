package pdftest

import (
	"bytes"
	"fmt"
	"os"
)

// fixtureMarker is the text placed on fixture text pages; the probe checks it
// survives extraction.
const fixtureMarker = "capability probe"

// WriteFixturePDF writes a minimal but fully valid PDF to path with
// textPages pages carrying extractable Helvetica text followed by
// graphicPages pages carrying only a filled rectangle (vector content, no
// text). Cross-reference offsets are computed while writing, so the output
// always parses under strict validation.
func WriteFixturePDF(path string, textPages, graphicPages int) error {
	total := textPages + graphicPages
	if total < 1 {
		return fmt.Errorf("fixture needs at least one page")
	}

	var buf bytes.Buffer
	var offsets []int
	add := func(obj string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(obj)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := ""
	for p := 0; p < total; p++ {
		if p > 0 {
			kids += " "
		}
		kids += fmt.Sprintf("%d 0 R", 4+2*p)
	}

	add("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	add(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", kids, total))
	add("3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	for p := 0; p < total; p++ {
		pageObj := 4 + 2*p
		contentObj := 5 + 2*p

		var content, resources string
		if p < textPages {
			content = fmt.Sprintf("BT /F1 24 Tf 72 720 Td (%s page %d) Tj ET", fixtureMarker, p+1)
			resources = "/Resources << /Font << /F1 3 0 R >> >>"
		} else {
			content = "0.75 g 72 200 468 400 re f"
			resources = "/Resources << >>"
		}

		add(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] %s /Contents %d 0 R >>\nendobj\n",
			pageObj, resources, contentObj))
		add(fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			contentObj, len(content), content))
	}

	xref := buf.Len()
	size := len(offsets) + 1
	fmt.Fprintf(&buf, "xref\n0 %d\n", size)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", size, xref)

	return os.WriteFile(path, buf.Bytes(), 0o644)
}
