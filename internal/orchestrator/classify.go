package orchestrator

import "regexp"

// PageClass partitions pages by how they get re-encoded.
type PageClass int

const (
	// ClassText marks pages with extractable text; rendered at the configured
	// DPI and encoded losslessly when quality is 90 or higher.
	ClassText PageClass = iota
	// ClassImage marks pages without extractable text; rendered at a fixed
	// modest upscale and always encoded as JPEG.
	ClassImage
)

func (c PageClass) String() string {
	if c == ClassText {
		return "text"
	}
	return "image"
}

// whitespaceRegex matches any whitespace (Unicode-aware). Used to strip whitespace.
var whitespaceRegex = regexp.MustCompile(`\s+`)

// stripWhitespace removes all Unicode whitespace from the given string.
func stripWhitespace(s string) string {
	return whitespaceRegex.ReplaceAllString(s, "")
}

// classifyPage decides the re-encode branch for a page from its extracted
// text. Any non-whitespace content makes the page text-dominant. Pages with
// only vector graphics carry no text and land in the image branch; that is a
// heuristic, not a guarantee about page content. Always returns a class.
func classifyPage(text string) PageClass {
	if len([]rune(stripWhitespace(text))) > 0 {
		return ClassText
	}
	return ClassImage
}
