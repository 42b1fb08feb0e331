package scriptweaver

import "regexp"

// Precompiled preprocessing patterns.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// normalizeLineEndings converts \r\n and \r to \n. Applied before both
// passes so validation line numbers and assembly see the same lines.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum. Applied
// only before assembly; validation keeps the original numbering.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}
