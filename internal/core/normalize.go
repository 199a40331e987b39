package core

import (
	"regexp"
	"strings"
)

// Exported files often start with a title row or a print date before the
// real header. A header line must mention the name, address and city columns;
// whitespace inside "שם עסק" varies between exports.
var (
	headerNamePattern    = regexp.MustCompile(`שם\s*עסק`)
	headerAddressPattern = regexp.MustCompile(`כתובת`)
	headerCityPattern    = regexp.MustCompile(`עיר`)
	lineBreakPattern     = regexp.MustCompile(`\r?\n`)
)

// SanitizeText drops every line before the first header-looking line.
//
// If the header is already the first line, or no line looks like a header,
// the text is returned unchanged. In the latter case the parser finds none of
// the required columns and the load yields zero records.
func SanitizeText(text string) string {
	lines := lineBreakPattern.Split(text, -1)
	idx := findHeaderLine(lines)
	if idx > 0 {
		return strings.Join(lines[idx:], "\n")
	}
	return text
}

// findHeaderLine returns the index of the first header-looking line, or -1.
func findHeaderLine(lines []string) int {
	for i, line := range lines {
		if isHeaderLine(line) {
			return i
		}
	}
	return -1
}

func isHeaderLine(line string) bool {
	return headerNamePattern.MatchString(line) &&
		headerAddressPattern.MatchString(line) &&
		headerCityPattern.MatchString(line)
}
