package htmlmd

import (
	"regexp"
	"strings"
	"unicode"
)

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// Postprocess canonicalizes rendered Markdown: right-trims every line,
// collapses runs of three or more newlines down to a single blank line, and
// strips leading/trailing whitespace. Idempotent.
func Postprocess(rendered string) string {
	lines := strings.Split(rendered, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	out := strings.Join(lines, "\n")
	out = excessNewlines.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
