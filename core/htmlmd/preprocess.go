// Package htmlmd converts provider-supplied HTML event bodies into clean
// Markdown. The pipeline is: Preprocess (strip meeting-invite boilerplate)
// → Convert (tag-driven tokenizing renderer) → Postprocess (whitespace
// canonicalization). ExtractMeetingURL runs independently over the raw body.
//
// Every function in this package is pure: no state survives a call, so all
// of them are safe for concurrent use.
package htmlmd

import (
	"regexp"
	"strings"
)

// rule is one preprocessing substitution. Rules are idempotent.
type rule func(string) string

// replace builds a rule from a pattern and a literal replacement.
func replace(pattern, repl string) rule {
	re := regexp.MustCompile(pattern)
	return func(s string) string {
		return re.ReplaceAllString(s, repl)
	}
}

// boilerplateRules run in order. The join-instruction replacement must run
// before the ID/passcode rules: those target sibling lines that the
// paragraph-level rule does not touch.
var boilerplateRules = []rule{
	// Empty decorative paragraphs holding only a non-breaking space.
	replace(`(?i)<p[^>]*>\s*(?:&nbsp;|\x{00A0})\s*</p>`, ""),
	// The "Join on your computer, mobile app or room device" instruction
	// paragraph collapses to a single bolded platform line.
	replace(`(?is)<p[^>]*>\s*<strong>\s*Join on your computer.*?</strong>\s*</p>`,
		"<p><strong>Microsoft Teams meeting</strong></p>"),
	// Meeting ID label, then the space-grouped digit token that follows it.
	// The token rule also covers video IDs ("114 301 628 4"), which share
	// the digit-group shape.
	replace(`(?i)Meeting ID:`, ""),
	replace(`(?i)>\s*\d{3}(?:\s+\d{1,3}){2,}\s*<`, "><"),
	// Passcode label and token. The token is only removed when it mixes
	// letters and digits; see stripPasscodes.
	replace(`(?i)Passcode:`, ""),
	stripPasscodes,
	// Phone conference ID label and digit-group-plus-# token.
	replace(`(?i)Phone Conference ID:`, ""),
	replace(`(?i)>\s*\d{3}\s+\d{3}\s+\d{3}#\s*<`, "><"),
	// Tenant key label and the provider-internal email-like identifier.
	replace(`(?i)Tenant key:`, ""),
	replace(`(?i)\d+@t\.plcm\.vc`, ""),
	// Video ID label; its digit groups are handled by the token rule above.
	replace(`(?i)Video ID:`, ""),
	// "Download Teams" call-to-action blocks.
	replace(`(?is)<div[^>]*>\s*<a[^>]*>Download Teams</a>.*?</div>`, ""),
}

// passcodeToken matches an 8-character alphanumeric candidate sitting alone
// between tags.
var passcodeToken = regexp.MustCompile(`>\s*[A-Za-z0-9]{8}\s*<`)

// Preprocess strips known meeting-invite boilerplate from raw HTML before
// tokenization. All rules are case-insensitive and may match across line
// breaks within a block. Re-applying Preprocess causes no further change.
func Preprocess(html string) string {
	for _, apply := range boilerplateRules {
		html = apply(html)
	}
	return html
}

// stripPasscodes removes lone 8-character tokens, but only when the token
// mixes letters and digits. A pure-alpha or pure-numeric token is treated
// as legitimate prose and left alone.
func stripPasscodes(html string) string {
	return passcodeToken.ReplaceAllStringFunc(html, func(m string) string {
		token := strings.TrimSpace(strings.Trim(m, "><"))
		var hasDigit, hasLetter bool
		for _, r := range token {
			if r >= '0' && r <= '9' {
				hasDigit = true
			} else {
				hasLetter = true
			}
		}
		if hasDigit && hasLetter {
			return "><"
		}
		return m
	})
}
