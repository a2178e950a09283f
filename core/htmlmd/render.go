package htmlmd

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// listKind tracks whether the innermost open list is bulleted or numbered.
type listKind int

const (
	listUnordered listKind = iota
	listOrdered
)

// converter is the renderer state for a single conversion. It is created
// fresh per Convert call and discarded on return.
type converter struct {
	buf       bytes.Buffer
	lists     []listKind // open list nesting, innermost last
	skipDepth int        // >0 while inside style/script regions
	inCode    bool
	inPre     bool
	inLink    bool
	linkHref  string // pending target, set on <a>, consumed on </a>
}

// Convert renders an HTML event body as clean Markdown. Malformed or unknown
// markup degrades gracefully: unknown tags are stripped with their text
// preserved, unmatched end tags are no-ops, and unterminated style/script
// regions extend to end of input. Empty input yields empty output.
func Convert(rawHTML string) string {
	if rawHTML == "" {
		return ""
	}

	c := &converter{}
	z := html.NewTokenizer(strings.NewReader(Preprocess(rawHTML)))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or an unrecoverable tokenizer state; either way the
			// output built so far is what we have.
			return Postprocess(c.buf.String())
		case html.StartTagToken, html.SelfClosingTagToken:
			c.handleStart(z.Token())
		case html.EndTagToken:
			c.handleEnd(z.Token().Data)
		case html.TextToken:
			c.handleText(string(z.Text()))
		}
	}
}

func (c *converter) handleStart(t html.Token) {
	tag := t.Data

	// Style/script content is discarded wholesale. A counter rather than a
	// boolean, so malformed non-nesting close tags cannot corrupt the state.
	if tag == "style" || tag == "script" {
		c.skipDepth++
		return
	}
	if c.skipDepth > 0 {
		return
	}

	switch tag {
	case "p":
		c.ensureBlankLine()

	case "h1", "h2", "h3", "h4", "h5", "h6":
		c.ensureBlankLine()
		level := int(tag[1] - '0')
		c.buf.WriteString(strings.Repeat("#", level) + " ")

	case "b", "strong":
		c.buf.WriteString("**")

	case "i", "em":
		c.buf.WriteString("*")

	case "a":
		c.inLink = true
		c.linkHref = attrVal(t, "href")
		c.buf.WriteString("[")

	case "ul":
		c.lists = append(c.lists, listUnordered)
		c.ensureNewline()

	case "ol":
		c.lists = append(c.lists, listOrdered)
		c.ensureNewline()

	case "li":
		if len(c.lists) == 0 {
			return
		}
		c.buf.WriteString(strings.Repeat("  ", len(c.lists)-1))
		if c.lists[len(c.lists)-1] == listOrdered {
			// Always the literal "1." — Markdown renderers renumber.
			c.buf.WriteString("1. ")
		} else {
			c.buf.WriteString("- ")
		}

	case "br":
		c.buf.WriteString("\n")

	case "hr":
		c.ensureNewline()
		c.buf.WriteString("---\n")

	case "code":
		c.inCode = true
		c.buf.WriteString("`")

	case "pre":
		c.inPre = true
		c.ensureBlankLine()
		c.buf.WriteString("```\n")

	case "blockquote":
		c.ensureNewline()
		c.buf.WriteString("> ")

	case "table":
		c.ensureBlankLine()

	case "tr":
		c.ensureNewline()

	case "td", "th":
		c.buf.WriteString("| ")
	}
	// Everything else (div, span, body, ...) is a pass-through container.
}

func (c *converter) handleEnd(tag string) {
	if tag == "style" || tag == "script" {
		if c.skipDepth > 0 {
			c.skipDepth--
		}
		return
	}
	if c.skipDepth > 0 {
		return
	}

	switch tag {
	case "b", "strong":
		c.buf.WriteString("**")

	case "i", "em":
		c.buf.WriteString("*")

	case "a":
		// An end tag with no open link is a no-op.
		if !c.inLink {
			return
		}
		c.buf.WriteString("](" + c.linkHref + ")")
		c.inLink = false
		c.linkHref = ""

	case "ul", "ol":
		// An end tag with no open list is a no-op, not an error.
		if len(c.lists) > 0 {
			c.lists = c.lists[:len(c.lists)-1]
		}
		c.ensureNewline()

	case "li", "p", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote":
		c.ensureNewline()

	case "code":
		c.inCode = false
		c.buf.WriteString("`")

	case "pre":
		c.inPre = false
		c.ensureNewline()
		c.buf.WriteString("```\n")

	case "td", "th":
		c.buf.WriteString(" ")

	case "tr":
		c.buf.WriteString("|\n")
	}
}

// whitespaceRun matches runs of whitespace, including the non-breaking
// spaces that entity decoding produces from &nbsp;.
var whitespaceRun = regexp.MustCompile(`[\s\x{00A0}]+`)

func (c *converter) handleText(text string) {
	if c.skipDepth > 0 {
		return
	}

	// Inside code or pre regions the text is verbatim; everywhere else,
	// whitespace runs collapse to a single space, and text starting at a
	// block boundary loses its leading whitespace.
	if !c.inCode && !c.inPre {
		text = whitespaceRun.ReplaceAllString(text, " ")
		if c.endsWith("\n") {
			text = strings.TrimLeftFunc(text, unicode.IsSpace)
		}
	}
	c.buf.WriteString(text)
}

// --- buffer helpers ---

func (c *converter) endsWith(s string) bool {
	return bytes.HasSuffix(c.buf.Bytes(), []byte(s))
}

// ensureNewline makes a non-empty buffer end on its own line.
func (c *converter) ensureNewline() {
	if c.buf.Len() > 0 && !c.endsWith("\n") {
		c.buf.WriteString("\n")
	}
}

// ensureBlankLine makes a non-empty buffer end with a blank line, so the
// next block starts separated from the previous one.
func (c *converter) ensureBlankLine() {
	if c.buf.Len() == 0 || c.endsWith("\n\n") {
		return
	}
	if c.endsWith("\n") {
		c.buf.WriteString("\n")
	} else {
		c.buf.WriteString("\n\n")
	}
}

func attrVal(t html.Token, key string) string {
	for _, a := range t.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
