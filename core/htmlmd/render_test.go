package htmlmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_BasicParagraph(t *testing.T) {
	assert.Equal(t, "This is a paragraph.", Convert("<p>This is a paragraph.</p>"))
}

func TestConvert_MultipleParagraphs(t *testing.T) {
	got := Convert("<p>First paragraph.</p><p>Second paragraph.</p>")
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", got)
}

func TestConvert_Headings(t *testing.T) {
	html := `
	<h1>Header 1</h1>
	<h2>Header 2</h2>
	<h3>Header 3</h3>
	<p>Some content</p>
	`
	got := Convert(html)
	assert.Contains(t, got, "# Header 1")
	assert.Contains(t, got, "## Header 2")
	assert.Contains(t, got, "### Header 3")
}

func TestConvert_BoldAndItalic(t *testing.T) {
	got := Convert("<p>This is <strong>bold</strong> and <em>italic</em> text.</p>")
	assert.Equal(t, "This is **bold** and *italic* text.", got)
}

func TestConvert_Links(t *testing.T) {
	got := Convert(`<p>Click <a href="https://example.com">here</a> to visit.</p>`)
	assert.Equal(t, "Click [here](https://example.com) to visit.", got)
}

func TestConvert_UnorderedList(t *testing.T) {
	html := `
	<ul>
		<li>Item 1</li>
		<li>Item 2</li>
		<li>Item 3</li>
	</ul>
	`
	got := Convert(html)
	assert.Contains(t, got, "- Item 1")
	assert.Contains(t, got, "- Item 2")
	assert.Contains(t, got, "- Item 3")
}

func TestConvert_OrderedList(t *testing.T) {
	html := `
	<ol>
		<li>First</li>
		<li>Second</li>
		<li>Third</li>
	</ol>
	`
	got := Convert(html)
	// Always the literal "1." — downstream renderers renumber.
	assert.Contains(t, got, "1. First")
	assert.Contains(t, got, "1. Second")
	assert.Contains(t, got, "1. Third")
}

func TestConvert_NestedLists(t *testing.T) {
	html := `
	<ul>
		<li>Item 1
			<ul>
				<li>Nested 1</li>
				<li>Nested 2</li>
			</ul>
		</li>
		<li>Item 2</li>
	</ul>
	`
	got := Convert(html)
	assert.Contains(t, got, "- Item 1")
	assert.Contains(t, got, "  - Nested 1")
	assert.Contains(t, got, "  - Nested 2")
	assert.Contains(t, got, "- Item 2")
}

func TestConvert_InlineCode(t *testing.T) {
	got := Convert("<p>Use <code>print()</code> to output.</p>")
	assert.Equal(t, "Use `print()` to output.", got)
}

func TestConvert_CodeBlock(t *testing.T) {
	got := Convert("<pre>def hello():\n    print('Hello')</pre>")
	assert.Contains(t, got, "```")
	assert.Contains(t, got, "def hello():")
	assert.Contains(t, got, "    print('Hello')")
}

func TestConvert_Blockquote(t *testing.T) {
	got := Convert("<blockquote>This is a quote.</blockquote>")
	assert.Contains(t, got, "> This is a quote.")
}

func TestConvert_LineBreaks(t *testing.T) {
	got := Convert("<p>Line 1<br>Line 2</p>")
	assert.Contains(t, got, "Line 1\nLine 2")
}

func TestConvert_HorizontalRule(t *testing.T) {
	got := Convert("<p>Above</p><hr><p>Below</p>")
	assert.Contains(t, got, "---")
}

func TestConvert_SkipsStyleContent(t *testing.T) {
	html := `
	<style>
	.some-class { color: red; }
	body { font-family: Arial; }
	</style>
	<p>Actual content</p>
	`
	got := Convert(html)
	assert.NotContains(t, got, "color: red")
	assert.NotContains(t, got, "font-family")
	assert.Contains(t, got, "Actual content")
}

func TestConvert_SkipsScriptContent(t *testing.T) {
	html := `
	<script>
	function doSomething() { return 42; }
	</script>
	<p>Actual content</p>
	`
	got := Convert(html)
	assert.NotContains(t, got, "function")
	assert.NotContains(t, got, "return 42")
	assert.Contains(t, got, "Actual content")
}

func TestConvert_StyleOnlyDocument(t *testing.T) {
	got := Convert("<style>.x{color:red}</style><p>Actual content</p>")
	assert.Equal(t, "Actual content", got)
}

func TestConvert_UnterminatedStyleDiscardsRest(t *testing.T) {
	got := Convert("<p>Kept</p><style>.x{color:red}")
	assert.Equal(t, "Kept", got)
}

func TestConvert_WhitespaceCollapsing(t *testing.T) {
	html := `
	<p>  Too    many     spaces   </p>
	<p>

	Too many newlines


	</p>
	`
	got := Convert(html)
	assert.Contains(t, got, "Too many spaces")
	assert.Contains(t, got, "Too many newlines")
	assert.NotContains(t, got, "  many     spaces")
}

func TestConvert_PlainTextPassesThrough(t *testing.T) {
	got := Convert("  Just   some\n plain   text  ")
	assert.Equal(t, "Just some plain text", got)
}

func TestConvert_EmptyInput(t *testing.T) {
	assert.Equal(t, "", Convert(""))
}

func TestConvert_SimpleTable(t *testing.T) {
	html := `
	<table>
		<tr>
			<th>Header 1</th>
			<th>Header 2</th>
		</tr>
		<tr>
			<td>Cell 1</td>
			<td>Cell 2</td>
		</tr>
	</table>
	`
	got := Convert(html)
	assert.Contains(t, got, "|")
	assert.Contains(t, got, "Header 1")
	assert.Contains(t, got, "Cell 1")
}

func TestConvert_UnknownTagsStripped(t *testing.T) {
	got := Convert(`<section><span data-x="1">hello</span> <custom>world</custom></section>`)
	assert.Equal(t, "hello world", got)
}

func TestConvert_StrayEndTagsAreNoOps(t *testing.T) {
	got := Convert("</ul></ol></p>text<p>more</p>")
	assert.Contains(t, got, "text")
	assert.Contains(t, got, "more")
}

func TestConvert_StrayAnchorEndTag(t *testing.T) {
	assert.Equal(t, "before after", Convert("<p>before</a> after</p>"))
}

func TestConvert_StrayAnchorEndAfterClosedLink(t *testing.T) {
	got := Convert(`<p><a href="https://example.com">site</a></a> tail</p>`)
	assert.Equal(t, "[site](https://example.com) tail", got)
}

func TestConvert_EntitiesDecoded(t *testing.T) {
	got := Convert("<p>Fish &amp; chips &lt;today&gt;</p>")
	assert.Equal(t, "Fish & chips <today>", got)
}

func TestConvert_TeamsMeetingBody(t *testing.T) {
	html := `
	<html>
	<head>
	<style>
	@font-face { font-family: 'Segoe UI'; }
	.meeting-class { color: #000; }
	</style>
	</head>
	<body>
	<p>Please join the meeting to discuss the project.</p>
	<p><strong>Join on your computer, mobile app or room device</strong></p>
	<div>
	<a href="https://teams.microsoft.com/l/meetup-join/19%3ameeting_ABC123">
	Click here to join the meeting
	</a>
	</div>
	<div>Meeting ID: 123 456 789</div>
	<div>Phone Conference ID: 987654</div>
	</body>
	</html>
	`
	got := Convert(html)

	require.NotEmpty(t, got)
	assert.NotContains(t, got, "@font-face")
	assert.NotContains(t, got, "Segoe UI")
	assert.Contains(t, got, "Please join the meeting")
	assert.Contains(t, got, "**Microsoft Teams meeting**")
	assert.Contains(t, got, "Click here to join the meeting")
	assert.Contains(t, got, "https://teams.microsoft.com")
	assert.NotContains(t, got, "123 456 789")
	assert.NotContains(t, got, "Meeting ID")
}

func TestConvert_DeterministicAcrossCalls(t *testing.T) {
	html := "<p>Stable <strong>output</strong></p><ul><li>a</li><li>b</li></ul>"
	first := Convert(html)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Convert(html))
	}
	assert.False(t, strings.HasSuffix(first, "\n"))
}
