// Package richtext converts between the stored HTML bodies and the plain or
// terminal representations the presentation layers need. The core never
// renders HTML itself; it only stores it.
package richtext

import (
	"html"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

var (
	styleBlockPattern = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
	headBlockPattern  = regexp.MustCompile(`(?is)<head\b[^>]*>.*?</head>`)
	brPattern         = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockEndPattern   = regexp.MustCompile(`(?i)</(p|div|li|h[1-6]|blockquote)>`)
	tagPattern        = regexp.MustCompile(`<[^>]+>`)

	// Opening tags that mark a string as HTML rather than plain text.
	htmlTagPattern = regexp.MustCompile(`<(p|br|div|span|b|i|u|strong|em|a|img|ul|ol|li|h[1-6]|blockquote)[\s>/]`)
)

// PlainToHTML wraps plain text in a paragraph, escaping markup and turning
// newlines into <br>.
func PlainToHTML(text string) string {
	escaped := html.EscapeString(text)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return "<p>" + escaped + "</p>"
}

// ToPlain strips markup from an HTML body for one-line previews and for the
// plain-text archive editing flow.
func ToPlain(s string) string {
	if s == "" {
		return ""
	}
	s = styleBlockPattern.ReplaceAllString(s, "")
	s = headBlockPattern.ReplaceAllString(s, "")
	s = brPattern.ReplaceAllString(s, "\n")
	s = blockEndPattern.ReplaceAllString(s, "\n")
	s = tagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}

// ContainsHTML reports whether s appears to contain HTML markup.
func ContainsHTML(s string) bool {
	return htmlTagPattern.MatchString(strings.ToLower(s))
}

// ToMarkdown converts an HTML body to Markdown for terminal preview.
// Non-HTML input is returned unchanged; a failed conversion falls back to
// stripping tags so the preview never errors.
func ToMarkdown(s string) string {
	if s == "" || !ContainsHTML(s) {
		return strings.TrimSpace(s)
	}
	md, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		return ToPlain(s)
	}
	return strings.TrimSpace(md)
}
