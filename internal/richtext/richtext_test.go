package richtext

import (
	"strings"
	"testing"
)

func TestPlainToHTMLEscapesAndBreaks(t *testing.T) {
	got := PlainToHTML("a < b\nnext")
	if got != "<p>a &lt; b<br>next</p>" {
		t.Fatalf("PlainToHTML = %q", got)
	}
}

func TestToPlainStripsMarkup(t *testing.T) {
	in := `<head><title>x</title></head><style>p{color:red}</style><p>Hello<br>world <b>bold</b></p>`
	got := ToPlain(in)
	if got != "Hello\nworld bold" {
		t.Fatalf("ToPlain = %q", got)
	}
}

func TestPlainRoundTrip(t *testing.T) {
	for _, text := range []string{"simple", "two\nlines", "a < b & c"} {
		if got := ToPlain(PlainToHTML(text)); got != text {
			t.Fatalf("round trip %q = %q", text, got)
		}
	}
}

func TestToMarkdownPassesPlainTextThrough(t *testing.T) {
	if got := ToMarkdown("just text"); got != "just text" {
		t.Fatalf("ToMarkdown = %q", got)
	}
}

func TestToMarkdownConvertsTags(t *testing.T) {
	got := ToMarkdown("<p>Hello <strong>bold</strong></p>")
	if !strings.Contains(got, "**bold**") {
		t.Fatalf("expected bold markdown; got %q", got)
	}
}
