package richtext

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

var (
	rendererMu sync.Mutex
	// Cache renderers by wrap width + style. Creating a renderer with
	// WithAutoStyle can trigger terminal background queries that block on
	// some terminals, so the style is resolved once without queries.
	renderers = map[string]*glamour.TermRenderer{}
)

// RenderTerminal renders an HTML body as ANSI-styled text for the detail
// pane and `item show --render`. On any renderer failure the markdown text
// is returned as-is.
func RenderTerminal(htmlBody string, width int) string {
	md := ToMarkdown(htmlBody)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	rendererMu.Lock()
	r := renderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			rendererMu.Unlock()
			return md
		}
		renderers[key] = rr
		r = rr
	}
	rendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func markdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("MEMOPAD_THEME"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	// termenv reads COLORFGBG before falling back to a terminal query.
	if termenv.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
